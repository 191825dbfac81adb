package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/dwikikusuma/sportsstore/internal/cart/session"
	catalogapp "github.com/dwikikusuma/sportsstore/internal/catalog/app"
	catalogpg "github.com/dwikikusuma/sportsstore/internal/catalog/infra/postgres"
	orderapp "github.com/dwikikusuma/sportsstore/internal/order/app"
	"github.com/dwikikusuma/sportsstore/internal/order/infra/email"
	"github.com/dwikikusuma/sportsstore/internal/order/infra/queue"
	"github.com/dwikikusuma/sportsstore/internal/storefront/auth"
	storehttp "github.com/dwikikusuma/sportsstore/internal/storefront/http"
	"github.com/dwikikusuma/sportsstore/pkg/config"
	"github.com/dwikikusuma/sportsstore/pkg/logger"
	"github.com/dwikikusuma/sportsstore/pkg/postgres"
	"github.com/dwikikusuma/sportsstore/pkg/shutdown"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db := mustDB(log)
	defer db.Close()

	// Catalog
	productRepo := catalogpg.NewProductRepo(db)
	catalogSvc := catalogapp.NewService(productRepo, cfg.PageSize)

	// Carts are session-scoped and live in memory.
	carts := session.NewStore()

	// Order processing
	processor, cleanup, err := buildProcessor(cfg, log)
	if err != nil {
		log.Error("order processor setup failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer cleanup()
	orderSvc := orderapp.NewService(processor, log)

	authp := auth.NewProvider(cfg.AdminUser, cfg.AdminPass)

	srv := storehttp.NewServer(catalogSvc, carts, orderSvc, authp, log)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

// buildProcessor wires the configured order processor. The email
// processor is the default; "queue" publishes orders to RabbitMQ
// instead.
func buildProcessor(cfg config.Config, log *slog.Logger) (orderapp.Processor, func(), error) {
	switch cfg.OrderProcessor {
	case "queue":
		conn, err := amqp.Dial(cfg.Queue.URL)
		if err != nil {
			return nil, func() {}, fmt.Errorf("dial amqp: %w", err)
		}
		proc, err := queue.NewOrderProcessor(conn, cfg.Queue.Queue)
		if err != nil {
			conn.Close()
			return nil, func() {}, err
		}
		log.Info("using queue order processor", slog.String("queue", cfg.Queue.Queue))
		return proc, func() {
			proc.Close()
			conn.Close()
		}, nil

	default:
		log.Info("using email order processor",
			slog.String("host", cfg.Email.Host),
			slog.Bool("pickup_dir", cfg.Email.WriteToDir),
		)
		return email.NewOrderProcessor(email.Settings{
			To:         cfg.Email.To,
			From:       cfg.Email.From,
			UseTLS:     cfg.Email.UseTLS,
			Username:   cfg.Email.Username,
			Password:   cfg.Email.Password,
			Host:       cfg.Email.Host,
			Port:       cfg.Email.Port,
			WriteToDir: cfg.Email.WriteToDir,
			WriteDir:   cfg.Email.WriteDir,
		}), func() {}, nil
	}
}

func mustDB(log *slog.Logger) *sql.DB {
	cfg := postgres.Config{
		Host: getenv("POSTGRES_HOST", "localhost"),
		Port: getenvInt("POSTGRES_PORT", 5432),
		User: getenv("POSTGRES_USER", "store"),
		Pass: getenv("POSTGRES_PASSWORD", "storepassword"),
		DB:   getenv("POSTGRES_DB", "store_db"),
	}
	db, err := postgres.Open(cfg)
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	return db
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
