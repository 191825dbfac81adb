package auth

import (
	"crypto/subtle"
	"sync"

	"github.com/google/uuid"
)

// Provider checks admin credentials and tracks issued session tokens.
// Tokens are opaque and held in memory; restarting the process logs
// every admin out.
type Provider struct {
	user string
	pass string

	mu     sync.Mutex
	tokens map[string]struct{}
}

func NewProvider(user, pass string) *Provider {
	return &Provider{
		user:   user,
		pass:   pass,
		tokens: make(map[string]struct{}),
	}
}

// Login returns a fresh token when the credentials match.
func (p *Provider) Login(user, pass string) (string, bool) {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(p.user)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(p.pass)) == 1
	if !userOK || !passOK {
		return "", false
	}

	token := uuid.NewString()
	p.mu.Lock()
	p.tokens[token] = struct{}{}
	p.mu.Unlock()
	return token, true
}

func (p *Provider) Valid(token string) bool {
	if token == "" {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.tokens[token]
	return ok
}

func (p *Provider) Logout(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.tokens, token)
}
