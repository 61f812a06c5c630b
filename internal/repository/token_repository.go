package repository

import (
	"sync"
	"time"
)

// DeviceToken is one registered push-notification target.
type DeviceToken struct {
	Token        string
	Platform     string // "android" or "ios"
	RegisteredAt time.Time
}

// TokenRepository keeps device tokens for FCM alerts in memory.
// Clients re-register on app start, so losing tokens on restart is
// acceptable.
type TokenRepository struct {
	tokens map[string]DeviceToken
	mu     sync.RWMutex
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{tokens: make(map[string]DeviceToken)}
}

// RegisterToken adds or refreshes a device token.
func (r *TokenRepository) RegisterToken(token, platform string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = DeviceToken{
		Token:        token,
		Platform:     platform,
		RegisteredAt: time.Now(),
	}
}

// UnregisterToken removes a device token.
func (r *TokenRepository) UnregisterToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
}

// GetAllTokens returns every registered token.
func (r *TokenRepository) GetAllTokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.tokens))
	for t := range r.tokens {
		out = append(out, t)
	}
	return out
}

// Count returns the number of registered devices.
func (r *TokenRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
