package session

import (
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Holder is the process-wide bearer token slot. It is read by every
// outgoing request and cleared by any response observing an
// authentication failure. Mutation is idempotent (clearing to absent),
// so readers tolerate a momentarily stale value.
type Holder struct {
	token atomic.Pointer[string]
}

// NewHolder creates an empty holder
func NewHolder() *Holder {
	return &Holder{}
}

// Set stores a token. An empty string clears the holder.
func (h *Holder) Set(token string) {
	if token == "" {
		h.token.Store(nil)
		return
	}
	h.token.Store(&token)
}

// Get returns the current token. A token that parses as a JWT with an
// expiry in the past is treated as absent; the server would reject it
// with a 401 anyway.
func (h *Holder) Get() (string, bool) {
	p := h.token.Load()
	if p == nil {
		return "", false
	}
	if expired(*p) {
		h.token.CompareAndSwap(p, nil)
		return "", false
	}
	return *p, true
}

// Clear removes the token. Safe to call from any goroutine; concurrent
// clears are idempotent.
func (h *Holder) Clear() {
	h.token.Store(nil)
}

// expired inspects the exp claim without verifying the signature.
// Opaque (non-JWT) tokens are never considered expired locally.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
