package service

import (
	"fmt"
	"sync"

	"github.com/izzydoesit/gemini-api/models"
)

// NonceTracker keeps the last accepted nonce per API key and rejects any
// request whose nonce has not strictly increased. This check is the system's
// sole ordering guarantee, so concurrent requests for the same key serialize
// on a per-key lock; unrelated keys never contend.
type NonceTracker struct {
	entries sync.Map // api key -> *nonceEntry
}

type nonceEntry struct {
	mu   sync.Mutex
	last int64
}

func NewNonceTracker() *NonceTracker {
	return &NonceTracker{}
}

// CheckAndAdvance accepts nonce iff it exceeds the last accepted value for
// apiKey, advancing the stored value atomically. State created on first use
// lives for the process lifetime.
func (t *NonceTracker) CheckAndAdvance(apiKey string, nonce int64) *models.GatewayError {
	v, _ := t.entries.LoadOrStore(apiKey, &nonceEntry{last: -1})
	e := v.(*nonceEntry)

	e.mu.Lock()
	defer e.mu.Unlock()

	if nonce <= e.last {
		return models.NewGatewayError(
			models.ReasonInvalidNonce,
			fmt.Sprintf("Nonce '%d' has not increased since your last call.", nonce),
		)
	}
	e.last = nonce
	return nil
}
