package cache

import (
	"sync"
	"time"
)

// RevocationList is a thread-safe in-memory denylist of signed-out token ids.
// Entries live until the token's own expiry, after which the signature check
// alone rejects the token.
// Implements domain.TokenRevoker.
type RevocationList struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewRevocationList creates a new revocation list.
func NewRevocationList() *RevocationList {
	l := &RevocationList{
		entries: make(map[string]time.Time),
	}
	go l.cleanupLoop()
	return l
}

// Revoke marks a token id as signed out until its natural expiry.
// Revoking an already-revoked id is a no-op.
func (l *RevocationList) Revoke(tokenID string, expiresAt time.Time) {
	if tokenID == "" || time.Now().After(expiresAt) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[tokenID] = expiresAt
}

// Revoked reports whether the token id has been signed out.
func (l *RevocationList) Revoked(tokenID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	expiresAt, found := l.entries[tokenID]
	return found && time.Now().Before(expiresAt)
}

// cleanup removes entries for tokens that have expired on their own.
func (l *RevocationList) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for id, expiresAt := range l.entries {
		if now.After(expiresAt) {
			delete(l.entries, id)
		}
	}
}

// cleanupLoop runs periodic cleanup of expired entries.
func (l *RevocationList) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.cleanup()
	}
}
