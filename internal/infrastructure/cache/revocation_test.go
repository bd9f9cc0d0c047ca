package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevocationList_RevokeAndCheck(t *testing.T) {
	l := NewRevocationList()

	assert.False(t, l.Revoked("jti-1"))

	l.Revoke("jti-1", time.Now().Add(time.Hour))
	assert.True(t, l.Revoked("jti-1"))
	assert.False(t, l.Revoked("jti-2"))
}

func TestRevocationList_Idempotent(t *testing.T) {
	l := NewRevocationList()

	expiry := time.Now().Add(time.Hour)
	l.Revoke("jti-1", expiry)
	l.Revoke("jti-1", expiry)

	assert.True(t, l.Revoked("jti-1"))
}

func TestRevocationList_IgnoresExpiredTokens(t *testing.T) {
	l := NewRevocationList()

	// A token already past its expiry needs no denylist entry.
	l.Revoke("jti-old", time.Now().Add(-time.Minute))
	assert.False(t, l.Revoked("jti-old"))

	l.mu.RLock()
	_, stored := l.entries["jti-old"]
	l.mu.RUnlock()
	assert.False(t, stored)
}

func TestRevocationList_EntryLapsesWithToken(t *testing.T) {
	l := NewRevocationList()

	l.Revoke("jti-short", time.Now().Add(30*time.Millisecond))
	assert.True(t, l.Revoked("jti-short"))

	time.Sleep(50 * time.Millisecond)
	assert.False(t, l.Revoked("jti-short"))
}

func TestRevocationList_Cleanup(t *testing.T) {
	l := NewRevocationList()

	l.Revoke("jti-short", time.Now().Add(10*time.Millisecond))
	l.Revoke("jti-long", time.Now().Add(time.Hour))

	time.Sleep(20 * time.Millisecond)
	l.cleanup()

	l.mu.RLock()
	defer l.mu.RUnlock()
	assert.Len(t, l.entries, 1)
	assert.Contains(t, l.entries, "jti-long")
}

func TestRevocationList_EmptyTokenID(t *testing.T) {
	l := NewRevocationList()

	l.Revoke("", time.Now().Add(time.Hour))
	assert.False(t, l.Revoked(""))
}
