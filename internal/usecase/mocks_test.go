package usecase

import (
	"context"
	"time"

	"session-hub/internal/domain"
)

// mockDirectory implements domain.DirectoryClient for testing.
type mockDirectory struct {
	identity  *domain.Identity
	err       error
	upserts   int
	lastEmail string
	lastName  string
	lastImage string
}

func (m *mockDirectory) VerifyCredentials(_ context.Context, email, _ string) (*domain.Identity, error) {
	return m.identity, m.err
}

func (m *mockDirectory) UpsertOAuthIdentity(_ context.Context, email, name, image string) (*domain.Identity, error) {
	m.upserts++
	m.lastEmail = email
	m.lastName = name
	m.lastImage = image
	return m.identity, m.err
}

func (m *mockDirectory) Signup(_ context.Context, _, _ string) error {
	return m.err
}

// mockNormalizer implements domain.IdentityNormalizer for testing.
type mockNormalizer struct {
	identity *domain.Identity
	err      error
	called   bool
}

func (m *mockNormalizer) Normalize(_ context.Context, _ domain.AuthEvent) (*domain.Identity, error) {
	m.called = true
	return m.identity, m.err
}

// stubCodec implements domain.TokenCodec for testing.
type stubCodec struct {
	signed     string
	signErr    error
	claims     *domain.SessionClaims
	parseErr   error
	lastSigned *domain.SessionClaims
}

func (s *stubCodec) Sign(claims *domain.SessionClaims) (string, error) {
	s.lastSigned = claims
	if s.signErr != nil {
		return "", s.signErr
	}
	return s.signed, nil
}

func (s *stubCodec) Parse(_ string) (*domain.SessionClaims, error) {
	if s.parseErr != nil {
		return nil, s.parseErr
	}
	return s.claims, nil
}

// fakeRevoker implements domain.TokenRevoker for testing.
type fakeRevoker struct {
	revoked map[string]time.Time
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: make(map[string]time.Time)}
}

func (f *fakeRevoker) Revoke(tokenID string, expiresAt time.Time) {
	f.revoked[tokenID] = expiresAt
}

func (f *fakeRevoker) Revoked(tokenID string) bool {
	_, found := f.revoked[tokenID]
	return found
}
