package handler

import (
	"context"

	"session-hub/internal/domain"
)

// mockDirectory implements domain.DirectoryClient for handler tests.
type mockDirectory struct {
	identity  *domain.Identity
	verifyErr error
	upsertErr error
	signupErr error
	verified  int
	upserts   int
}

func (m *mockDirectory) VerifyCredentials(_ context.Context, _, _ string) (*domain.Identity, error) {
	m.verified++
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return m.identity, nil
}

func (m *mockDirectory) UpsertOAuthIdentity(_ context.Context, _, _, _ string) (*domain.Identity, error) {
	m.upserts++
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	return m.identity, nil
}

func (m *mockDirectory) Signup(_ context.Context, _, _ string) error {
	return m.signupErr
}

// fakeProvider implements provider.Provider for handler tests.
type fakeProvider struct {
	name    string
	profile *domain.OAuthProfile
	err     error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.test/authorize?state=" + state
}

func (f *fakeProvider) FetchProfile(_ context.Context, _ string) (*domain.OAuthProfile, error) {
	return f.profile, f.err
}
