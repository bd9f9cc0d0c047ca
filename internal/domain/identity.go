package domain

// Identity is the canonical user identity assigned by the directory service.
// Every login event, whatever the provider, converges on one of these.
type Identity struct {
	ID    string
	Email string
	Name  string
	Image string
}

// EventKind tags the variant of a raw authentication event.
type EventKind int

const (
	EventCredentials EventKind = iota
	EventOAuth
)

// AuthEvent is the raw result of a provider reporting a successful sign-in.
// The variant is decided at the boundary where the provider reports success,
// never inferred later by field probing. Exactly one of Credentials or
// OAuth is set, matching Kind.
type AuthEvent struct {
	Kind        EventKind
	Credentials *CredentialsResult
	OAuth       *OAuthProfile
}

// CredentialsResult is a directory-verified credentials login. The directory
// has already assigned the id.
type CredentialsResult struct {
	ID    string
	Email string
}

// OAuthProfile is a provider-shaped profile normalized into the common shape.
// It carries no application-level id; reconciliation against the directory
// is mandatory.
type OAuthProfile struct {
	Provider string
	Email    string
	Name     string
	Image    string
}

// CredentialsEvent wraps a verified credentials result as an auth event.
func CredentialsEvent(res *CredentialsResult) AuthEvent {
	return AuthEvent{Kind: EventCredentials, Credentials: res}
}

// OAuthEvent wraps a normalized provider profile as an auth event.
func OAuthEvent(profile *OAuthProfile) AuthEvent {
	return AuthEvent{Kind: EventOAuth, OAuth: profile}
}
