package credential

import (
	"crypto/subtle"
	"strings"

	"coverstudio/internal/domain"
)

// Auth is the explicit, session-scoped security context handed to the
// pipeline. It is constructed per session so tests can substitute one
// without touching shared state.
type Auth struct {
	// CustomKey is a user-supplied API key. It always wins when non-blank.
	CustomKey string
	// LoggedIn is set after the user authenticated against the configured
	// access password. It grants use of the server-held key.
	LoggedIn bool
}

// Source identifies which precedence rule produced a credential.
type Source string

const (
	SourceCustom Source = "custom"
	SourceServer Source = "server"
)

// Credential is the resolved API credential for one outbound call.
type Credential struct {
	Key    string
	Source Source
}

// Resolver applies the credential precedence policy: a non-blank custom key
// wins, an authenticated session falls back to the server-held key, anything
// else is absent. The server key is injected at construction and never
// exposed back to callers beyond the outbound request.
type Resolver struct {
	serverKey string
}

func NewResolver(serverKey string) *Resolver {
	return &Resolver{serverKey: strings.TrimSpace(serverKey)}
}

// Resolve returns the credential to use, or domain.ErrNoCredential when no
// precedence rule applies. The pipeline must not attempt a network call in
// that case.
func (r *Resolver) Resolve(auth Auth) (Credential, error) {
	if key := strings.TrimSpace(auth.CustomKey); key != "" {
		return Credential{Key: key, Source: SourceCustom}, nil
	}
	if auth.LoggedIn && r.serverKey != "" {
		return Credential{Key: r.serverKey, Source: SourceServer}, nil
	}
	return Credential{}, domain.ErrNoCredential
}

// HasServerKey reports whether a server-held key is configured at all. The
// public generate endpoint uses it to fail closed before calling out.
func (r *Resolver) HasServerKey() bool {
	return r.serverKey != ""
}

// CheckPassword compares a login attempt against the configured access
// password. An empty configured password disables the login flow entirely.
func CheckPassword(attempt, configured string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(attempt), []byte(configured)) == 1
}
