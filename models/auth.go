// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CredentialKind names the kind of credential an identity was resolved from.
type CredentialKind string

const (
	CredentialSessionCookie CredentialKind = "session_cookie"
	CredentialSessionBearer CredentialKind = "session_bearer"
	CredentialJWT           CredentialKind = "jwt"
)

// Identity is the authenticated caller of a single request.
type Identity struct {
	UserID    string         `json:"userId"`
	Email     string         `json:"email,omitempty"`
	Name      string         `json:"name,omitempty"`
	SessionID string         `json:"sessionId,omitempty"`
	Kind      CredentialKind `json:"kind"`
}

// AuthResult is the per-request outcome of an authentication check.
//
// It is a tagged value: either Authenticated, carrying the resolved
// [Identity], or Unauthenticated, carrying the reason. The reason is kept
// for logging only; callers must not branch on it when deciding the
// response.
type AuthResult struct {
	identity *Identity
	reason   error
}

// Authenticated returns a successful AuthResult for id.
func Authenticated(id Identity) AuthResult {
	return AuthResult{identity: &id}
}

// Unauthenticated returns a failed AuthResult. reason may be nil.
func Unauthenticated(reason error) AuthResult {
	return AuthResult{reason: reason}
}

// IsAuthenticated reports whether the result carries an identity.
func (r AuthResult) IsAuthenticated() bool {
	return r.identity != nil
}

// Identity returns a copy of the resolved identity and true, or a zero
// Identity and false for an unauthenticated result.
func (r AuthResult) Identity() (Identity, bool) {
	if r.identity == nil {
		return Identity{}, false
	}
	return *r.identity, true
}

// Reason returns why authentication failed. It is nil for authenticated
// results and may be nil when no credential was presented.
func (r AuthResult) Reason() error {
	return r.reason
}
