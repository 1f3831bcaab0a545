// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set of the JWTs issued by /api/auth/token.
//
// The "sub" claim carries the user id; "sid" ties the token to the session
// it was minted from.
type TokenClaims struct {
	jwt.RegisteredClaims

	Email     string `json:"email,omitempty"`
	Name      string `json:"name,omitempty"`
	SessionID string `json:"sid,omitempty"`
}

// Identity converts the claims into a request [Identity].
func (c TokenClaims) Identity() Identity {
	return Identity{
		UserID:    c.Subject,
		Email:     c.Email,
		Name:      c.Name,
		SessionID: c.SessionID,
		Kind:      CredentialJWT,
	}
}

// Token wraps a JWT together with its compact serialized form.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// Claims is the decoded claim set.
	Claims TokenClaims `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
