// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account registered through the email/password provider.
type User struct {
	// ID is the UUIDv7 identifier assigned at registration.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique, lower-cased login of the user.
	Email string `json:"email"`

	// EmailVerified reports whether the email address was confirmed.
	// Nothing in the server flips it yet; it is kept for schema parity.
	EmailVerified bool `json:"emailVerified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Account links a user to a credential provider. Only the "credential"
// provider (email + password) exists.
type Account struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	ProviderID string `json:"providerId"`

	// PasswordHash is the encoded scrypt hash of the password.
	// It never leaves the server.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CredentialProviderID is the provider id of email/password accounts.
const CredentialProviderID = "credential"

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}
