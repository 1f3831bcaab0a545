// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, signing,
// password hashing, HTTP response writing, HTTP client initialization,
// JWT token generation and validation, and other common operations.
package utils

import (
	"context"

	"github.com/MKhiriev/hello-auth/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AuthResultCtxKey is the key the authentication middleware stores the
// per-request [models.AuthResult] under.
var AuthResultCtxKey = contextKey("authResult")

// TraceIDCtxKey is the key the trace middleware stores the request trace id
// under.
var TraceIDCtxKey = contextKey("traceID")

// WithAuthResult returns a copy of ctx carrying result.
func WithAuthResult(ctx context.Context, result models.AuthResult) context.Context {
	return context.WithValue(ctx, AuthResultCtxKey, result)
}

// GetAuthResultFromContext retrieves the authentication outcome stored in ctx.
//
// Returns the result and an ok flag:
//   - ok == true:  authentication was resolved for this request
//   - ok == false: nothing was resolved yet (or the value has the wrong type)
func GetAuthResultFromContext(ctx context.Context) (models.AuthResult, bool) {
	result, ok := ctx.Value(AuthResultCtxKey).(models.AuthResult)
	return result, ok
}

// GetTraceIDFromContext retrieves the request trace id from ctx.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok
}
