// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// sessionTokenSize is the number of random bytes behind a session token.
const sessionTokenSize = 32

// hashString computes an HMAC-SHA256 digest over the given byte slice
// using the provided hash key.
func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}

// SignValue returns "value.signature" where signature is the base64url
// HMAC-SHA256 of value. It is the format of the session cookie.
func SignValue(value, hashKey string) string {
	return value + "." + base64.RawURLEncoding.EncodeToString(hashString([]byte(value), hashKey))
}

// VerifySignedValue checks a value produced by SignValue and returns the
// unsigned part. The comparison is constant time.
func VerifySignedValue(signed, hashKey string) (string, bool) {
	idx := strings.LastIndexByte(signed, '.')
	if idx <= 0 || idx == len(signed)-1 {
		return "", false
	}

	value, signature := signed[:idx], signed[idx+1:]
	got, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return "", false
	}

	if !hmac.Equal(got, hashString([]byte(value), hashKey)) {
		return "", false
	}
	return value, true
}

// GenerateSessionToken returns a fresh opaque session token: 32 random bytes
// in base64url. The alphabet has no '.', so a session token is never
// mistaken for a JWT.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenSize)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
