// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters of stored password hashes.
const (
	scryptN      = 16384
	scryptR      = 16
	scryptP      = 1
	scryptKeyLen = 64
	saltSize     = 16
)

// ErrMalformedPasswordHash is returned by VerifyPassword when the stored hash
// is not of the form "salt:key".
var ErrMalformedPasswordHash = errors.New("malformed password hash")

// HashPassword derives a scrypt key from password with a random salt and
// encodes both as "hex(salt):hex(key)".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key, err := deriveKey(password, salt)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches the encoded hash produced
// by HashPassword.
func VerifyPassword(password, encoded string) (bool, error) {
	saltHex, keyHex, found := strings.Cut(encoded, ":")
	if !found {
		return false, ErrMalformedPasswordHash
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformedPasswordHash, err)
	}
	want, err := hex.DecodeString(keyHex)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrMalformedPasswordHash, err)
	}

	got, err := deriveKey(password, salt)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func deriveKey(password string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("error deriving password key: %w", err)
	}
	return key, nil
}
