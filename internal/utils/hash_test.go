// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignValue_DependsOnKey(t *testing.T) {
	assert.Equal(t, SignValue("payload", "key"), SignValue("payload", "key"))
	assert.NotEqual(t, SignValue("payload", "key"), SignValue("payload", "other-key"))
}

func TestSignValue_RoundTrip(t *testing.T) {
	signed := SignValue("session-token", "key")
	require.True(t, strings.HasPrefix(signed, "session-token."))

	value, ok := VerifySignedValue(signed, "key")
	require.True(t, ok)
	assert.Equal(t, "session-token", value)
}

func TestVerifySignedValue_Rejects(t *testing.T) {
	signed := SignValue("session-token", "key")

	tests := []struct {
		name   string
		signed string
		key    string
	}{
		{"wrong key", signed, "other"},
		{"tampered value", "session-tokeN" + signed[len("session-token"):], "key"},
		{"no signature", "session-token", "key"},
		{"empty signature", "session-token.", "key"},
		{"empty value", "." + strings.SplitN(signed, ".", 2)[1], "key"},
		{"invalid base64", "session-token.!!!", "key"},
		{"empty", "", "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := VerifySignedValue(tt.signed, tt.key)
			assert.False(t, ok)
		})
	}
}

func TestGenerateSessionToken(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		token, err := GenerateSessionToken()
		require.NoError(t, err)

		assert.Len(t, token, 43)
		assert.False(t, LooksLikeJWT(token))
		assert.NotContains(t, seen, token)
		seen[token] = struct{}{}
	}
}
