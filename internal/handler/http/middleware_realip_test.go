// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithRealIP(t *testing.T) {
	tests := []struct {
		name       string
		proxies    []string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "no trusted proxies keeps the peer",
			remoteAddr: "198.51.100.7:5000",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1", "X-Real-IP": "203.0.113.2"},
			want:       "198.51.100.7:5000",
		},
		{
			name:       "untrusted peer keeps the peer",
			proxies:    []string{"10.0.0.0/8"},
			remoteAddr: "198.51.100.7:5000",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1"},
			want:       "198.51.100.7:5000",
		},
		{
			name:       "trusted peer forwards the client",
			proxies:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:40000",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1"},
			want:       "203.0.113.1",
		},
		{
			name:       "rightmost untrusted hop wins",
			proxies:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:40000",
			headers:    map[string]string{"X-Forwarded-For": "1.1.1.1, 203.0.113.1, 10.9.9.9"},
			want:       "203.0.113.1",
		},
		{
			name:       "malformed hop stops the walk",
			proxies:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:40000",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1, garbage, 10.9.9.9"},
			want:       "10.9.9.9",
		},
		{
			name:       "x-real-ip when no x-forwarded-for",
			proxies:    []string{"10.1.2.3"},
			remoteAddr: "10.1.2.3:40000",
			headers:    map[string]string{"X-Real-IP": "2001:db8::1"},
			want:       "2001:db8::1",
		},
		{
			name:       "trusted peer without headers",
			proxies:    []string{"10.0.0.0/8"},
			remoteAddr: "10.1.2.3:40000",
			want:       "10.1.2.3:40000",
		},
		{
			name:       "ipv4 mapped peer",
			proxies:    []string{"10.0.0.0/8"},
			remoteAddr: "[::ffff:10.1.2.3]:40000",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1"},
			want:       "203.0.113.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAuthConfig()
			cfg.TrustedProxies = tt.proxies
			h, _ := newTestHandler(t, cfg)

			var got string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.withRealIP(next).ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}
