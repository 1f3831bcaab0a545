// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/netip"
	"strings"
)

// withRealIP replaces RemoteAddr with the client address named by
// X-Forwarded-For or X-Real-IP, but only when the peer is one of the
// configured trusted proxies. X-Forwarded-For is walked from the right and
// the first hop that is not a trusted proxy is the client.
func (h *Handler) withRealIP(next http.Handler) http.Handler {
	if len(h.proxies) == 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip, ok := h.forwardedFor(r); ok {
			r.RemoteAddr = ip.String()
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) forwardedFor(r *http.Request) (netip.Addr, bool) {
	peer, ok := parseIP(r.RemoteAddr)
	if !ok || !h.trusted(peer) {
		return netip.Addr{}, false
	}

	if values := r.Header.Values("X-Forwarded-For"); len(values) > 0 {
		hops := strings.Split(strings.Join(values, ","), ",")
		client := netip.Addr{}
		for i := len(hops) - 1; i >= 0; i-- {
			ip, ok := parseIP(strings.TrimSpace(hops[i]))
			if !ok {
				break
			}
			client = ip
			if !h.trusted(ip) {
				break
			}
		}
		if client.IsValid() {
			return client, true
		}
	}

	if ip, ok := parseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ok {
		return ip, true
	}
	return netip.Addr{}, false
}

func (h *Handler) trusted(ip netip.Addr) bool {
	for _, p := range h.proxies {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}

// parseIP accepts an address with or without a port.
func parseIP(s string) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap(), true
	}
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return ip.Unmap(), true
}
