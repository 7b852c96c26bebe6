package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/FaranAlam/faran-portfolio/internal/logging"
)

// RealIP rewrites r.RemoteAddr to the client address from X-Forwarded-For or
// X-Real-IP, but only when the direct peer is one of trusted. Entries are
// single addresses or CIDR ranges. With no trusted proxies the headers are
// ignored and rate limits key on the socket address.
func RealIP(trusted []string) func(http.Handler) http.Handler {
	var proxies []netip.Prefix
	for _, entry := range trusted {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			proxies = append(proxies, prefix.Masked())
			continue
		}
		if addr, err := netip.ParseAddr(entry); err == nil {
			addr = addr.Unmap()
			proxies = append(proxies, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		logging.Warn().Str("entry", entry).Msg("ignoring invalid trusted proxy")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isFromTrustedProxy(proxies, r.RemoteAddr) {
				if ip := forwardedIP(r); ip != "" {
					r.RemoteAddr = ip
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isFromTrustedProxy(proxies []netip.Prefix, remoteAddr string) bool {
	if len(proxies) == 0 {
		return false
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range proxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// forwardedIP returns the left-most valid X-Forwarded-For entry, falling back
// to X-Real-IP.
func forwardedIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if addr, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return addr.Unmap().String()
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if addr, err := netip.ParseAddr(xri); err == nil {
			return addr.Unmap().String()
		}
	}
	return ""
}
