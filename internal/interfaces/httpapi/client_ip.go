package httpapi

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

var clientIPHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// resolveClientIP returns the first parseable address from the proxy headers,
// falling back to the socket peer. Only used for request logs.
func resolveClientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		if addr, ok := parseClientAddr(r.Header.Get(header)); ok {
			return addr.String()
		}
	}
	if addr, ok := parseClientAddr(r.RemoteAddr); ok {
		return addr.String()
	}
	return ""
}

// parseClientAddr accepts a bare IP, host:port, or a forwarded-for list whose
// first entry is used.
func parseClientAddr(raw string) (netip.Addr, bool) {
	first, _, _ := strings.Cut(raw, ",")
	value := strings.TrimSpace(first)
	if value == "" {
		return netip.Addr{}, false
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
