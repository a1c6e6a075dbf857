package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ClientIPResolver derives the client address of a request. X-Forwarded-For is
// only read when the socket peer is a trusted proxy.
type ClientIPResolver struct {
	trusted []*net.IPNet
}

// NewClientIPResolver accepts plain IPs and CIDRs.
func NewClientIPResolver(proxies []string) (*ClientIPResolver, error) {
	res := &ClientIPResolver{}
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", p)
			}
			bits := 32
			if ip.To4() == nil {
				bits = 128
			}
			p = fmt.Sprintf("%s/%d", ip.String(), bits)
		}
		_, network, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
		res.trusted = append(res.trusted, network)
	}
	return res, nil
}

func (c *ClientIPResolver) isTrusted(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, n := range c.trusted {
		if n.Contains(parsed) {
			return true
		}
	}
	return false
}

// ClientIP walks X-Forwarded-For from the right, skipping trusted hops, and
// falls back to the socket address.
func (c *ClientIPResolver) ClientIP(r *http.Request) string {
	remote := RemoteIP(r)
	if c == nil || !c.isTrusted(remote) {
		return remote
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !c.isTrusted(hop) {
			return hop
		}
	}
	return remote
}

// RemoteIP is the host part of the socket peer address.
func RemoteIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
