package middleware

import (
	"net/http"

	"healthcare-records/config"
)

type CORSMiddleware struct {
	allowAll bool
	origins  map[string]struct{}
}

func NewCORSMiddleware(cfg config.CORSConfig) *CORSMiddleware {
	m := &CORSMiddleware{origins: make(map[string]struct{}, len(cfg.AllowedOrigins))}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			m.allowAll = true
		}
		m.origins[o] = struct{}{}
	}
	return m
}

func (m *CORSMiddleware) allowed(origin string) bool {
	if m.allowAll {
		return true
	}
	_, ok := m.origins[origin]
	return ok
}

// Handle must wrap the whole router so preflight requests reach it before route matching.
func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")
		if origin != "" && m.allowed(origin) {
			if m.allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, X-RateLimit-Limit, X-RateLimit-Remaining")
		}

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, req)
	})
}
