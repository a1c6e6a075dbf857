package middleware

import (
	"net/http"
	"strconv"
	"time"

	"healthcare-records/pkg/response"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Atomic INCR that starts the window on the first hit
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// KeyFunc builds a rate-limit key from the request.
type KeyFunc func(r *http.Request) string

// KeyByIPAndPath limits each client separately on every path.
func KeyByIPAndPath(ips *ClientIPResolver) KeyFunc {
	return func(r *http.Request) string {
		return "rl:path:" + r.URL.Path + ":ip:" + ips.ClientIP(r)
	}
}

type RateLimitMiddleware struct {
	rdb    *redis.Client
	max    int
	window time.Duration
	keyFn  KeyFunc
	log    *logrus.Logger
}

func NewRateLimitMiddleware(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, log *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		rdb:    rdb,
		max:    max,
		window: window,
		keyFn:  keyFn,
		log:    log,
	}
}

func (m *RateLimitMiddleware) Handle(next http.Handler) http.Handler {
	if m.rdb == nil || m.max <= 0 || m.window <= 0 || m.keyFn == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := m.keyFn(r)

		count, err := incrExpireScript.Run(ctx, m.rdb, []string{key}, m.window.Milliseconds()).Int()
		if err != nil {
			// fail open
			m.log.Warnf("Failed to apply rate limit: %+v", err)
			next.ServeHTTP(w, r)
			return
		}

		resetSec := 0
		if ttl, err := m.rdb.PTTL(ctx, key).Result(); err == nil && ttl > 0 {
			resetSec = int((ttl + time.Second - 1) / time.Second)
		}

		remaining := m.max - count
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(m.max))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > m.max {
			if resetSec > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(resetSec))
			}
			response.TooManyRequests(w, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}
