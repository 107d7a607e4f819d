package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/societyhub-backend/api/responses"
	pkgerrors "github.com/angelmondragon/societyhub-backend/pkg/errors"
	"github.com/angelmondragon/societyhub-backend/pkg/logger"
	"github.com/angelmondragon/societyhub-backend/pkg/redis"
)

// RateLimiter counts hits against a named window.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (redis.Window, error)
}

// RateLimitPolicy defines the throttling parameters for a traffic surface.
type RateLimitPolicy struct {
	name   string
	window time.Duration
	limit  int
}

// NewRateLimitPolicy builds a policy with the supplied window and limit.
func NewRateLimitPolicy(name string, window time.Duration, limit int) RateLimitPolicy {
	return RateLimitPolicy{
		name:   strings.ToLower(strings.TrimSpace(name)),
		window: window,
		limit:  limit,
	}
}

func (p RateLimitPolicy) enabled() bool {
	return p.window > 0 && p.limit > 0
}

func (p RateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "default"
	}
	return p.name
}

// scope keys counters by actor when one is present and by client IP otherwise.
func (p RateLimitPolicy) scope(r *http.Request) string {
	if actor, ok := ActorFromContext(r.Context()); ok {
		return fmt.Sprintf("%s:user:%s", p.normalizedName(), actor.UserID)
	}
	return fmt.Sprintf("%s:ip:%s", p.normalizedName(), clientIP(r))
}

// RateLimit throttles a route group with a fixed window counter. Mount it
// after Auth so limits apply per user.
func RateLimit(policy RateLimitPolicy, limiter RateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			scope := policy.scope(r)

			win, err := limiter.FixedWindowAllow(ctx, scope, int64(policy.limit), policy.window)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !win.Allowed {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"policy":         policy.normalizedName(),
						"scope":          scope,
						"attempts":       win.Count,
						"limit":          policy.limit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "rate_limit.blocked")
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(win.ResetIn, policy.window)))
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many requests, try again later"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// retryAfterSeconds rounds the remaining window up to whole seconds, falling
// back to the full window when the store reported no ttl.
func retryAfterSeconds(resetIn, window time.Duration) int {
	if resetIn <= 0 {
		resetIn = window
	}
	secs := int(math.Ceil(resetIn.Seconds()))
	return max(secs, 1)
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
