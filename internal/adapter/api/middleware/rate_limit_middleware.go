package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"tienduca/internal/infrastructure/ratelimit"
	"tienduca/pkg/errors"
	"tienduca/pkg/logger"
	"tienduca/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit enforces the per-user budget for the given action. Requests
// without an authenticated uid are keyed by client IP.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, _ := c.Get("uid").(string)
			if key == "" {
				key = c.RealIP()
			}

			allowed, waitTime := m.limiter.Allow(key, action)
			if !allowed {
				logger.Warn("Rate limit hit: key=%s action=%s wait=%s", key, action, waitTime)
				return response.Error(c, errors.TooManyRequests(
					fmt.Sprintf("Too many requests, retry in %d seconds", int(waitTime.Seconds())+1)))
			}

			return next(c)
		}
	}
}
