package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/tu-usuario/almacen-stock/internal/application/dto"
)

// ipRateLimiter limita peticiones por IP de origen. Un limiter por IP en una
// LRU con TTL: las IPs inactivas expiran solas, sin goroutine de limpieza.
type ipRateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newIPRateLimiter(requestsPerMin int) *ipRateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &ipRateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](1000, nil, time.Minute*5),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

func (rl *ipRateLimiter) allow(key string) bool {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter.Allow()
}

// LoginRateLimit limita los intentos de login por IP para frenar fuerza bruta
// de credenciales. requestsPerMin <= 0 desactiva el límite.
func LoginRateLimit(requestsPerMin int) fiber.Handler {
	if requestsPerMin <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	rl := newIPRateLimiter(requestsPerMin)
	return func(c *fiber.Ctx) error {
		if !rl.allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiados intentos, reintentar más tarde"})
		}
		return c.Next()
	}
}
