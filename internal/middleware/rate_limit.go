package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/atlastile/cms-go-api/internal/utils"
)

// RateLimit creates a per-client rate limiter. Authenticated clients are
// keyed by user id; guests fall back to their session cookie and then to the
// client IP, mirroring how the activity log identifies them.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return fmt.Sprintf("%s:%s", identifier, clientKey(c))
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.SendError(c, fiber.StatusTooManyRequests, "too many requests")
		},
	})
}

func clientKey(c *fiber.Ctx) string {
	if userID := c.Locals("user_id"); userID != nil {
		return fmt.Sprintf("user:%v", userID)
	}
	if session := strings.TrimSpace(c.Cookies("session_id")); session != "" {
		return "session:" + session
	}
	return "ip:" + c.IP()
}
