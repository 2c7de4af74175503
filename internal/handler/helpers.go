package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/atlastile/cms-go-api/internal/audit"
	"github.com/atlastile/cms-go-api/internal/middleware"
)

func parseQueryInt(c *fiber.Ctx, key string, fallback int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func parseParamID(c *fiber.Ctx) (uint, error) {
	raw := strings.TrimSpace(c.Params("id"))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, errors.New("invalid id parameter")
	}
	return uint(value), nil
}

// auditRequest assembles the request context the audit engine consumes. The
// principal is populated by the JWT middleware for authenticated routes and
// stays nil on the public surface.
func auditRequest(c *fiber.Ctx) audit.Request {
	req := audit.Request{
		SessionID:    sessionID(c),
		ForwardedFor: c.Get("X-Forwarded-For"),
		RemoteAddr:   c.IP(),
		UserAgent:    c.Get("User-Agent"),
		Referrer:     c.Get("Referer"),
	}
	if principal, ok := c.Locals("principal").(*audit.Principal); ok {
		req.Principal = principal
	}
	return req
}

func sessionID(c *fiber.Ctx) string {
	if cookie := strings.TrimSpace(c.Cookies("session_id")); cookie != "" {
		return cookie
	}
	return strings.TrimSpace(c.Get("X-Session-ID"))
}

func requestLogger(c *fiber.Ctx, base zerolog.Logger) *zerolog.Logger {
	logger := base.With().
		Str("correlation_id", middleware.GetCorrelationID(c)).
		Str("route", c.Path()).
		Logger()
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
