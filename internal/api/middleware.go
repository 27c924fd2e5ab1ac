package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lifelag/lifelag/internal/models"
)

const (
	authCookieName  = "lifelag_auth"
	pulseCookieName = "lifelag_pulse"
	contextUserKey  = "current_user"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

// CheckinRateLimit throttles check-in submissions per user. It must run
// after AuthRequired.
func (handler *Handler) CheckinRateLimit(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !handler.checkinLimiter.allow(strconv.FormatUint(uint64(user.ID), 10)) {
		c.Set(fiber.HeaderRetryAfter, "60")
		return apiError(c, fiber.StatusTooManyRequests, "too many checkins")
	}
	return c.Next()
}
