package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lifelag/lifelag/internal/services"
)

type quickPulseInput struct {
	Response string `json:"response" form:"response"`
}

func (handler *Handler) QuickPulseStatus(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	status, err := handler.pulseService.Status(user.ID, handler.dismissedPulseCheckinID(c, user.ID))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load checkins")
	}
	return c.JSON(status)
}

func (handler *Handler) RespondToQuickPulse(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := quickPulseInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid quick pulse response")
	}

	adjustment, err := handler.pulseService.Respond(user.ID, input.Response)
	switch {
	case err == nil:
		return c.JSON(adjustment)
	case errors.Is(err, services.ErrQuickPulseResponseInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid quick pulse response")
	case errors.Is(err, services.ErrQuickPulseNoCheckin):
		return apiError(c, fiber.StatusConflict, "checkin required")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to load checkins")
	}
}

// DismissQuickPulse hides the pulse for the rest of the browser session, until
// a newer check-in exists.
func (handler *Handler) DismissQuickPulse(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	status, err := handler.pulseService.Status(user.ID, 0)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load checkins")
	}
	if status.LatestCheckinID == 0 {
		return apiError(c, fiber.StatusConflict, "checkin required")
	}

	if err := handler.setPulseDismissalCookie(c, user.ID, status.LatestCheckinID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to dismiss quick pulse")
	}
	return c.JSON(fiber.Map{"ok": true, "dismissedCheckinId": status.LatestCheckinID})
}
