package api

import (
	"github.com/gofiber/fiber/v2"
)

type reminderSettingsInput struct {
	Enabled        bool  `json:"enabled" form:"enabled"`
	TelegramChatID int64 `json:"telegramChatId" form:"telegramChatId"`
}

func (handler *Handler) UpdateReminderSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := reminderSettingsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.authService.UpdateReminderSettings(user.ID, input.Enabled, input.TelegramChatID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update reminder settings")
	}
	return c.JSON(fiber.Map{
		"remindersEnabled": input.Enabled,
		"telegramChatId":   input.TelegramChatID,
	})
}
