package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lifelag/lifelag/internal/services"
)

type credentialsInput struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	DisplayName string `json:"displayName" form:"displayName"`
}

type userView struct {
	ID               uint       `json:"id"`
	Email            string     `json:"email"`
	DisplayName      string     `json:"displayName,omitempty"`
	StreakCount      int        `json:"streakCount"`
	LastCheckinAt    *time.Time `json:"lastCheckinAt,omitempty"`
	RemindersEnabled bool       `json:"remindersEnabled"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Register(input.Email, input.Password, input.DisplayName)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid credentials")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	case errors.Is(err, services.ErrAuthEmailExists):
		return apiError(c, fiber.StatusConflict, "email already registered")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	token, err := handler.buildToken(&user, authTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.setAuthCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user": userView{
			ID:               user.ID,
			Email:            user.Email,
			DisplayName:      user.DisplayName,
			RemindersEnabled: user.RemindersEnabled,
		},
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	limiterKey := loginLimiterKey(c, strings.ToLower(strings.TrimSpace(input.Email)))
	now := time.Now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		c.Set(fiber.HeaderRetryAfter, "900")
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.recordFailure(limiterKey, now)
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load user")
	}
	handler.loginLimiter.reset(limiterKey)

	token, err := handler.buildToken(&user, authTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.setAuthCookie(c, token)

	return c.JSON(fiber.Map{
		"token": token,
		"user": userView{
			ID:               user.ID,
			Email:            user.Email,
			DisplayName:      user.DisplayName,
			StreakCount:      user.StreakCount,
			LastCheckinAt:    user.LastCheckinAt,
			RemindersEnabled: user.RemindersEnabled,
		},
	})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearCookie(c, authCookieName)
	handler.clearCookie(c, pulseCookieName)
	return c.JSON(fiber.Map{"ok": true})
}
