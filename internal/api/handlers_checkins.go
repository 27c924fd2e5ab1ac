package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/lifelag/lifelag/internal/services"
)

func (handler *Handler) SubmitCheckin(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	answers := services.Answers{}
	if err := c.BodyParser(&answers); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid checkin answers")
	}

	result, err := handler.checkinService.SubmitCheckin(c.UserContext(), user.ID, answers)
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(result)
	case errors.Is(err, services.ErrCheckinAnswersInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid checkin answers")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to save checkin")
	}
}

func (handler *Handler) ListCheckins(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	limit, ok := parseLimitQuery(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid limit")
	}

	summaries, err := handler.checkinService.RecentSummaries(user.ID, limit)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load checkins")
	}
	total, err := handler.repositories.Checkins.CountByUser(user.ID)
	if err != nil {
		log.Printf("checkins: count for user %d failed: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load checkins")
	}

	return c.JSON(fiber.Map{
		"checkins":    summaries,
		"total":       total,
		"streakCount": user.StreakCount,
	})
}

func (handler *Handler) ListMilestones(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	milestones, err := handler.checkinService.Milestones(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load milestones")
	}
	return c.JSON(fiber.Map{"milestones": milestones})
}

// PreviewScore scores answers without persisting anything.
func (handler *Handler) PreviewScore(c *fiber.Ctx) error {
	answers := services.Answers{}
	if err := c.QueryParser(&answers); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid checkin answers")
	}
	if err := services.ValidateAnswers(answers); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid checkin answers")
	}

	score := services.CalculateLagScore(answers)
	category := services.DriftCategoryForScore(score)
	weakest := services.WeakestDimension(answers)
	return c.JSON(fiber.Map{
		"lagScore":         score,
		"driftCategory":    category,
		"weakestDimension": weakest,
		"tip":              services.TipFor(weakest, category),
	})
}
