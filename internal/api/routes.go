package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/score/preview", handler.PreviewScore)

	checkins := api.Group("/checkins", handler.AuthRequired)
	checkins.Get("", handler.ListCheckins)
	checkins.Post("", handler.CheckinRateLimit, handler.SubmitCheckin)

	api.Get("/milestones", handler.AuthRequired, handler.ListMilestones)

	pulse := api.Group("/quick-pulse", handler.AuthRequired)
	pulse.Get("", handler.QuickPulseStatus)
	pulse.Post("", handler.RespondToQuickPulse)
	pulse.Post("/dismiss", handler.DismissQuickPulse)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Put("/reminders", handler.UpdateReminderSettings)
}
