package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(handler.metrics.Registry(), promhttp.HandlerOpts{})))

	api := app.Group("/api", handler.LanguageMiddleware)

	experiments := api.Group("/experiments")
	experiments.Get("", handler.ListExperiments)
	experiments.Post("", handler.CreateExperiment)
	experiments.Get("/active", handler.GetActiveExperiment)
	experiments.Get("/:id", handler.GetExperiment)
	experiments.Put("/:id", handler.UpdateExperiment)
	experiments.Delete("/:id", handler.DeleteExperiment)
	experiments.Post("/:id/toggle", handler.ToggleExperiment)
	experiments.Post("/:id/complete", handler.CompleteExperiment)
	experiments.Post("/:id/wins", handler.LogWinFromExperiment)

	wins := api.Group("/wins")
	wins.Get("", handler.ListWins)
	wins.Post("", handler.LogStandaloneWin)
	wins.Get("/:id", handler.GetWin)
	wins.Put("/:id", handler.UpdateWin)
	wins.Delete("/:id", handler.DeleteWin)
	wins.Post("/:id/move", handler.MoveWin)
	wins.Post("/:id/again", handler.DoItAgain)
	wins.Get("/:id/repeats", handler.GetRepeatCount)

	collections := api.Group("/collections")
	collections.Get("", handler.ListCollections)
	collections.Post("", handler.CreateCollection)
	collections.Put("/:id", handler.RenameCollection)
	collections.Delete("/:id", handler.DeleteCollection)

	api.Post("/undo", handler.Undo)
	api.Delete("/undo", handler.DismissUndo)

	api.Post("/settings/reset", handler.ResetAll)
	api.Get("/export/wins.csv", handler.ExportWinsCSV)
	api.Get("/export/wins.json", handler.ExportWinsJSON)
}
