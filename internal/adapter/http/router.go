package http

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"portfolio/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const internalMessage = "An error occurred while processing your request."

type Options struct {
	// StaticDir holds a prebuilt client served at "/". Empty disables it.
	StaticDir string
}

type errorBody struct {
	Message string             `json:"message"`
	Errors  []model.FieldError `json:"errors,omitempty"`
}

// NewApp builds the Fiber application with every route registered.
func NewApp(h *Handler, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "portfolio",
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(requestid.New())
	app.Use(accessLog)
	app.Use(recover.New())

	app.Get("/healthz", h.Health)
	app.Get("/resume.pdf", h.DownloadResume)

	api := app.Group("/api")
	api.Post("/contact", h.SubmitContact)

	pf := api.Group("/portfolio")
	pf.Get("/personal-info", h.GetPersonalInfo)
	pf.Put("/personal-info", h.UpdatePersonalInfo)

	h.skills().mount(h, pf, "/skills")
	h.education().mount(h, pf, "/education")
	h.experience().mount(h, pf, "/experience")
	h.projects().mount(h, pf, "/projects")
	h.technologies().mount(h, pf, "/technologies")

	pf.Get("/projects/:id/technologies", h.ListProjectTechnologies)
	pf.Post("/projects/:pid/technologies/:tid", h.AddTechnologyToProject)
	pf.Delete("/projects/:pid/technologies/:tid", h.RemoveTechnologyFromProject)

	if opts.StaticDir != "" {
		app.Static("/", opts.StaticDir)
	}
	return app
}

// ErrorHandler maps handler errors onto the three client-visible outcomes:
// bad input, not found and internal failure.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verr *model.ValidationError
	var ferr *fiber.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{
			Message: fmt.Sprintf("Invalid %s data", verr.Entity.Label()),
			Errors:  verr.Errors,
		})
	case errors.Is(err, model.ErrMalformed):
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Message: model.ErrMalformed.Error()})
	case errors.As(err, &ferr):
		return c.Status(ferr.Code).JSON(errorBody{Message: ferr.Message})
	}

	slog.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", requestID(c),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Message: internalMessage})
}

// accessLog writes one line per request. Errors are resolved here so that
// the logged status is the one the client receives.
func accessLog(c *fiber.Ctx) error {
	start := time.Now()
	if err := c.Next(); err != nil {
		if herr := c.App().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}
	slog.Info("http request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"latency", time.Since(start),
		"request_id", requestID(c),
	)
	return nil
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
