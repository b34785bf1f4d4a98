package server

import (
	"context"
	"log/slog"

	"bookswap/app/config"
	"bookswap/app/service/analytics"
	"bookswap/app/service/engine"
	"bookswap/app/service/feedback"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	cfg          *config.Config
	engineSvc    *engine.Service
	analyticsSvc *analytics.Service
	feedbackSvc  *feedback.Service

	app *fiber.App
}

type chatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:          do.MustInvoke[*config.Config](di),
		engineSvc:    do.MustInvoke[*engine.Service](di),
		analyticsSvc: do.MustInvoke[*analytics.Service](di),
		feedbackSvc:  do.MustInvoke[*feedback.Service](di),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := s.app.Group("/api/chatbot")
	api.Post("/", s.handleChat)
	api.Get("/analytics", s.handleAnalytics)
	api.Post("/train", s.handleTrain)

	return s, nil
}

// App exposes the fiber app for tests.
func (s *Service) App() *fiber.App {
	return s.app
}

// Run serves the HTTP API until ctx is cancelled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		slog.Info("HTTP API listening", "addr", s.cfg.Server.Addr)
		return s.app.Listen(s.cfg.Server.Addr)
	})

	eg.Go(func() error {
		<-ctx.Done()
		return s.app.Shutdown()
	})

	return eg.Wait()
}

func (s *Service) handleChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	response := s.engineSvc.ProcessMessage(c.UserContext(), req.UserID, req.Message)

	return c.JSON(response)
}

func (s *Service) handleAnalytics(c *fiber.Ctx) error {
	return c.JSON(s.analyticsSvc.Summarize())
}

func (s *Service) handleTrain(c *fiber.Ctx) error {
	var req feedback.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Query == "" || req.Intent == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query and intent are required",
		})
	}

	record, err := s.feedbackSvc.Add(req)
	if err != nil {
		slog.Error("Failed to store training feedback", "error", err)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Feedback received for training",
		"id":      record.ID,
	})
}
