// Package server assembles the HTTP API.
package server

import (
	"errors"

	"github.com/bharatsutharx/radiology-center-2/internal/auth"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Registrar interface {
	Register(r fiber.Router)
}

// Route mounts a handler under /api/<Prefix>.
type Route struct {
	Prefix  string
	Handler Registrar
}

type Config struct {
	AppName  string
	Gatherer prometheus.Gatherer
}

// NewApp builds the fiber app. /api/auth/login and /metrics are public;
// every other /api route needs an admin session.
func NewApp(cfg Config, authn *auth.Authenticator, log logger.ZapLogger, routes ...Route) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New())

	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authHandler := auth.NewHandler(authn)
	api := app.Group("/api")
	api.Post("/auth/login", authHandler.Login)

	guarded := api.Group("", auth.RequireSession(authn))
	guarded.Get("/auth/session", authHandler.Session)
	for _, rt := range routes {
		rt.Handler.Register(guarded.Group("/" + rt.Prefix))
	}

	return app
}

func errorHandler(log logger.ZapLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
