package router

import (
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"github.com/noah-isme/diario-eletronico/internal/config"
	"github.com/noah-isme/diario-eletronico/internal/handler"
	"github.com/noah-isme/diario-eletronico/internal/middleware"
	"github.com/noah-isme/diario-eletronico/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	PageHandler         *handler.AlunoPageHandler
	FormHandler         *handler.FormHandler
	ActivityHandler     *handler.ActivityHandler
	NotificationHandler *handler.NotificationHandler
	Static              fs.FS
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	if deps.Static != nil {
		app.Use("/static", filesystem.New(filesystem.Config{
			Root:   http.FS(deps.Static),
			MaxAge: 3600,
		}))
	}

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.FormHandler != nil {
		deps.FormHandler.Register(api.Group("/form"))
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(api.Group("/activity"))
	}
	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications"))
	}

	// Form actions hit the remote API, so they are throttled per session.
	if deps.PageHandler != nil {
		deps.PageHandler.Register(app, middleware.RateLimit("alunos", cfg.RateLimitMax, cfg.RateLimitWindow))
	}
}
