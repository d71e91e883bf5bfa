package handler

import (
	"bytes"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/diario-eletronico/internal/dto"
	"github.com/noah-isme/diario-eletronico/internal/middleware"
	"github.com/noah-isme/diario-eletronico/internal/models"
	"github.com/noah-isme/diario-eletronico/internal/service"
)

// PageRenderer writes the HTML page for a session's state.
type PageRenderer interface {
	Render(w io.Writer, state models.FormState, toasts []models.Toast) error
}

// AlunoPageHandler serves the server-rendered form and table.
type AlunoPageHandler struct {
	service  service.AlunoService
	renderer PageRenderer
	logger   zerolog.Logger
}

// NewAlunoPageHandler constructs the page handler.
func NewAlunoPageHandler(service service.AlunoService, renderer PageRenderer, logger zerolog.Logger) *AlunoPageHandler {
	return &AlunoPageHandler{
		service:  service,
		renderer: renderer,
		logger:   logger.With().Str("component", "aluno_page_handler").Logger(),
	}
}

// Register binds the page and its form actions. mutating wraps the POST routes, typically with a
// rate limiter.
func (h *AlunoPageHandler) Register(router fiber.Router, mutating ...fiber.Handler) {
	router.Get("/", h.index)

	alunos := router.Group("/alunos", mutating...)
	alunos.Post("", h.submit)
	alunos.Post("/refresh", h.refresh)
	alunos.Post("/:id/edit", h.edit)
	alunos.Post("/:id/delete", h.remove)
}

func (h *AlunoPageHandler) index(c *fiber.Ctx) error {
	ctx := requestContext(c)
	sessionID := middleware.SessionID(c)

	state, err := h.service.EnsureLoaded(ctx, sessionID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load form state")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load page")
	}

	toasts, err := h.service.TakeToasts(ctx, sessionID)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("failed to drain toasts")
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, state, toasts); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to render page")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (h *AlunoPageHandler) submit(c *fiber.Ctx) error {
	var form dto.AlunoForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form body")
	}

	_, err := h.service.Submit(requestContext(c), middleware.SessionID(c), form)
	switch {
	case err == nil:
	case isValidationError(err):
		requestLogger(h.logger, c).Debug().Msg("submit blocked by missing name")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to submit aluno")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to submit form")
	}

	return h.backToIndex(c)
}

func (h *AlunoPageHandler) edit(c *fiber.Ctx) error {
	id, err := alunoIDParam(c)
	if err != nil || id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid aluno id")
	}

	_, err = h.service.BeginEdit(requestContext(c), middleware.SessionID(c), id)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrAlunoNotFound):
		requestLogger(h.logger, c).Debug().Str("aluno_id", id).Msg("edit requested for unknown aluno")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to begin edit")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to begin edit")
	}

	return h.backToIndex(c)
}

func (h *AlunoPageHandler) remove(c *fiber.Ctx) error {
	id, err := alunoIDParam(c)
	if err != nil || id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid aluno id")
	}

	if _, err := h.service.Delete(requestContext(c), middleware.SessionID(c), id); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete aluno")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete aluno")
	}

	return h.backToIndex(c)
}

func (h *AlunoPageHandler) refresh(c *fiber.Ctx) error {
	if _, err := h.service.Refresh(requestContext(c), middleware.SessionID(c)); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to refresh alunos")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to refresh list")
	}

	return h.backToIndex(c)
}

func (h *AlunoPageHandler) backToIndex(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusSeeOther)
}
