package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/diario-eletronico/internal/dto"
	"github.com/noah-isme/diario-eletronico/internal/middleware"
	"github.com/noah-isme/diario-eletronico/internal/models"
	"github.com/noah-isme/diario-eletronico/internal/service"
	"github.com/noah-isme/diario-eletronico/internal/utils"
)

// FormHandler exposes the session form state as JSON.
type FormHandler struct {
	service   service.AlunoService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewFormHandler constructs the form API handler.
func NewFormHandler(service service.AlunoService, validator *validator.Validate, logger zerolog.Logger) *FormHandler {
	return &FormHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "form_handler").Logger(),
	}
}

// Register binds the form routes.
func (h *FormHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Patch("", h.setField)
}

func (h *FormHandler) get(c *fiber.Ctx) error {
	state, err := h.service.State(requestContext(c), middleware.SessionID(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load form state")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load form state")
	}

	return utils.SendSuccess(c, "form state", dto.NewFormStateResponse(state))
}

func (h *FormHandler) setField(c *fiber.Ctx) error {
	var req dto.FieldUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid field update", err.Error())
	}

	state, err := h.service.SetField(requestContext(c), middleware.SessionID(c), req.Field, req.Value)
	if err != nil {
		if errors.Is(err, models.ErrUnknownField) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update form field")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update form field")
	}

	return utils.SendSuccess(c, "form updated", dto.NewFormStateResponse(state))
}
