package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/diario-eletronico/internal/dto"
	"github.com/noah-isme/diario-eletronico/internal/middleware"
	"github.com/noah-isme/diario-eletronico/internal/service"
	"github.com/noah-isme/diario-eletronico/internal/utils"
)

// ActivityHandler lists the calling session's remote operations.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the activity handler.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register binds the activity routes.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	req := dto.ActivityListRequest{
		Page:      page,
		PageSize:  pageSize,
		SessionID: middleware.SessionID(c),
		Action:    c.Query("action"),
		Outcome:   c.Query("outcome"),
	}

	result, err := h.service.List(requestContext(c), req)
	if err != nil {
		if isValidationError(err) {
			return utils.Fail(c, fiber.StatusBadRequest, "invalid activity filter", err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity")
	}

	return utils.OK(c, result.Items, "activity retrieved", fiber.Map{"pagination": result.Pagination})
}
