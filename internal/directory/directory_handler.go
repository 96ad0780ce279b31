package directory

import (
	"net/http"

	"go-agency/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("directory.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Availability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.service.Availability(c.Request.Context(), c.GetString("agency_id"), req.Role)
	if err != nil {
		h.logger.Warn("http availability failed", zap.String("role", req.Role), zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
