package rbac

import (
	"net/http"
	"strings"

	"go-agency/internal/domain"
	"go-agency/internal/role"
	"go-agency/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Enforce answers a permission question for the caller's agency. When the
// body omits role, the caller's own role is checked.
func (h *Handler) Enforce(c *gin.Context) {
	var req domain.EnforceRequest
	req.AgencyID = c.GetString("agency_id")

	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	// Tenant isolation: the token's agency always wins over the body.
	if agencyID := c.GetString("agency_id"); agencyID != "" {
		req.AgencyID = agencyID
	}
	req.Role = strings.TrimSpace(req.Role)
	if req.Role == "" {
		req.Role = c.GetString("role")
	}
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	allowed, err := h.service.Enforce(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("http rbac enforce failed", zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{
		Allowed: allowed,
		Classes: role.Classify(req.Role).Names(),
	}, nil)
}

func (h *Handler) ListPolicies(c *gin.Context) {
	resp, err := h.service.Policies(c.Request.Context(), c.GetString("agency_id"))
	if err != nil {
		h.logger.Error("http list policies failed", zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
