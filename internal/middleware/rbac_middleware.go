package middleware

import (
	"context"

	"go-agency/internal/domain"
	"go-agency/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by any policy engine that can answer EnforceRequest.
type RBACService interface {
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		agencyID := c.GetString("agency_id")
		if agencyID == "" {
			abortWith(c, apperror.ErrUnauthorized, "missing auth context")
			return
		}

		req := domain.EnforceRequest{
			Role:     c.GetString("role"),
			AgencyID: agencyID,
			Resource: resource,
			Action:   action,
		}

		allowed, err := service.Enforce(c.Request.Context(), req)
		if err != nil {
			zap.L().Named("middleware.rbac").Error("rbac enforce failed",
				zap.String("agency_id", agencyID),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			abortWith(c, apperror.ErrInternal, nil)
			return
		}

		if !allowed {
			abortWith(c, apperror.ErrForbidden, gin.H{"required": resource + ":" + action})
			return
		}
		c.Next()
	}
}
