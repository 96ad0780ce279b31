package directory

import (
	"go-agency/internal/middleware"

	"github.com/gin-gonic/gin"
)

// guard runs first on every route (authentication, request logger, rate limit).
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	guard ...gin.HandlerFunc,
) {
	group := r.Group("/directory")
	group.Use(guard...)
	{
		group.GET("/availability", middleware.RBACAuthorize(rbacService, "directory", "read"), handler.Availability)
	}
}
