package rbac

import (
	"go-agency/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service, guard ...gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(guard...)
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/policies", middleware.RBACAuthorize(service, ResourcePolicy, ActionRead), handler.ListPolicies)
	}
}
