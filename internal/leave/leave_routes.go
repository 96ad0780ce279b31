package leave

import (
	"go-agency/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	guard ...gin.HandlerFunc,
) {
	create := []gin.HandlerFunc{middleware.RBACAuthorize(rbacService, "leave", "create")}
	if rdb != nil {
		create = append(create, middleware.Idempotency(rdb))
	}
	create = append(create, handler.Create)

	leaves := r.Group("/leaves")
	leaves.Use(guard...)
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.GetById)
		leaves.POST("", create...)
		leaves.PATCH("/:id/status", middleware.RBACAuthorize(rbacService, "leave", "approve"), handler.UpdateStatus)
	}
}
