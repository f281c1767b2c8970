package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/repair_workorder/internal/handlers"
)

// SetupAuthRoutes 设置认证相关路由
func SetupAuthRoutes(api *gin.RouterGroup, jwt gin.HandlerFunc, h *handlers.AuthHandler) {
	// 公共认证路由 (登录)
	api.POST("/auth/login", h.Login)
	api.POST("/login.php", h.Login)

	// 受保护的认证路由
	protected := api.Group("/auth")
	protected.Use(jwt)
	{
		protected.POST("/logout", h.Logout)
		protected.GET("/me", h.Me)
	}
}
