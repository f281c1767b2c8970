package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/repair_workorder/internal/auth"
)

// SetupAdminRoutes 用户管理、数据维护与系统配置路由
func SetupAdminRoutes(api *gin.RouterGroup, jwt, optionalJWT gin.HandlerFunc, h Handlers) {
	adminOnly := auth.RequireRoles(auth.RoleAdmin)

	users := api.Group("/users")
	users.Use(jwt, adminOnly)
	{
		users.GET("", h.Users.ListUsers)
		users.POST("", h.Users.CreateUser)
		users.GET("/:id", h.Users.GetUser)
		users.PUT("/:id", h.Users.UpdateUser)
		users.DELETE("/:id", h.Users.DeleteUser)
	}

	admin := api.Group("/admin")
	admin.Use(jwt, adminOnly)
	{
		admin.GET("/export", h.Admin.Export)
		admin.POST("/import", h.Admin.Import)
		admin.POST("/clear", h.Admin.Clear)
	}
	legacyAdmin := api.Group("/admin-manager.php")
	legacyAdmin.Use(jwt, adminOnly)
	{
		legacyAdmin.GET("", h.Admin.Dispatch)
		legacyAdmin.POST("", h.Admin.Dispatch)
	}

	// 前端在登录前需要读取初始化状态
	for _, path := range []string{"/config", "/config-manager.php"} {
		api.GET(path, h.System.GetConfig)
		api.POST(path, jwt, adminOnly, h.System.UpdateConfig)
	}

	// 未初始化时允许匿名调用，之后只允许管理员
	api.POST("/database/init", optionalJWT, h.System.InitDatabase)
	api.POST("/database-init.php", optionalJWT, h.System.InitDatabase)

	api.GET("/headers", h.System.GetHeaders)
	for _, path := range []string{"/headers", "/save-headers.php"} {
		api.POST(path, jwt, h.System.SaveHeaders)
		api.PUT(path, jwt, h.System.SaveHeaders)
	}
}
