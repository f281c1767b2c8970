package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/handlers"
)

// SetupRecordRoutes 每日记录与工单路由，全部需要登录。
// 每个资源同时挂在旧的 .php 路径下。
func SetupRecordRoutes(api *gin.RouterGroup, jwt gin.HandlerFunc, h Handlers) {
	protected := api.Group("")
	protected.Use(jwt)

	registerDailyRecordRoutes(protected, "fcbmwo", h.FaultWorkOrders)
	registerDailyRecordRoutes(protected, "7s-management", h.SevenS)
	registerDailyRecordRoutes(protected, "drarwo", h.DataRecovery)

	for _, path := range []string{"/workorders", "/workorder.php"} {
		g := protected.Group(path)
		g.GET("", h.WorkOrders.ListWorkOrders)
		g.POST("", h.WorkOrders.CreateWorkOrder)
		g.PUT("", h.WorkOrders.UpdateWorkOrder)
		g.GET("/:id", h.WorkOrders.GetWorkOrder)
		g.PUT("/:id", h.WorkOrders.UpdateWorkOrder)
		g.GET("/:id/logs", h.WorkOrders.ListWorkOrderLogs)
		// 删除需要裁判或管理员
		g.DELETE("", auth.RequireRoles(auth.RoleReferee, auth.RoleAdmin), h.WorkOrders.DeleteWorkOrder)
		g.DELETE("/:id", auth.RequireRoles(auth.RoleReferee, auth.RoleAdmin), h.WorkOrders.DeleteWorkOrder)
	}
}

// registerDailyRecordRoutes 注册 /<name> 与 /<name>.php 两组路由，
// ID 既可以在路径中也可以用 ?id= 传入；/list 与 /create 为旧前端使用的别名
func registerDailyRecordRoutes[T any](group *gin.RouterGroup, name string, h *handlers.DailyRecordHandler[T]) {
	for _, path := range []string{"/" + name, "/" + name + ".php"} {
		g := group.Group(path)
		g.GET("", h.List)
		g.POST("", h.Save)
		g.PUT("", h.Update)
		g.DELETE("", h.Delete)
		g.GET("/list", h.List)
		g.POST("/create", h.Save)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}
