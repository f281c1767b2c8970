package routes

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/repair_workorder/docs" // 注册 swagger 文档
	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/handlers"
	"github.com/repair_workorder/internal/middleware"
	"github.com/repair_workorder/internal/models"
)

// Handlers 路由用到的全部处理器
type Handlers struct {
	Auth            *handlers.AuthHandler
	FaultWorkOrders *handlers.DailyRecordHandler[models.FaultWorkOrder]
	SevenS          *handlers.DailyRecordHandler[models.SevenSEvaluation]
	DataRecovery    *handlers.DailyRecordHandler[models.DataRecoveryRecord]
	WorkOrders      *handlers.WorkOrderHandler
	Users           *handlers.UserHandler
	Admin           *handlers.AdminHandler
	System          *handlers.SystemHandler
}

// Options 全局中间件与认证配置
type Options struct {
	Logger       *zap.Logger
	Origins      []string
	MaxBodyBytes int64
	SwaggerUI    bool
	Issuer       *auth.TokenIssuer
	Denylist     auth.Denylist
	Accounts     auth.AccountStore
}

// NewRouter 创建 gin 引擎并注册全部路由
func NewRouter(opts Options, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		middleware.Recovery(opts.Logger),
		middleware.CORS(opts.Origins),
		middleware.BodyLimit(opts.MaxBodyBytes),
		gzip.Gzip(gzip.DefaultCompression),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.SwaggerUI {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	SetupRoutes(router, opts, h)
	return router
}

// SetupRoutes 初始化所有 /api 路由
func SetupRoutes(router *gin.Engine, opts Options, h Handlers) {
	api := router.Group("/api")
	jwt := auth.JWTMiddleware(opts.Issuer, opts.Denylist, opts.Accounts)

	SetupAuthRoutes(api, jwt, h.Auth)
	SetupRecordRoutes(api, jwt, h)
	SetupAdminRoutes(api, jwt, auth.OptionalJWTMiddleware(opts.Issuer, opts.Denylist, opts.Accounts), h)
}
