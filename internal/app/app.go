package app

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/repair_workorder/configs"
	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/handlers"
	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/internal/repositories"
	"github.com/repair_workorder/internal/routes"
	"github.com/repair_workorder/internal/services"
	"github.com/repair_workorder/pkg/db"
	"github.com/repair_workorder/pkg/lock"
)

// Dependencies 组装应用所需的外部资源，Redis 可为空
type Dependencies struct {
	Config *configs.Configuration
	Logger *zap.Logger
	DB     *gorm.DB
	Redis  *goredis.Client
	State  *configs.AppState
}

// App 组装完成的应用
type App struct {
	Router   *gin.Engine
	Issuer   *auth.TokenIssuer
	Denylist auth.Denylist
	Setup    services.SetupService
}

// New 按 仓库 -> 服务 -> 处理器 -> 路由 的顺序组装应用
func New(deps Dependencies) *App {
	cfg := deps.Config
	log := deps.Logger

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	denylist := auth.NewDenylist(deps.Redis)
	locker := lock.NewLocker(deps.Redis)

	// 仓库
	userRepo := repositories.NewGormUserRepository(deps.DB)
	faultRepo := repositories.NewGormDailyRecordRepository[models.FaultWorkOrder](deps.DB)
	sevenSRepo := repositories.NewGormDailyRecordRepository[models.SevenSEvaluation](deps.DB)
	recoveryRepo := repositories.NewGormDailyRecordRepository[models.DataRecoveryRecord](deps.DB)
	workOrderRepo := repositories.NewGormWorkOrderRepository(deps.DB)
	maintenanceRepo := repositories.NewGormMaintenanceRepository(deps.DB)

	// 服务
	authService := services.NewAuthService(userRepo, issuer, denylist, log.Named("auth"))
	userService := services.NewUserService(userRepo)
	faultService := services.NewDailyRecordService[models.FaultWorkOrder](faultRepo, services.DailyRecordOptions{
		Resource: auth.ResourceFaultWorkOrder,
	})
	sevenSService := services.NewDailyRecordService[models.SevenSEvaluation](sevenSRepo, services.DailyRecordOptions{
		Resource:             auth.ResourceSevenS,
		RequireOwnerOnUpdate: true,
	})
	recoveryService := services.NewDailyRecordService[models.DataRecoveryRecord](recoveryRepo, services.DailyRecordOptions{
		Resource: auth.ResourceDataRecovery,
	})
	workOrderService := services.NewWorkOrderService(workOrderRepo)
	adminService := services.NewAdminService(services.AdminRepositories{
		FaultWorkOrders:     faultRepo,
		SevenSEvaluations:   sevenSRepo,
		DataRecoveryRecords: recoveryRepo,
		Maintenance:         maintenanceRepo,
	}, locker, log.Named("admin"))
	headersService := services.NewHeadersService(cfg.Storage.HeadersFile)
	migrateFn := func() (db.MigrationStatus, error) {
		return db.RunMigrations(deps.DB, cfg.Database.Driver, log)
	}
	setupService := services.NewSetupService(migrateFn, userRepo, deps.State, cfg.Auth.BootstrapAdminPassword, log.Named("setup"))

	maxUpload := int64(cfg.Server.MaxUploadMB) << 20

	h := routes.Handlers{
		Auth:            handlers.NewAuthHandler(authService),
		FaultWorkOrders: handlers.NewDailyRecordHandler(faultService, handlers.FaultWorkOrderMessages),
		SevenS:          handlers.NewDailyRecordHandler(sevenSService, handlers.SevenSMessages),
		DataRecovery:    handlers.NewDailyRecordHandler(recoveryService, handlers.DataRecoveryMessages),
		WorkOrders:      handlers.NewWorkOrderHandler(workOrderService),
		Users:           handlers.NewUserHandler(userService),
		Admin:           handlers.NewAdminHandler(adminService, maxUpload),
		System:          handlers.NewSystemHandler(setupService, headersService),
	}

	router := routes.NewRouter(routes.Options{
		Logger:       log,
		Origins:      cfg.Server.Origins(),
		MaxBodyBytes: maxUpload + 1<<20, // multipart 头部余量
		SwaggerUI:    cfg.Server.SwaggerUI,
		Issuer:       issuer,
		Denylist:     denylist,
		Accounts:     userRepo,
	}, h)

	return &App{
		Router:   router,
		Issuer:   issuer,
		Denylist: denylist,
		Setup:    setupService,
	}
}
