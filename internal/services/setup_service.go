package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/repair_workorder/configs"
	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/internal/repositories"
	"github.com/repair_workorder/pkg/db"
	"github.com/repair_workorder/pkg/utils"
)

// BootstrapAdminUsername 初始化时创建的管理员账户
const BootstrapAdminUsername = "admin"

// MigrateFunc 执行数据库迁移
type MigrateFunc func() (db.MigrationStatus, error)

// SetupResult 数据库初始化的步骤日志
type SetupResult struct {
	Log          []string           `json:"log"`
	Migration    db.MigrationStatus `json:"migration"`
	AdminCreated bool               `json:"admin_created"`
}

// SetupService 数据库初始化与 app-config.ini 状态管理
type SetupService interface {
	Initialized() bool
	InitDatabase(ctx context.Context) (*SetupResult, error)
	GetConfig(key string) (interface{}, error)
	SetConfig(key string, value interface{}) error
}

type setupService struct {
	migrate       MigrateFunc
	users         repositories.UserRepository
	state         *configs.AppState
	adminPassword string
	logger        *zap.Logger
}

// NewSetupService 创建 SetupService。adminPassword 为空时生成随机密码并写入日志。
func NewSetupService(migrate MigrateFunc, users repositories.UserRepository, state *configs.AppState, adminPassword string, logger *zap.Logger) SetupService {
	return &setupService{
		migrate:       migrate,
		users:         users,
		state:         state,
		adminPassword: adminPassword,
		logger:        logger,
	}
}

func (s *setupService) Initialized() bool {
	return s.state.DatabaseInitialized()
}

func (s *setupService) InitDatabase(ctx context.Context) (*SetupResult, error) {
	result := &SetupResult{Log: []string{"开始数据库初始化检查"}}

	status, err := s.migrate()
	if err != nil {
		result.Log = append(result.Log, "初始化失败: "+err.Error())
		return result, err
	}
	result.Migration = status
	if status.Changed {
		result.Log = append(result.Log, fmt.Sprintf("已执行数据库迁移，当前版本 %d", status.Version))
	} else {
		result.Log = append(result.Log, "数据库结构完整，无需迁移")
	}

	n, err := s.users.Count(ctx)
	if err != nil {
		result.Log = append(result.Log, "初始化失败: "+err.Error())
		return result, err
	}
	if n == 0 {
		if err := s.seedAdmin(ctx); err != nil {
			result.Log = append(result.Log, "创建管理员账户失败: "+err.Error())
			return result, err
		}
		result.AdminCreated = true
		result.Log = append(result.Log, "已创建管理员账户 "+BootstrapAdminUsername)
	}

	// 数据库已可用，状态文件写入失败只记录
	if err := s.state.SetDatabaseInitialized(true); err != nil {
		s.logger.Warn("更新初始化状态失败", zap.Error(err))
		result.Log = append(result.Log, "更新配置文件时出错: "+err.Error())
	} else {
		result.Log = append(result.Log, "配置文件已更新，数据库标记为已初始化")
	}
	result.Log = append(result.Log, "数据库初始化成功完成")
	return result, nil
}

func (s *setupService) seedAdmin(ctx context.Context) error {
	password := s.adminPassword
	if password == "" {
		password = uuid.NewString()[:12]
		s.logger.Warn("未配置初始管理员密码，已生成随机密码，请登录后修改",
			zap.String("username", BootstrapAdminUsername), zap.String("password", password))
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.Create(ctx, &models.User{
		Username:     BootstrapAdminUsername,
		PasswordHash: hash,
		RealName:     "系统管理员",
		Permissions:  models.PermissionAdmin,
		Status:       models.UserStatusActive,
	})
}

func (s *setupService) GetConfig(key string) (interface{}, error) {
	if key == "" {
		return s.state.All(), nil
	}
	return s.state.Get(key)
}

func (s *setupService) SetConfig(key string, value interface{}) error {
	return s.state.Set(key, value)
}
