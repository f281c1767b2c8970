package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/repair_workorder/configs"
)

//go:embed migrations
var migrationsFS embed.FS

// MigrationStatus 迁移执行结果
type MigrationStatus struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
	Changed bool `json:"changed"`
}

func newMigrator(gormDB *gorm.DB, driver string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("加载迁移文件失败: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	var dbDriver database.Driver
	switch driver {
	case configs.DriverMySQL:
		dbDriver, err = migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	case configs.DriverSQLite:
		dbDriver, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, dbDriver)
	if err != nil {
		return nil, fmt.Errorf("初始化迁移实例失败: %w", err)
	}
	return m, nil
}

// RunMigrations 应用所有未执行的迁移。
// 不调用 m.Close()：它会关闭与 gorm 共享的 sql.DB。
func RunMigrations(gormDB *gorm.DB, driver string, log *zap.Logger) (MigrationStatus, error) {
	m, err := newMigrator(gormDB, driver)
	if err != nil {
		return MigrationStatus{}, err
	}

	status := MigrationStatus{Changed: true}
	if err := m.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			return status, fmt.Errorf("执行迁移失败: %w", err)
		}
		status.Changed = false
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return status, fmt.Errorf("读取迁移版本失败: %w", err)
	}
	status.Version, status.Dirty = version, dirty

	if dirty {
		log.Warn("数据库迁移处于 dirty 状态", zap.Uint("version", version))
	} else {
		log.Info("数据库迁移完成", zap.Uint("version", version), zap.Bool("changed", status.Changed))
	}
	return status, nil
}

// RollbackMigrations 回退 steps 个版本
func RollbackMigrations(gormDB *gorm.DB, driver string, steps int, log *zap.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("回退步数必须为正数: %d", steps)
	}
	m, err := newMigrator(gormDB, driver)
	if err != nil {
		return err
	}
	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("回退迁移失败: %w", err)
	}
	version, _, _ := m.Version()
	log.Info("数据库迁移已回退", zap.Int("steps", steps), zap.Uint("version", version))
	return nil
}
