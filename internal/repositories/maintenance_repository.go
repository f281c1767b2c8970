package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaintenanceRepository 管理员批量维护操作
type MaintenanceRepository interface {
	// ClearTables 清空给定表并把自增计数重置为 1，返回每张表删除的行数。
	// 删除在一个事务内完成，任一失败全部回滚。
	ClearTables(ctx context.Context, tables []string) (map[string]int64, error)
	// Transaction 在事务中执行 fn，供跨仓库的批量写入使用
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormMaintenanceRepository struct {
	db *gorm.DB
}

func NewGormMaintenanceRepository(db *gorm.DB) MaintenanceRepository {
	return &gormMaintenanceRepository{db: db}
}

func (r *gormMaintenanceRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *gormMaintenanceRepository) ClearTables(ctx context.Context, tables []string) (map[string]int64, error) {
	deleted := make(map[string]int64, len(tables))
	dialect := r.db.Dialector.Name()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			result := tx.Exec("DELETE FROM ?", clause.Table{Name: table})
			if result.Error != nil {
				return fmt.Errorf("清空表 %s 失败: %w", table, result.Error)
			}
			deleted[table] = result.RowsAffected

			if dialect == "sqlite" {
				if err := tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table).Error; err != nil {
					return fmt.Errorf("重置表 %s 自增计数失败: %w", table, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// MySQL 的 ALTER TABLE 会隐式提交，放在删除事务之后执行
	if dialect == "mysql" {
		for _, table := range tables {
			if err := r.db.WithContext(ctx).Exec("ALTER TABLE ? AUTO_INCREMENT = 1", clause.Table{Name: table}).Error; err != nil {
				return deleted, fmt.Errorf("重置表 %s 自增计数失败: %w", table, err)
			}
		}
	}
	return deleted, nil
}
