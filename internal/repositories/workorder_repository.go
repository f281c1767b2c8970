package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/repair_workorder/internal/models"
)

// WorkOrderChanges 工单更新内容，nil 字段保持不变。
// Details 非 nil 时整体替换明细。
type WorkOrderChanges struct {
	WorkNumber *string
	Status     *string
	Details    *[]models.WorkOrderDetail
}

// WorkOrderRepository 工单头、明细与日志的仓库。
// 每个写操作都在同一事务内追加一条日志。
type WorkOrderRepository interface {
	List(ctx context.Context) ([]models.WorkOrder, error)
	FindByID(ctx context.Context, id int64) (*models.WorkOrder, error)
	Create(ctx context.Context, order *models.WorkOrder, operator string) error
	Update(ctx context.Context, id int64, changes WorkOrderChanges, operator string) (*models.WorkOrder, error)
	Delete(ctx context.Context, id int64, operator string) error
	Logs(ctx context.Context, id int64) ([]models.WorkOrderLog, error)
}

type gormWorkOrderRepository struct {
	db *gorm.DB
}

func NewGormWorkOrderRepository(db *gorm.DB) WorkOrderRepository {
	return &gormWorkOrderRepository{db: db}
}

func (r *gormWorkOrderRepository) List(ctx context.Context) ([]models.WorkOrder, error) {
	orders := make([]models.WorkOrder, 0)
	err := r.db.WithContext(ctx).
		Table("WorkOrder AS wo").
		Select("wo.id, wo.work_number, wo.created_by, wo.status, wo.created_at, wo.updated_at, COUNT(wod.id) AS detail_count").
		Joins("LEFT JOIN WorkOrderDetail wod ON wod.work_order_id = wo.id").
		Group("wo.id, wo.work_number, wo.created_by, wo.status, wo.created_at, wo.updated_at").
		Order("wo.created_at DESC, wo.id DESC").
		Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *gormWorkOrderRepository) FindByID(ctx context.Context, id int64) (*models.WorkOrder, error) {
	var order models.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("engineer ASC, fault_type ASC, id ASC")
		}).
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	order.DetailCount = int64(len(order.Details))
	return &order, nil
}

func (r *gormWorkOrderRepository) Create(ctx context.Context, order *models.WorkOrder, operator string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 明细随工单头一并写入
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		order.DetailCount = int64(len(order.Details))
		return appendLog(tx, order.ID, operator, models.OperationCreate, "创建工单: "+order.WorkNumber)
	})
}

func (r *gormWorkOrderRepository) Update(ctx context.Context, id int64, changes WorkOrderChanges, operator string) (*models.WorkOrder, error) {
	var order models.WorkOrder
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"updated_at": tx.NowFunc()}
		if changes.WorkNumber != nil {
			updates["work_number"] = *changes.WorkNumber
		}
		if changes.Status != nil {
			updates["status"] = *changes.Status
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}

		if changes.Details != nil {
			if err := tx.Where("work_order_id = ?", id).Delete(&models.WorkOrderDetail{}).Error; err != nil {
				return err
			}
			details := *changes.Details
			for i := range details {
				details[i].ID = 0
				details[i].WorkOrderID = id
			}
			if len(details) > 0 {
				if err := tx.Create(&details).Error; err != nil {
					return err
				}
			}
		}

		workNumber := order.WorkNumber
		if changes.WorkNumber != nil {
			workNumber = *changes.WorkNumber
		}
		return appendLog(tx, id, operator, models.OperationUpdate, "更新工单: "+workNumber)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *gormWorkOrderRepository) Delete(ctx context.Context, id int64, operator string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.WorkOrder
		if err := tx.First(&order, id).Error; err != nil {
			return err
		}
		// 日志不设外键，工单删除后仍保留
		if err := appendLog(tx, id, operator, models.OperationDelete, "删除工单: "+order.WorkNumber); err != nil {
			return err
		}
		if err := tx.Where("work_order_id = ?", id).Delete(&models.WorkOrderDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.WorkOrder{}, id).Error
	})
}

func (r *gormWorkOrderRepository) Logs(ctx context.Context, id int64) ([]models.WorkOrderLog, error) {
	logs := make([]models.WorkOrderLog, 0)
	err := r.db.WithContext(ctx).Where("work_order_id = ?", id).Order("created_at ASC, id ASC").Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func appendLog(tx *gorm.DB, orderID int64, operator, operation, detail string) error {
	entry := models.WorkOrderLog{
		WorkOrderID:     orderID,
		Operator:        operator,
		OperationType:   operation,
		OperationDetail: detail,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("写入工单日志失败: %w", err)
	}
	return nil
}
