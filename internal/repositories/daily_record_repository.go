package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/repair_workorder/internal/models"
)

// ErrRecordNotFound 是 gorm.ErrRecordNotFound 的别名，方便服务层判断
var ErrRecordNotFound = gorm.ErrRecordNotFound

// DailyRecordPtr 约束每日记录模型的指针类型
type DailyRecordPtr[T any] interface {
	*T
	models.DailyRecord
}

// DailyRecordFilter 列表过滤条件，零值字段不参与过滤
type DailyRecordFilter struct {
	ID   int64
	User string
	Date *models.Date
}

// DailyRecordRepository 按 (user, 日期) 唯一的每日记录仓库
type DailyRecordRepository[T any] interface {
	// List 按日期倒序、创建时间倒序返回
	List(ctx context.Context, filter DailyRecordFilter) ([]T, error)
	// All 按 id 升序返回全部记录，用于导出
	All(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id int64) (*T, error)
	FindByKey(ctx context.Context, user string, day models.Date) (*T, error)
	// Upsert 按自然键新建或覆盖内容列，rec 回填为保存后的行
	Upsert(ctx context.Context, rec *T) (string, error)
	// UpdateByID 覆盖指定行的内容列，键列不变
	UpdateByID(ctx context.Context, id int64, rec *T) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	TableName() string
	WithTx(tx *gorm.DB) DailyRecordRepository[T]
}

type gormDailyRecordRepository[T any, P DailyRecordPtr[T]] struct {
	db *gorm.DB
}

// NewGormDailyRecordRepository 创建每日记录仓库，例如
// NewGormDailyRecordRepository[models.FaultWorkOrder](db)
func NewGormDailyRecordRepository[T any, P DailyRecordPtr[T]](db *gorm.DB) DailyRecordRepository[T] {
	return &gormDailyRecordRepository[T, P]{db: db}
}

func (r *gormDailyRecordRepository[T, P]) WithTx(tx *gorm.DB) DailyRecordRepository[T] {
	return &gormDailyRecordRepository[T, P]{db: tx}
}

func (r *gormDailyRecordRepository[T, P]) proto() P {
	return P(new(T))
}

func (r *gormDailyRecordRepository[T, P]) TableName() string {
	return r.proto().TableName()
}

func (r *gormDailyRecordRepository[T, P]) keyConds(user string, day models.Date) []clause.Expression {
	return []clause.Expression{
		clause.Eq{Column: clause.Column{Name: "user"}, Value: user},
		clause.Eq{Column: clause.Column{Name: r.proto().DateColumn()}, Value: day},
	}
}

func idCond(id int64) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: "id"}, Value: id}
}

func (r *gormDailyRecordRepository[T, P]) List(ctx context.Context, filter DailyRecordFilter) ([]T, error) {
	var conds []clause.Expression
	if filter.ID > 0 {
		conds = append(conds, idCond(filter.ID))
	}
	if filter.User != "" {
		conds = append(conds, clause.Eq{Column: clause.Column{Name: "user"}, Value: filter.User})
	}
	if filter.Date != nil {
		conds = append(conds, clause.Eq{Column: clause.Column{Name: r.proto().DateColumn()}, Value: *filter.Date})
	}

	query := r.db.WithContext(ctx).Model(r.proto())
	if len(conds) > 0 {
		query = query.Clauses(clause.Where{Exprs: conds})
	}

	rows := make([]T, 0)
	err := query.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: r.proto().DateColumn()}, Desc: true},
		{Column: clause.Column{Name: "created_at"}, Desc: true},
		{Column: clause.Column{Name: "id"}, Desc: true},
	}}).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormDailyRecordRepository[T, P]) All(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := r.db.WithContext(ctx).Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormDailyRecordRepository[T, P]) FindByID(ctx context.Context, id int64) (*T, error) {
	var rec T
	if err := r.db.WithContext(ctx).Clauses(clause.Where{Exprs: []clause.Expression{idCond(id)}}).Take(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *gormDailyRecordRepository[T, P]) FindByKey(ctx context.Context, user string, day models.Date) (*T, error) {
	return r.findByKey(r.db.WithContext(ctx), user, day)
}

func (r *gormDailyRecordRepository[T, P]) findByKey(db *gorm.DB, user string, day models.Date) (*T, error) {
	var rec T
	if err := db.Clauses(clause.Where{Exprs: r.keyConds(user, day)}).Take(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *gormDailyRecordRepository[T, P]) Upsert(ctx context.Context, rec *T) (string, error) {
	p := P(rec)
	user, day := p.Owner(), p.Day()
	var action string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := r.findByKey(tx, user, day)
		switch {
		case err == nil:
			updates := p.Assignments()
			updates["updated_at"] = tx.NowFunc()
			if err := tx.Model(r.proto()).
				Clauses(clause.Where{Exprs: []clause.Expression{idCond(P(existing).RecordID())}}).
				Updates(updates).Error; err != nil {
				return err
			}
			action = models.ActionUpdated
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 并发插入同一自然键时，冲突转为更新
			onConflict := clause.OnConflict{
				Columns:   []clause.Column{{Name: "user"}, {Name: p.DateColumn()}},
				DoUpdates: clause.AssignmentColumns(append(models.ContentColumns(p), "updated_at")),
			}
			p.ClearID()
			if err := tx.Clauses(onConflict).Create(rec).Error; err != nil {
				return err
			}
			action = models.ActionCreated
		default:
			return err
		}

		saved, err := r.findByKey(tx, user, day)
		if err != nil {
			return err
		}
		*rec = *saved
		return nil
	})
	if err != nil {
		return "", err
	}
	return action, nil
}

func (r *gormDailyRecordRepository[T, P]) UpdateByID(ctx context.Context, id int64, rec *T) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current T
		if err := tx.Clauses(clause.Where{Exprs: []clause.Expression{idCond(id)}}).Take(&current).Error; err != nil {
			return err
		}
		updates := P(rec).Assignments()
		updates["updated_at"] = tx.NowFunc()
		if err := tx.Model(r.proto()).Clauses(clause.Where{Exprs: []clause.Expression{idCond(id)}}).Updates(updates).Error; err != nil {
			return err
		}
		var saved T
		if err := tx.Clauses(clause.Where{Exprs: []clause.Expression{idCond(id)}}).Take(&saved).Error; err != nil {
			return err
		}
		*rec = saved
		return nil
	})
}

func (r *gormDailyRecordRepository[T, P]) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Clauses(clause.Where{Exprs: []clause.Expression{idCond(id)}}).Delete(r.proto())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *gormDailyRecordRepository[T, P]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(r.proto()).Count(&n).Error
	return n, err
}
