package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/internal/repositories"
)

// DailyListQuery 列表查询参数。
// Date 为 nil 时查询当天，指向空串时不按日期过滤。
type DailyListQuery struct {
	ID   int64
	User string
	Date *string
}

// DailyRecordOptions 每日记录服务的差异配置
type DailyRecordOptions struct {
	Resource auth.Resource
	// RequireOwnerOnUpdate 按 id 更新时要求 current_user 与记录所属用户一致
	RequireOwnerOnUpdate bool
	Now                  func() time.Time
}

// DailyRecordService 每日记录 (故障工单、7S 评估、数据恢复) 的业务接口
type DailyRecordService[T any] interface {
	// List 返回记录及 query_info
	List(ctx context.Context, q DailyListQuery) ([]T, map[string]interface{}, error)
	Get(ctx context.Context, id int64) (*T, error)
	// Save 按 (user, 日期) 新建或覆盖，rec 回填为保存后的行
	Save(ctx context.Context, s auth.Session, rec *T) (string, error)
	UpdateByID(ctx context.Context, s auth.Session, id int64, currentUser string, rec *T) error
	Delete(ctx context.Context, s auth.Session, id int64) error
	DateColumn() string
}

type dailyRecordService[T any, P repositories.DailyRecordPtr[T]] struct {
	repo repositories.DailyRecordRepository[T]
	opts DailyRecordOptions
}

// NewDailyRecordService 创建每日记录服务，例如
// NewDailyRecordService[models.SevenSEvaluation](repo, opts)
func NewDailyRecordService[T any, P repositories.DailyRecordPtr[T]](repo repositories.DailyRecordRepository[T], opts DailyRecordOptions) DailyRecordService[T] {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &dailyRecordService[T, P]{repo: repo, opts: opts}
}

func (s *dailyRecordService[T, P]) DateColumn() string {
	return P(new(T)).DateColumn()
}

func (s *dailyRecordService[T, P]) today() models.Date {
	return models.NewDate(s.opts.Now())
}

func (s *dailyRecordService[T, P]) List(ctx context.Context, q DailyListQuery) ([]T, map[string]interface{}, error) {
	filter := repositories.DailyRecordFilter{ID: q.ID, User: strings.TrimSpace(q.User)}

	var dateInfo interface{}
	switch {
	case q.Date == nil:
		day := s.today()
		filter.Date = &day
		dateInfo = day.String()
	case strings.TrimSpace(*q.Date) != "":
		day, err := models.ParseDate(strings.TrimSpace(*q.Date))
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		filter.Date = &day
		dateInfo = day.String()
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	var userInfo interface{}
	if filter.User != "" {
		userInfo = filter.User
	}
	info := map[string]interface{}{
		s.DateColumn():  dateInfo,
		"user":          userInfo,
		"total_records": len(rows),
	}
	return rows, info, nil
}

func (s *dailyRecordService[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *dailyRecordService[T, P]) Save(ctx context.Context, sess auth.Session, rec *T) (string, error) {
	p := P(rec)
	user := strings.TrimSpace(p.Owner())
	if user == "" {
		return "", ErrUserRequired
	}
	day := p.Day()
	if day.IsZero() {
		day = s.today()
	}
	if !auth.CanWriteRecord(sess, s.opts.Resource, user) {
		return "", ErrForbidden
	}

	p.SetKey(user, day)
	p.SetUserID(sess.UserID)
	return s.repo.Upsert(ctx, rec)
}

func (s *dailyRecordService[T, P]) UpdateByID(ctx context.Context, sess auth.Session, id int64, currentUser string, rec *T) error {
	stored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	owner := P(stored).Owner()
	if !auth.CanWriteRecord(sess, s.opts.Resource, owner) {
		return ErrForbidden
	}

	if s.opts.RequireOwnerOnUpdate {
		acting := strings.TrimSpace(currentUser)
		if acting == "" {
			acting = sess.OwnerKey()
		}
		// 非裁判/管理员只能以自己的身份提交
		if !privileged(sess) && acting != sess.OwnerKey() {
			return ErrOwnerMismatch
		}
		if acting != owner {
			return ErrOwnerMismatch
		}
	}

	p := P(rec)
	p.SetKey(owner, P(stored).Day())
	p.SetUserID(sess.UserID)
	return s.repo.UpdateByID(ctx, id, rec)
}

func (s *dailyRecordService[T, P]) Delete(ctx context.Context, sess auth.Session, id int64) error {
	stored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanWriteRecord(sess, s.opts.Resource, P(stored).Owner()) {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

func privileged(s auth.Session) bool {
	return s.Role == auth.RoleAdmin || s.Role == auth.RoleReferee
}
