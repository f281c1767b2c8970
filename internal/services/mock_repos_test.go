package services

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/internal/repositories"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users       map[int64]*models.User
	nextID      int64
	lastLogins  map[int64]time.Time
	rehashed    map[int64]string
	failLastLog error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:      make(map[int64]*models.User),
		lastLogins: make(map[int64]time.Time),
		rehashed:   make(map[int64]string),
	}
}

func (m *mockUserRepo) List(_ context.Context) ([]models.User, error) {
	result := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindActiveByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username && u.Active() {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return repositories.ErrUsernameExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, id int64, updates map[string]interface{}) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "username":
			u.Username = v.(string)
		case "password":
			u.PasswordHash = v.(string)
		case "real_name":
			u.RealName = v.(string)
		case "permissions":
			u.Permissions = v.(int)
		case "status":
			u.Status = v.(int)
		case "token_version":
			u.TokenVersion = v.(int)
		case "engineer_slot":
			if v == nil {
				u.EngineerSlot = nil
			} else {
				slot := v.(int)
				u.EngineerSlot = &slot
			}
		}
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	if m.failLastLog != nil {
		return m.failLastLog
	}
	m.lastLogins[id] = at
	return nil
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	m.rehashed[id] = hash
	if u, ok := m.users[id]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock DailyRecordRepository ──

// mockDailyRepo 按插入顺序保存记录，setID 回填自增 ID
type mockDailyRepo[T any, P repositories.DailyRecordPtr[T]] struct {
	rows   []T
	nextID int64
	setID  func(*T, int64)
}

func newMockDailyRepo[T any, P repositories.DailyRecordPtr[T]](setID func(*T, int64)) *mockDailyRepo[T, P] {
	return &mockDailyRepo[T, P]{setID: setID}
}

func newMockFaultRepo() *mockDailyRepo[models.FaultWorkOrder, *models.FaultWorkOrder] {
	return newMockDailyRepo[models.FaultWorkOrder](func(r *models.FaultWorkOrder, id int64) { r.ID = id })
}

func newMockSevenSRepo() *mockDailyRepo[models.SevenSEvaluation, *models.SevenSEvaluation] {
	return newMockDailyRepo[models.SevenSEvaluation](func(r *models.SevenSEvaluation, id int64) {
		r.ID = id
		r.TotalScore = r.Score()
	})
}

func (m *mockDailyRepo[T, P]) index(id int64) int {
	for i := range m.rows {
		if P(&m.rows[i]).RecordID() == id {
			return i
		}
	}
	return -1
}

func (m *mockDailyRepo[T, P]) List(_ context.Context, filter repositories.DailyRecordFilter) ([]T, error) {
	result := make([]T, 0)
	for i := len(m.rows) - 1; i >= 0; i-- {
		p := P(&m.rows[i])
		if filter.ID != 0 && p.RecordID() != filter.ID {
			continue
		}
		if filter.User != "" && p.Owner() != filter.User {
			continue
		}
		if filter.Date != nil && p.Day().String() != filter.Date.String() {
			continue
		}
		result = append(result, m.rows[i])
	}
	return result, nil
}

func (m *mockDailyRepo[T, P]) All(_ context.Context) ([]T, error) {
	return append([]T(nil), m.rows...), nil
}

func (m *mockDailyRepo[T, P]) FindByID(_ context.Context, id int64) (*T, error) {
	if i := m.index(id); i >= 0 {
		cp := m.rows[i]
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDailyRepo[T, P]) FindByKey(_ context.Context, user string, day models.Date) (*T, error) {
	for i := range m.rows {
		p := P(&m.rows[i])
		if p.Owner() == user && p.Day().String() == day.String() {
			cp := m.rows[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDailyRepo[T, P]) Upsert(ctx context.Context, rec *T) (string, error) {
	p := P(rec)
	if existing, err := m.FindByKey(ctx, p.Owner(), p.Day()); err == nil {
		id := P(existing).RecordID()
		m.setID(rec, id)
		m.rows[m.index(id)] = *rec
		return models.ActionUpdated, nil
	}
	m.nextID++
	m.setID(rec, m.nextID)
	m.rows = append(m.rows, *rec)
	return models.ActionCreated, nil
}

func (m *mockDailyRepo[T, P]) UpdateByID(_ context.Context, id int64, rec *T) error {
	i := m.index(id)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	m.setID(rec, id)
	m.rows[i] = *rec
	return nil
}

func (m *mockDailyRepo[T, P]) Delete(_ context.Context, id int64) error {
	i := m.index(id)
	if i < 0 {
		return gorm.ErrRecordNotFound
	}
	m.rows = append(m.rows[:i], m.rows[i+1:]...)
	return nil
}

func (m *mockDailyRepo[T, P]) Count(_ context.Context) (int64, error) {
	return int64(len(m.rows)), nil
}

func (m *mockDailyRepo[T, P]) TableName() string {
	return P(new(T)).TableName()
}

func (m *mockDailyRepo[T, P]) WithTx(_ *gorm.DB) repositories.DailyRecordRepository[T] {
	return m
}

func newMockRecoveryRepo() *mockDailyRepo[models.DataRecoveryRecord, *models.DataRecoveryRecord] {
	return newMockDailyRepo[models.DataRecoveryRecord](func(r *models.DataRecoveryRecord, id int64) { r.ID = id })
}

// ── Mock MaintenanceRepository ──

type mockMaintenanceRepo struct {
	cleared []string
}

func (m *mockMaintenanceRepo) ClearTables(_ context.Context, tables []string) (map[string]int64, error) {
	m.cleared = append(m.cleared, tables...)
	result := make(map[string]int64, len(tables))
	for _, t := range tables {
		result[t] = 0
	}
	return result, nil
}

// Transaction 不开启真实事务，mock 仓库忽略 tx
func (m *mockMaintenanceRepo) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
