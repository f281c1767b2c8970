package services

import (
	"context"
	"strings"

	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/internal/repositories"
	"github.com/repair_workorder/pkg/utils"
)

const minPasswordLength = 6

// UserService 用户管理业务接口，仅管理员可用
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, payload models.CreateUserPayload) (*models.User, error)
	Update(ctx context.Context, id int64, payload models.UpdateUserPayload) (*models.User, error)
	Delete(ctx context.Context, s auth.Session, id int64) error
}

type userService struct {
	repo repositories.UserRepository
}

// NewUserService 创建 UserService 实例
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func withRole(u *models.User) *models.User {
	u.Role = auth.RoleFor(u.Permissions, u.EngineerSlot)
	return u
}

func validatePermissions(p int) error {
	if p < models.PermissionEngineer || p > models.PermissionAdmin {
		return ErrInvalidPermissions
	}
	return nil
}

func validateStatus(s int) error {
	if s != models.UserStatusActive && s != models.UserStatusDisabled {
		return ErrInvalidStatus
	}
	return nil
}

func validateSlot(slot *int) error {
	if slot == nil {
		return nil
	}
	if err := auth.ValidateEngineerSlot(*slot); err != nil {
		return ErrInvalidSlot
	}
	return nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		withRole(&users[i])
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return withRole(user), nil
}

func (s *userService) Create(ctx context.Context, payload models.CreateUserPayload) (*models.User, error) {
	username := strings.TrimSpace(payload.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if payload.Password == "" {
		return nil, ErrPasswordRequired
	}
	if len(payload.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if err := validatePermissions(payload.Permissions); err != nil {
		return nil, err
	}
	if err := validateSlot(payload.EngineerSlot); err != nil {
		return nil, err
	}
	status := models.UserStatusActive
	if payload.Status != nil {
		if err := validateStatus(*payload.Status); err != nil {
			return nil, err
		}
		status = *payload.Status
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		RealName:     strings.TrimSpace(payload.RealName),
		Permissions:  payload.Permissions,
		Status:       status,
	}
	// 只有工程师使用工位
	if payload.Permissions == models.PermissionEngineer {
		user.EngineerSlot = payload.EngineerSlot
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return withRole(user), nil
}

func (s *userService) Update(ctx context.Context, id int64, payload models.UpdateUserPayload) (*models.User, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if payload.Username != nil {
		username := strings.TrimSpace(*payload.Username)
		if username == "" {
			return nil, ErrUsernameRequired
		}
		updates["username"] = username
	}
	if payload.Password != nil {
		if len(*payload.Password) < minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := utils.HashPassword(*payload.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}
	if payload.RealName != nil {
		updates["real_name"] = strings.TrimSpace(*payload.RealName)
	}
	if payload.Status != nil {
		if err := validateStatus(*payload.Status); err != nil {
			return nil, err
		}
		updates["status"] = *payload.Status
	}

	permissions := current.Permissions
	if payload.Permissions != nil {
		if err := validatePermissions(*payload.Permissions); err != nil {
			return nil, err
		}
		permissions = *payload.Permissions
		updates["permissions"] = permissions
	}
	if err := validateSlot(payload.EngineerSlot); err != nil {
		return nil, err
	}
	switch {
	case permissions != models.PermissionEngineer:
		updates["engineer_slot"] = nil
	case payload.EngineerSlot != nil:
		updates["engineer_slot"] = *payload.EngineerSlot
	}

	if credentialsChanged(current, updates) {
		updates["token_version"] = current.TokenVersion + 1
	}

	user, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	return withRole(user), nil
}

// credentialsChanged 密码、状态、权限或工位有变化时旧 Token 需要失效
func credentialsChanged(current *models.User, updates map[string]interface{}) bool {
	if _, ok := updates["password"]; ok {
		return true
	}
	if v, ok := updates["status"]; ok && v.(int) != current.Status {
		return true
	}
	if v, ok := updates["permissions"]; ok && v.(int) != current.Permissions {
		return true
	}
	if v, ok := updates["engineer_slot"]; ok {
		slot, _ := v.(int)
		switch {
		case v == nil:
			return current.EngineerSlot != nil
		case current.EngineerSlot == nil:
			return true
		default:
			return *current.EngineerSlot != slot
		}
	}
	return false
}

func (s *userService) Delete(ctx context.Context, sess auth.Session, id int64) error {
	if sess.UserID == id {
		return ErrCannotDeleteSelf
	}
	return s.repo.Delete(ctx, id)
}
