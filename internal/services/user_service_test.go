package services

import (
	"context"
	"errors"
	"testing"

	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/pkg/utils"
)

func intPtr(i int) *int { return &i }

func TestUserService_CreateValidation(t *testing.T) {
	svc := NewUserService(newMockUserRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		payload models.CreateUserPayload
		wantErr error
	}{
		{"空用户名", models.CreateUserPayload{Username: "  ", Password: "secret1", Permissions: 1}, ErrUsernameRequired},
		{"密码过短", models.CreateUserPayload{Username: "a", Password: "12345", Permissions: 1}, ErrPasswordTooShort},
		{"权限越界", models.CreateUserPayload{Username: "a", Password: "secret1", Permissions: 5}, ErrInvalidPermissions},
		{"工位越界", models.CreateUserPayload{Username: "a", Password: "secret1", Permissions: 1, EngineerSlot: intPtr(4)}, ErrInvalidSlot},
		{"状态无效", models.CreateUserPayload{Username: "a", Password: "secret1", Permissions: 1, Status: intPtr(2)}, ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.payload); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserService_CreateAndUpdate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	// 非工程师忽略工位
	referee, err := svc.Create(ctx, models.CreateUserPayload{Username: "wang", Password: "secret1", Permissions: models.PermissionReferee, EngineerSlot: intPtr(2)})
	if err != nil {
		t.Fatal(err)
	}
	if referee.EngineerSlot != nil || referee.Role != auth.RoleReferee {
		t.Errorf("referee = %+v", referee)
	}
	if err := utils.ComparePassword(repo.users[referee.ID].PasswordHash, "secret1"); err != nil {
		t.Errorf("密码应以哈希保存: %v", err)
	}

	if _, err := svc.Create(ctx, models.CreateUserPayload{Username: "wang", Password: "secret1", Permissions: 1}); !errors.Is(err, ErrUsernameExists) {
		t.Errorf("重复用户名 err = %v", err)
	}

	updated, err := svc.Update(ctx, referee.ID, models.UpdateUserPayload{Permissions: intPtr(models.PermissionEngineer), EngineerSlot: intPtr(2)})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Role != auth.RoleEngineer2 {
		t.Errorf("role = %q, want engineer2", updated.Role)
	}

	short := "123"
	if _, err := svc.Update(ctx, referee.ID, models.UpdateUserPayload{Password: &short}); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("短密码 err = %v", err)
	}
	if _, err := svc.Update(ctx, 99, models.UpdateUserPayload{}); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("不存在的用户 err = %v", err)
	}
}

func TestUserService_DeleteSelf(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()
	u, err := svc.Create(ctx, models.CreateUserPayload{Username: "root", Password: "secret1", Permissions: models.PermissionAdmin})
	if err != nil {
		t.Fatal(err)
	}

	sess := auth.Session{UserID: u.ID, Username: "root", Role: auth.RoleAdmin}
	if err := svc.Delete(ctx, sess, u.ID); !errors.Is(err, ErrCannotDeleteSelf) {
		t.Errorf("删除自己 err = %v", err)
	}
	if err := svc.Delete(ctx, auth.Session{UserID: 100, Role: auth.RoleAdmin}, u.ID); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, ok := repo.users[u.ID]; ok {
		t.Error("用户应已删除")
	}
}
