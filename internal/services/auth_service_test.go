package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/pkg/utils"
)

func init() {
	utils.BcryptCost = bcrypt.MinCost
}

func setupAuthService(t *testing.T) (*authService, *mockUserRepo, *auth.MemoryDenylist) {
	t.Helper()
	repo := newMockUserRepo()
	denylist := auth.NewMemoryDenylist()
	svc := NewAuthService(repo, auth.NewTokenIssuer("test-secret", time.Hour, "test"), denylist, zap.NewNop()).(*authService)
	svc.now = func() time.Time { return time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC) }
	return svc, repo, denylist
}

func seedUser(t *testing.T, repo *mockUserRepo, username, password string, permissions, status int) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{Username: username, PasswordHash: hash, Permissions: permissions, Status: status}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u
}

func TestAuthService_Login(t *testing.T) {
	svc, repo, _ := setupAuthService(t)
	ctx := context.Background()
	dre := seedUser(t, repo, "li", "secret1", models.PermissionDataRecovery, models.UserStatusActive)
	seedUser(t, repo, "old", "secret1", models.PermissionReferee, models.UserStatusDisabled)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"空用户名", "", "secret1", ErrCredentialsRequired},
		{"空密码", "li", "", ErrCredentialsRequired},
		{"用户不存在", "nobody", "secret1", ErrUserNotFoundOrDisabled},
		{"账户已禁用", "old", "secret1", ErrUserNotFoundOrDisabled},
		{"密码错误", "li", "wrong", ErrWrongPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tt.username, tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if len(repo.lastLogins) != 0 {
		t.Fatalf("失败的登录不应更新 last_login: %v", repo.lastLogins)
	}

	result, err := svc.Login(ctx, "  li ", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.User.Role != auth.RoleDataRecoveryEngineer || result.User.ID != dre.ID {
		t.Errorf("user = %+v", result.User)
	}
	if at, ok := repo.lastLogins[dre.ID]; !ok || !at.Equal(svc.now()) {
		t.Errorf("last_login = %v", at)
	}
	if len(repo.rehashed) != 0 {
		t.Error("bcrypt 哈希不需要升级")
	}
}

func TestAuthService_LoginFailsWhenLastLoginNotSaved(t *testing.T) {
	svc, repo, _ := setupAuthService(t)
	seedUser(t, repo, "li", "secret1", models.PermissionDataRecovery, models.UserStatusActive)
	repo.failLastLog = errors.New("db down")

	if _, err := svc.Login(context.Background(), "li", "secret1"); err == nil {
		t.Fatal("更新 last_login 失败时登录应失败")
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, repo, denylist := setupAuthService(t)
	ctx := context.Background()
	seedUser(t, repo, "wang", "secret1", models.PermissionReferee, models.UserStatusActive)

	result, err := svc.Login(ctx, "wang", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := svc.issuer.Parse(result.Token)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Logout(ctx, "", result.ExpiresAt); !errors.Is(err, auth.ErrMissingJTI) {
		t.Errorf("缺少 jti err = %v", err)
	}
	if err := svc.Logout(ctx, claims.ID, result.ExpiresAt); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if revoked, _ := denylist.Contains(ctx, claims.ID); !revoked {
		t.Error("登出后 jti 应在黑名单中")
	}
}
