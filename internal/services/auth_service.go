package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/repositories"
	"github.com/repair_workorder/pkg/utils"
)

// LoginUser 登录成功后返回给前端保存的会话用户
type LoginUser struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	RealName    string     `json:"real_name"`
	Role        string     `json:"role"`
	Permissions int        `json:"permissions"`
	LastLogin   *time.Time `json:"last_login"` // 本次登录之前的时间
}

// LoginResult 登录结果
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      LoginUser `json:"user"`
}

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Logout 使 jti 在过期前失效
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	users    repositories.UserRepository
	issuer   *auth.TokenIssuer
	denylist auth.Denylist
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(users repositories.UserRepository, issuer *auth.TokenIssuer, denylist auth.Denylist, logger *zap.Logger) AuthService {
	return &authService{
		users:    users,
		issuer:   issuer,
		denylist: denylist,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	// 1. 只查找启用的账户
	user, err := s.users.FindActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUserNotFoundOrDisabled
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 校验密码
	if err := utils.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrWrongPassword
	}

	// 3. 旧的 MD5 哈希升级为 bcrypt，失败不影响本次登录
	if utils.IsLegacyHash(user.PasswordHash) {
		if hash, err := utils.HashPassword(password); err != nil {
			s.logger.Warn("升级密码哈希失败", zap.Int64("user_id", user.ID), zap.Error(err))
		} else if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
			s.logger.Warn("保存升级后的密码哈希失败", zap.Int64("user_id", user.ID), zap.Error(err))
		}
	}

	session := auth.Session{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         auth.RoleFor(user.Permissions, user.EngineerSlot),
		Permissions:  user.Permissions,
		TokenVersion: user.TokenVersion,
	}
	token, expiresAt, err := s.issuer.Issue(session)
	if err != nil {
		s.logger.Error("生成 Token 失败", zap.Error(err))
		return nil, err
	}

	// 4. 只有成功登录才更新 last_login
	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Error("更新最后登录时间失败", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User: LoginUser{
			ID:          user.ID,
			Username:    user.Username,
			RealName:    user.RealName,
			Role:        session.Role,
			Permissions: user.Permissions,
			LastLogin:   user.LastLogin,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return auth.ErrMissingJTI
	}
	return s.denylist.Add(ctx, jti, expiresAt)
}
