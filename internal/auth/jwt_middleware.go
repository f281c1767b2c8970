package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/pkg/utils"
)

// AccountStore 按 ID 读取账户，每次请求据此重新确认账户状态和角色
type AccountStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// JWTMiddleware 是一个Gin中间件，用于验证JWT。
// 它从 Authorization 请求头中提取 Bearer Token，校验后把会话写入上下文。
// 角色取自账户当前的权限等级，账户被停用、删除或 Token 版本落后时拒绝访问。
func JWTMiddleware(issuer *TokenIssuer, denylist Denylist, accounts AccountStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondUnauthorizedError(c, "缺少 Authorization 请求头")
			return
		}
		if authenticate(c, issuer, denylist, accounts, authHeader) {
			c.Next()
		}
	}
}

// OptionalJWTMiddleware 没有 Authorization 头时匿名放行，有则必须有效
func OptionalJWTMiddleware(issuer *TokenIssuer, denylist Denylist, accounts AccountStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		if authenticate(c, issuer, denylist, accounts, authHeader) {
			c.Next()
		}
	}
}

// authenticate 校验 Token 并写入会话，失败时已写出响应并返回 false
func authenticate(c *gin.Context, issuer *TokenIssuer, denylist Denylist, accounts AccountStore, authHeader string) bool {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		utils.RespondUnauthorizedError(c, "Authorization 格式必须为 Bearer {token}")
		return false
	}

	claims, err := issuer.Parse(parts[1])
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			utils.RespondUnauthorizedError(c, "Token 格式错误")
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
			utils.RespondUnauthorizedError(c, "Token 已过期或尚未生效")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			utils.RespondUnauthorizedError(c, "Token 签名无效")
		default:
			utils.RespondUnauthorizedError(c, "Token 无效")
		}
		return false
	}

	denied, err := denylist.Contains(c.Request.Context(), claims.ID)
	if err != nil {
		utils.RespondInternalServerError(c, "无法校验 Token 状态", err)
		return false
	}
	if denied {
		utils.RespondUnauthorizedError(c, "Token 已失效 (已登出)")
		return false
	}

	user, err := accounts.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondUnauthorizedError(c, "账户不存在或已停用")
			return false
		}
		utils.RespondInternalServerError(c, "无法校验账户状态", err)
		return false
	}
	if !user.Active() {
		utils.RespondUnauthorizedError(c, "账户不存在或已停用")
		return false
	}
	if user.TokenVersion != claims.Version {
		utils.RespondUnauthorizedError(c, "账户信息已变更，请重新登录")
		return false
	}

	c.Set(ContextUserID, user.ID)
	c.Set(ContextUsername, user.Username)
	c.Set(ContextRole, RoleFor(user.Permissions, user.EngineerSlot))
	c.Set(ContextPermissions, user.Permissions)
	c.Set(ContextJTI, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(ContextExpiresAt, claims.ExpiresAt.Time)
	}
	return true
}

// RequireRoles 限制只有指定角色可以访问，需放在 JWTMiddleware 之后
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		session, ok := SessionFromContext(c)
		if !ok {
			utils.RespondUnauthorizedError(c)
			return
		}
		if _, ok := allowed[session.Role]; !ok {
			utils.RespondForbiddenError(c)
			return
		}
		c.Next()
	}
}
