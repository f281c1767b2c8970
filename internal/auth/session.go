package auth

import (
	"github.com/gin-gonic/gin"
)

// Gin 上下文中保存会话信息的键
const (
	ContextUserID      = "userID"
	ContextUsername    = "username"
	ContextRole        = "role"
	ContextPermissions = "permissions"
	ContextJTI         = "jti"
	ContextExpiresAt   = "exp"
)

// Session 已认证调用方的身份，来自 Token 声明
type Session struct {
	UserID       int64  `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	Permissions  int    `json:"permissions"`
	TokenVersion int    `json:"-"`
}

// OwnerKey 调用方在每日记录 user 字段中的身份：工程师为其工位，其他角色为用户名
func (s Session) OwnerKey() string {
	if IsEngineerRole(s.Role) {
		return s.Role
	}
	return s.Username
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// SessionFromContext 读取 JWTMiddleware 写入的会话
func SessionFromContext(c *gin.Context) (Session, bool) {
	userID, ok := c.Get(ContextUserID)
	if !ok {
		return Session{}, false
	}
	id, ok := userID.(int64)
	if !ok {
		return Session{}, false
	}
	return Session{
		UserID:      id,
		Username:    c.GetString(ContextUsername),
		Role:        c.GetString(ContextRole),
		Permissions: c.GetInt(ContextPermissions),
	}, true
}
