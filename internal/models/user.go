package models

import (
	"time"
)

// 权限等级
const (
	PermissionEngineer     = 1
	PermissionDataRecovery = 2
	PermissionReferee      = 3
	PermissionAdmin        = 4
)

// 账户状态
const (
	UserStatusDisabled = 0
	UserStatusActive   = 1
)

// User 对应于数据库中的 User 表
type User struct {
	ID           int64      `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Username     string     `json:"username" gorm:"column:username;unique;not null;size:50"`
	PasswordHash string     `json:"-" gorm:"column:password;not null;size:255"` // 密码哈希不通过JSON暴露
	RealName     string     `json:"real_name" gorm:"column:real_name;size:100"`
	Permissions  int        `json:"permissions" gorm:"column:permissions;not null"`
	EngineerSlot *int       `json:"engineer_slot" gorm:"column:engineer_slot"` // 仅权限 1 使用，1..3
	Status       int        `json:"status" gorm:"column:status;not null"`
	TokenVersion int        `json:"-" gorm:"column:token_version;not null;default:0"` // 变更密码或权限时递增，旧 Token 随之失效
	LastLogin    *time.Time `json:"last_login" gorm:"column:last_login"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
	Role         string     `json:"role" gorm:"-"` // 由权限等级与工位推导，不落库
}

// CreateUserPayload 创建用户的请求体
type CreateUserPayload struct {
	Username     string `json:"username" binding:"required,max=50"`
	Password     string `json:"password" binding:"required"`
	RealName     string `json:"real_name" binding:"max=100"`
	Permissions  int    `json:"permissions" binding:"required"`
	EngineerSlot *int   `json:"engineer_slot"`
	Status       *int   `json:"status"`
}

// UpdateUserPayload 更新用户的请求体，nil 字段保持不变
type UpdateUserPayload struct {
	Username     *string `json:"username" binding:"omitempty,max=50"`
	Password     *string `json:"password"`
	RealName     *string `json:"real_name" binding:"omitempty,max=100"`
	Permissions  *int    `json:"permissions"`
	EngineerSlot *int    `json:"engineer_slot"`
	Status       *int    `json:"status"`
}

// TableName 指定 User 结构体对应的数据库表名
func (User) TableName() string {
	return "User"
}

func (u User) Active() bool {
	return u.Status == UserStatusActive
}
