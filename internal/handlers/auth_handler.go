package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/services"
	"github.com/repair_workorder/pkg/utils"
)

// LoginRequest 登录请求体，字段为空时由服务层返回具体提示
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandler 处理登录、登出与当前会话
type AuthHandler struct {
	service services.AuthService
}

func NewAuthHandler(s services.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Login godoc
// @Summary 用户登录
// @Description 校验用户名和密码，返回 JWT 以及按权限等级推导的角色
// @Tags auth
// @Accept  json
// @Produce  json
// @Param credentials body LoginRequest true "登录凭证"
// @Success 200 {object} utils.Envelope{data=services.LoginResult} "登录成功"
// @Failure 400 {object} utils.Envelope "用户名或密码错误、账户被禁用"
// @Failure 500 {object} utils.Envelope "服务器内部错误"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(c, "无效的JSON数据")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCredentialsRequired),
			errors.Is(err, services.ErrUserNotFoundOrDisabled),
			errors.Is(err, services.ErrWrongPassword):
			utils.RespondBadRequest(c, err.Error())
		default:
			utils.RespondInternalServerError(c, "登录失败", err)
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, result, "登录成功")
}

// Logout godoc
// @Summary 登出
// @Description 使当前 Token 在过期前失效
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.Envelope "成功登出"
// @Failure 401 {object} utils.Envelope "未认证"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(auth.ContextJTI)
	exp, ok := c.Get(auth.ContextExpiresAt)
	expiresAt, isTime := exp.(time.Time)
	if jti == "" || !ok || !isTime {
		utils.RespondBadRequest(c, "登出失败: 会话中缺少 Token 信息")
		return
	}

	if err := h.service.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		utils.RespondInternalServerError(c, "登出失败", err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "成功登出")
}

// Me godoc
// @Summary 当前会话
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.Envelope{data=auth.Session}
// @Failure 401 {object} utils.Envelope "未认证"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, session, "")
}
