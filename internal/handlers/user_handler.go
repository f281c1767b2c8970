package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/internal/services"
	"github.com/repair_workorder/pkg/utils"
)

// UserHandler 用户管理，路由层限制为管理员
type UserHandler struct {
	service services.UserService
}

func NewUserHandler(s services.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// ListUsers godoc
// @Summary 获取用户列表
// @Tags users
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.Envelope{data=[]models.User}
// @Failure 403 {object} utils.Envelope
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		utils.RespondInternalServerError(c, "获取用户列表失败", err)
		return
	}
	utils.RespondList(c, users, gin.H{"total_records": len(users)})
}

// GetUser godoc
// @Summary 获取用户
// @Tags users
// @Security BearerAuth
// @Produce  json
// @Param id path int true "用户ID"
// @Success 200 {object} utils.Envelope{data=models.User}
// @Failure 404 {object} utils.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "用户", "获取用户失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, user, "")
}

// CreateUser godoc
// @Summary 创建用户
// @Description 权限等级 1 工程师 (engineer_slot 1..3)、2 数据恢复工程师、3 裁判、4 管理员
// @Tags users
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param user body models.CreateUserPayload true "用户信息"
// @Success 201 {object} utils.Envelope{data=models.User}
// @Failure 400 {object} utils.Envelope
// @Failure 409 {object} utils.Envelope "用户名已存在"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var payload models.CreateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	user, err := h.service.Create(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err, "用户", "创建用户失败")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, user, "用户创建成功")
}

// UpdateUser godoc
// @Summary 更新用户
// @Tags users
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path int true "用户ID"
// @Param user body models.UpdateUserPayload true "更新内容"
// @Success 200 {object} utils.Envelope{data=models.User}
// @Failure 404 {object} utils.Envelope
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	var payload models.UpdateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	user, err := h.service.Update(c.Request.Context(), id, payload)
	if err != nil {
		respondServiceError(c, err, "用户", "更新用户失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, user, "用户更新成功")
}

// DeleteUser godoc
// @Summary 删除用户
// @Tags users
// @Security BearerAuth
// @Produce  json
// @Param id path int true "用户ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), session, id); err != nil {
		respondServiceError(c, err, "用户", "删除用户失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "用户删除成功")
}
