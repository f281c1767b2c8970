package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/services"
	"github.com/repair_workorder/pkg/utils"
)

// badRequestErrors 直接把错误信息返回给客户端的校验错误
var badRequestErrors = []error{
	services.ErrUserRequired,
	services.ErrInvalidDate,
	services.ErrWorkOrderFieldsRequired,
	services.ErrInvalidWorkOrderStatus,
	services.ErrDetailEngineerRequired,
	services.ErrUsernameRequired,
	services.ErrPasswordRequired,
	services.ErrPasswordTooShort,
	services.ErrInvalidPermissions,
	services.ErrInvalidStatus,
	services.ErrInvalidSlot,
	services.ErrCannotDeleteSelf,
}

// respondServiceError 把服务层错误映射为统一响应。
// resource 用于 404 提示，message 为 500 时返回的概括信息。
func respondServiceError(c *gin.Context, err error, resource, message string) {
	switch {
	case errors.Is(err, services.ErrRecordNotFound):
		utils.RespondNotFoundError(c, resource)
	case errors.Is(err, services.ErrOwnerMismatch):
		utils.RespondForbiddenError(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.RespondForbiddenError(c)
	case errors.Is(err, services.ErrUsernameExists):
		utils.RespondConflictError(c, err.Error())
	default:
		for _, target := range badRequestErrors {
			if errors.Is(err, target) {
				utils.RespondBadRequest(c, err.Error())
				return
			}
		}
		utils.RespondInternalServerError(c, message, err)
	}
}

// sessionFrom 读取会话，缺失时返回 401
func sessionFrom(c *gin.Context) (auth.Session, bool) {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		utils.RespondUnauthorizedError(c)
	}
	return session, ok
}

// recordID 从路径 /:id 或查询参数 ?id= 读取记录 ID
func recordID(c *gin.Context) (int64, bool) {
	raw := strings.TrimPrefix(c.Param("id"), "/")
	if raw == "" {
		raw = c.Query("id")
	}
	if raw == "" {
		utils.RespondBadRequest(c, "缺少记录ID")
		return 0, false
	}
	if !utils.IsNumeric(raw) {
		utils.RespondBadRequest(c, "无效的记录ID")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		utils.RespondBadRequest(c, "无效的记录ID")
		return 0, false
	}
	return id, true
}
