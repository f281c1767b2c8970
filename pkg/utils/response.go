package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope 所有接口统一的响应结构
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Action     string      `json:"action,omitempty"`     // created | updated
	QueryInfo  interface{} `json:"query_info,omitempty"` // 列表查询的过滤条件与总数
	Details    interface{} `json:"details,omitempty"`    // 参数校验失败时的详情
	Results    interface{} `json:"results,omitempty"`    // 批量导入/清除的逐表结果
	ImportInfo interface{} `json:"import_info,omitempty"`
}

// RespondJSON 是一个通用的辅助函数，用于发送 JSON 响应
func RespondJSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// RespondSuccess 发送一个标准的成功 JSON 响应
// status: HTTP 状态码 (例如 http.StatusOK, http.StatusCreated)
// data: 要包含在响应中的数据
// message: (可选) 成功消息
func RespondSuccess(c *gin.Context, status int, data interface{}, message string) {
	RespondJSON(c, status, Envelope{Success: true, Message: message, Data: data})
}

// RespondList 发送列表数据，data 为空切片时仍输出 []
func RespondList(c *gin.Context, data interface{}, queryInfo interface{}) {
	RespondJSON(c, http.StatusOK, Envelope{Success: true, Data: data, QueryInfo: queryInfo})
}

// RespondAction 发送写操作结果，action 为 created 或 updated
func RespondAction(c *gin.Context, status int, action string, data interface{}, message string) {
	RespondJSON(c, status, Envelope{Success: true, Message: message, Data: data, Action: action})
}

// RespondResults 发送批量操作的逐表结果
func RespondResults(c *gin.Context, message string, results interface{}, importInfo interface{}) {
	RespondJSON(c, http.StatusOK, Envelope{Success: true, Message: message, Results: results, ImportInfo: importInfo})
}

// RespondError 发送失败响应并中止后续处理
func RespondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

// RespondValidationError 发送用于处理参数校验错误的特定响应
// details 通常是 err.Error() 或更结构化的错误信息
func RespondValidationError(c *gin.Context, details interface{}) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Success: false, Message: "请求参数无效", Details: details})
}

// RespondBadRequest 发送带具体消息的 400
func RespondBadRequest(c *gin.Context, message string) {
	RespondError(c, http.StatusBadRequest, message)
}

// RespondUnauthorizedError 发送未授权错误
func RespondUnauthorizedError(c *gin.Context, message ...string) {
	errMsg := "未认证或 Token 无效/过期"
	if len(message) > 0 && message[0] != "" {
		errMsg = message[0]
	}
	RespondError(c, http.StatusUnauthorized, errMsg)
}

// RespondForbiddenError 发送权限不足错误
func RespondForbiddenError(c *gin.Context, message ...string) {
	errMsg := "无权限执行此操作"
	if len(message) > 0 && message[0] != "" {
		errMsg = message[0]
	}
	RespondError(c, http.StatusForbidden, errMsg)
}

// RespondNotFoundError 发送资源未找到错误
func RespondNotFoundError(c *gin.Context, resourceName string) {
	RespondError(c, http.StatusNotFound, resourceName+"不存在")
}

// RespondInternalServerError 发送服务器内部错误。
// err 挂到 gin.Context 上由日志中间件记录，不返回给客户端。
func RespondInternalServerError(c *gin.Context, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	RespondError(c, http.StatusInternalServerError, message)
}

// RespondConflictError 发送冲突错误 (例如，资源已存在或批量操作进行中)
func RespondConflictError(c *gin.Context, message string) {
	RespondError(c, http.StatusConflict, message)
}
