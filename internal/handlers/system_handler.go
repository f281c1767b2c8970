package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/repair_workorder/configs"
	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/services"
	"github.com/repair_workorder/pkg/utils"
)

// ConfigUpdateRequest 更新 app-config.ini 中的单个配置
type ConfigUpdateRequest struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// SystemHandler 初始化状态、数据库初始化与自定义表头
type SystemHandler struct {
	setup   services.SetupService
	headers services.HeadersService
}

func NewSystemHandler(setup services.SetupService, headers services.HeadersService) *SystemHandler {
	return &SystemHandler{setup: setup, headers: headers}
}

// GetConfig godoc
// @Summary 读取运行状态配置
// @Description key=database.initialized 时返回布尔值，否则返回全部配置
// @Tags system
// @Produce  json
// @Param key query string false "配置键"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope "不支持的配置项"
// @Router /config [get]
func (h *SystemHandler) GetConfig(c *gin.Context) {
	value, err := h.setup.GetConfig(c.Query("key"))
	if err != nil {
		if errors.Is(err, configs.ErrUnknownStateKey) {
			utils.RespondBadRequest(c, err.Error())
			return
		}
		utils.RespondInternalServerError(c, "读取配置失败", err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, value, "")
}

// UpdateConfig godoc
// @Summary 更新运行状态配置
// @Description 目前只支持 database.initialized，value 接受布尔值或 "true"/"1"
// @Tags system
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param config body ConfigUpdateRequest true "配置项"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /config [post]
func (h *SystemHandler) UpdateConfig(c *gin.Context) {
	var req ConfigUpdateRequest
	if strings.Contains(c.ContentType(), "json") {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondBadRequest(c, "请求参数错误")
			return
		}
	} else {
		req.Key = c.PostForm("key")
		if v, ok := c.GetPostForm("value"); ok {
			req.Value = v
		}
	}
	if req.Key == "" || req.Value == nil {
		utils.RespondBadRequest(c, "请求参数错误")
		return
	}

	if err := h.setup.SetConfig(req.Key, req.Value); err != nil {
		if errors.Is(err, configs.ErrUnknownStateKey) {
			utils.RespondBadRequest(c, err.Error())
			return
		}
		utils.RespondInternalServerError(c, "配置更新失败", err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "配置更新成功")
}

// InitDatabase godoc
// @Summary 初始化数据库
// @Description 执行迁移、在用户表为空时创建管理员并标记已初始化。已初始化后只有管理员可以再次调用
// @Tags system
// @Produce  json
// @Success 200 {object} utils.Envelope{data=services.SetupResult}
// @Failure 403 {object} utils.Envelope "数据库已初始化"
// @Failure 500 {object} utils.Envelope
// @Router /database/init [post]
func (h *SystemHandler) InitDatabase(c *gin.Context) {
	if h.setup.Initialized() {
		session, ok := auth.SessionFromContext(c)
		if !ok || !session.IsAdmin() {
			utils.RespondForbiddenError(c, services.ErrAlreadyInitialized.Error())
			return
		}
	}

	result, err := h.setup.InitDatabase(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.Envelope{
			Success: false,
			Message: "数据库初始化失败",
			Data:    result,
		})
		return
	}
	utils.RespondSuccess(c, http.StatusOK, result, "数据库初始化成功")
}

// GetHeaders godoc
// @Summary 读取自定义表头
// @Tags system
// @Produce  json
// @Success 200 {object} utils.Envelope
// @Router /headers [get]
func (h *SystemHandler) GetHeaders(c *gin.Context) {
	headers, err := h.headers.Load()
	if err != nil {
		utils.RespondInternalServerError(c, "读取表头失败", err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, headers, "")
}

// SaveHeaders godoc
// @Summary 保存自定义表头
// @Description 请求体为任意非空 JSON 对象，原样格式化后保存
// @Tags system
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param headers body object true "表头配置"
// @Success 200 {object} utils.Envelope{data=services.HeadersSaveResult}
// @Failure 400 {object} utils.Envelope
// @Router /headers [post]
// @Router /headers [put]
func (h *SystemHandler) SaveHeaders(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondBadRequest(c, "无法读取请求体")
		return
	}
	result, err := h.headers.Save(raw)
	if err != nil {
		if errors.Is(err, services.ErrInvalidHeaders) {
			utils.RespondBadRequest(c, err.Error())
			return
		}
		utils.RespondInternalServerError(c, "保存表头失败", err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, result, "Headers saved successfully")
}
