package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/internal/services"
	"github.com/repair_workorder/pkg/utils"
)

// DailyRecordMessages 每种每日记录的提示文字
type DailyRecordMessages struct {
	Resource string // 404 时的资源名
	Created  string
	Updated  string
	Deleted  string
	ListErr  string
}

// 三种每日记录沿用的提示文字
var (
	FaultWorkOrderMessages = DailyRecordMessages{
		Resource: "工单",
		Created:  "工单创建成功",
		Updated:  "工单更新成功",
		Deleted:  "工单删除成功",
		ListErr:  "获取工单列表失败",
	}
	SevenSMessages = DailyRecordMessages{
		Resource: "7S管理评估记录",
		Created:  "7S管理评估创建成功",
		Updated:  "7S管理评估更新成功",
		Deleted:  "7S管理评估删除成功",
		ListErr:  "获取7S管理评估失败",
	}
	DataRecoveryMessages = DailyRecordMessages{
		Resource: "记录",
		Created:  "记录创建成功",
		Updated:  "记录更新成功",
		Deleted:  "记录删除成功",
		ListErr:  "查询失败",
	}
)

// listQuery 列表查询参数。日期参数用指针区分未提供和空串
type listQuery struct {
	User           string  `form:"user" binding:"max=50"`
	Date           *string `form:"date" binding:"omitempty,workdate"`
	WorkDate       *string `form:"work_date" binding:"omitempty,workdate"`
	EvaluationDate *string `form:"evaluation_date" binding:"omitempty,workdate"`
}

// dateFor 优先使用记录自身的日期列参数，其次是通用的 date
func (q listQuery) dateFor(column string) *string {
	switch {
	case column == "work_date" && q.WorkDate != nil:
		return q.WorkDate
	case column == "evaluation_date" && q.EvaluationDate != nil:
		return q.EvaluationDate
	}
	return q.Date
}

// updateMeta PUT 请求体中除记录字段外的附加信息
type updateMeta struct {
	CurrentUser string `json:"current_user"`
}

// DailyRecordHandler 故障工单、7S 评估、数据恢复记录共用的处理器
type DailyRecordHandler[T any] struct {
	service services.DailyRecordService[T]
	msgs    DailyRecordMessages
}

func NewDailyRecordHandler[T any](s services.DailyRecordService[T], msgs DailyRecordMessages) *DailyRecordHandler[T] {
	return &DailyRecordHandler[T]{service: s, msgs: msgs}
}

// List 列表查询。?id= 时返回单条记录；
// 未给日期参数时查询当天，日期参数为空串时查询全部日期。
// @Summary 每日记录列表
// @Description 按 user 和日期过滤，按日期、创建时间倒序。日期参数可用记录自身的日期列名或 date
// @Tags daily
// @Security BearerAuth
// @Produce  json
// @Param user query string false "工位或用户名"
// @Param date query string false "日期 YYYY-MM-DD，缺省为当天，空串为全部"
// @Param work_date query string false "故障工单、数据恢复记录的日期"
// @Param evaluation_date query string false "7S 评估日期"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope "请求参数无效"
// @Router /fcbmwo [get]
// @Router /7s-management [get]
// @Router /drarwo [get]
func (h *DailyRecordHandler[T]) List(c *gin.Context) {
	if c.Query("id") != "" {
		h.Get(c)
		return
	}

	var params listQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	q := services.DailyListQuery{User: params.User, Date: params.dateFor(h.service.DateColumn())}

	rows, info, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err, h.msgs.Resource, h.msgs.ListErr)
		return
	}
	utils.RespondList(c, rows, info)
}

// Get 按 ID 获取单条记录
// @Summary 获取每日记录
// @Tags daily
// @Security BearerAuth
// @Produce  json
// @Param id path int true "记录ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /fcbmwo/{id} [get]
// @Router /7s-management/{id} [get]
// @Router /drarwo/{id} [get]
func (h *DailyRecordHandler[T]) Get(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, h.msgs.Resource, "查询失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, rec, "")
}

// Save 按 (user, 日期) 新建或覆盖当天的记录
// @Summary 保存每日记录
// @Description 同一 user 同一天只保留一条，已存在时覆盖内容列
// @Tags daily
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param record body object true "记录内容，字段随资源不同"
// @Success 200 {object} utils.Envelope "updated"
// @Success 201 {object} utils.Envelope "created"
// @Failure 403 {object} utils.Envelope
// @Router /fcbmwo [post]
// @Router /7s-management [post]
// @Router /drarwo [post]
func (h *DailyRecordHandler[T]) Save(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var rec T
	if err := c.ShouldBindJSON(&rec); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	action, err := h.service.Save(c.Request.Context(), session, &rec)
	if err != nil {
		respondServiceError(c, err, h.msgs.Resource, "保存失败")
		return
	}
	if action == models.ActionCreated {
		utils.RespondAction(c, http.StatusCreated, action, rec, h.msgs.Created)
		return
	}
	utils.RespondAction(c, http.StatusOK, action, rec, h.msgs.Updated)
}

// Update 按 ID 覆盖内容列，user 与日期保持不变
// @Summary 更新每日记录
// @Description 7S 评估要求 current_user 与记录的 user 一致
// @Tags daily
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path int true "记录ID"
// @Param record body object true "记录内容，可附带 current_user"
// @Success 200 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /fcbmwo/{id} [put]
// @Router /7s-management/{id} [put]
// @Router /drarwo/{id} [put]
func (h *DailyRecordHandler[T]) Update(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}

	var rec T
	if err := c.ShouldBindBodyWith(&rec, binding.JSON); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	var meta updateMeta
	if err := c.ShouldBindBodyWith(&meta, binding.JSON); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	if err := h.service.UpdateByID(c.Request.Context(), session, id, meta.CurrentUser, &rec); err != nil {
		respondServiceError(c, err, h.msgs.Resource, "更新失败")
		return
	}
	utils.RespondAction(c, http.StatusOK, models.ActionUpdated, rec, h.msgs.Updated)
}

// Delete 按 ID 删除
// @Summary 删除每日记录
// @Tags daily
// @Security BearerAuth
// @Produce  json
// @Param id path int true "记录ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /fcbmwo/{id} [delete]
// @Router /7s-management/{id} [delete]
// @Router /drarwo/{id} [delete]
func (h *DailyRecordHandler[T]) Delete(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), session, id); err != nil {
		respondServiceError(c, err, h.msgs.Resource, "删除失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, h.msgs.Deleted)
}
