package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/internal/services"
	"github.com/repair_workorder/pkg/utils"
)

// WorkOrderHandler 工单头、明细与日志
type WorkOrderHandler struct {
	service services.WorkOrderService
}

func NewWorkOrderHandler(s services.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{service: s}
}

// ListWorkOrders godoc
// @Summary 获取工单列表
// @Description 按创建时间倒序返回工单头，附带明细数量 detail_count
// @Tags workorders
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.Envelope{data=[]models.WorkOrder}
// @Failure 500 {object} utils.Envelope
// @Router /workorders [get]
func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	if c.Query("id") != "" {
		h.GetWorkOrder(c)
		return
	}
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		utils.RespondInternalServerError(c, "获取工单列表失败", err)
		return
	}
	utils.RespondList(c, orders, gin.H{"total_records": len(orders)})
}

// GetWorkOrder godoc
// @Summary 获取工单详情
// @Description 返回工单头及按工程师、故障类型排序的明细
// @Tags workorders
// @Security BearerAuth
// @Produce  json
// @Param id path int true "工单ID"
// @Success 200 {object} utils.Envelope{data=models.WorkOrder}
// @Failure 404 {object} utils.Envelope "工单不存在"
// @Router /workorders/{id} [get]
func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	order, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "工单", "获取工单详情失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, order, "")
}

// CreateWorkOrder godoc
// @Summary 创建工单
// @Description 创建工单头及明细，并写入一条 create 日志
// @Tags workorders
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param workorder body models.CreateWorkOrderPayload true "工单信息"
// @Success 201 {object} utils.Envelope{data=models.WorkOrder}
// @Failure 400 {object} utils.Envelope "工号和创建人不能为空"
// @Router /workorders [post]
func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	var payload models.CreateWorkOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	order, err := h.service.Create(c.Request.Context(), session, payload)
	if err != nil {
		respondServiceError(c, err, "工单", "创建工单失败")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, order, "工单创建成功")
}

// UpdateWorkOrder godoc
// @Summary 更新工单
// @Description 更新工号或状态；提供 details 时整体替换明细。写入一条 update 日志
// @Tags workorders
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path int true "工单ID"
// @Param workorder body models.UpdateWorkOrderPayload true "更新内容"
// @Success 200 {object} utils.Envelope{data=models.WorkOrder}
// @Failure 404 {object} utils.Envelope "工单不存在"
// @Router /workorders/{id} [put]
func (h *WorkOrderHandler) UpdateWorkOrder(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}
	var payload models.UpdateWorkOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}
	order, err := h.service.Update(c.Request.Context(), session, id, payload)
	if err != nil {
		respondServiceError(c, err, "工单", "更新工单失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, order, "工单更新成功")
}

// DeleteWorkOrder godoc
// @Summary 删除工单
// @Description 删除工单及其明细，日志保留。需要裁判或管理员
// @Tags workorders
// @Security BearerAuth
// @Produce  json
// @Param id path int true "工单ID"
// @Success 200 {object} utils.Envelope
// @Failure 403 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope "工单不存在"
// @Router /workorders/{id} [delete]
func (h *WorkOrderHandler) DeleteWorkOrder(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), session, id); err != nil {
		respondServiceError(c, err, "工单", "删除工单失败")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "工单删除成功")
}

// ListWorkOrderLogs godoc
// @Summary 工单操作日志
// @Tags workorders
// @Security BearerAuth
// @Produce  json
// @Param id path int true "工单ID"
// @Success 200 {object} utils.Envelope{data=[]models.WorkOrderLog}
// @Router /workorders/{id}/logs [get]
func (h *WorkOrderHandler) ListWorkOrderLogs(c *gin.Context) {
	id, ok := recordID(c)
	if !ok {
		return
	}
	logs, err := h.service.Logs(c.Request.Context(), id)
	if err != nil {
		utils.RespondInternalServerError(c, "获取工单日志失败", err)
		return
	}
	utils.RespondList(c, logs, gin.H{"total_records": len(logs)})
}
