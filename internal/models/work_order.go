package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// 工单状态
const (
	WorkOrderStatusDraft     = "draft"
	WorkOrderStatusSubmitted = "submitted"
	WorkOrderStatusCompleted = "completed"
)

// 工单日志操作类型
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// WorkOrder 工单头，对应 WorkOrder 表
type WorkOrder struct {
	ID          int64             `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	WorkNumber  string            `json:"work_number" gorm:"column:work_number;size:50;not null;index"`
	CreatedBy   string            `json:"created_by" gorm:"column:created_by;size:50;not null"`
	Status      string            `json:"status" gorm:"column:status;size:20;not null"`
	CreatedAt   time.Time         `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
	DetailCount int64             `json:"detail_count" gorm:"column:detail_count;->;-:migration"`
	Details     []WorkOrderDetail `json:"details,omitempty" gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE"`
}

func (WorkOrder) TableName() string {
	return "WorkOrder"
}

// WorkOrderDetail 工单明细，每条属于一个工单
type WorkOrderDetail struct {
	ID               int64          `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	WorkOrderID      int64          `json:"work_order_id" gorm:"column:work_order_id;not null;index"`
	Engineer         string         `json:"engineer" gorm:"column:engineer;size:50;not null"`
	FaultType        string         `json:"fault_type" gorm:"column:fault_type;size:50"`
	FaultDescription string         `json:"fault_description" gorm:"column:fault_description"`
	TestResult       string         `json:"test_result" gorm:"column:test_result"`
	LocateComponent  string         `json:"locate_component" gorm:"column:locate_component"`
	RepairResult     string         `json:"repair_result" gorm:"column:repair_result"`
	TuningEffect     string         `json:"tuning_effect" gorm:"column:tuning_effect"`
	SevenSEvaluation datatypes.JSON `json:"seven_s_evaluation" gorm:"column:seven_s_evaluation"`
	CreatedAt        time.Time      `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (WorkOrderDetail) TableName() string {
	return "WorkOrderDetail"
}

// WorkOrderLog 工单操作日志，只追加不修改
type WorkOrderLog struct {
	ID              int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	WorkOrderID     int64     `json:"work_order_id" gorm:"column:work_order_id;not null;index"`
	Operator        string    `json:"operator" gorm:"column:operator;size:50;not null"`
	OperationType   string    `json:"operation_type" gorm:"column:operation_type;size:20;not null"`
	OperationDetail string    `json:"operation_detail" gorm:"column:operation_detail"`
	CreatedAt       time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (WorkOrderLog) TableName() string {
	return "WorkOrderLog"
}

// WorkOrderDetailPayload 请求体中的一条工单明细
type WorkOrderDetailPayload struct {
	Engineer         string          `json:"engineer"`
	FaultType        string          `json:"fault_type"`
	FaultDescription string          `json:"fault_description"`
	TestResult       string          `json:"test_result"`
	LocateComponent  string          `json:"locate_component"`
	RepairResult     string          `json:"repair_result"`
	TuningEffect     string          `json:"tuning_effect"`
	SevenSEvaluation json.RawMessage `json:"seven_s_evaluation" swaggertype:"object"`
}

// ToModel 转换为明细行，7S 评估原样保存为 JSON
func (p WorkOrderDetailPayload) ToModel() WorkOrderDetail {
	d := WorkOrderDetail{
		Engineer:         p.Engineer,
		FaultType:        p.FaultType,
		FaultDescription: p.FaultDescription,
		TestResult:       p.TestResult,
		LocateComponent:  p.LocateComponent,
		RepairResult:     p.RepairResult,
		TuningEffect:     p.TuningEffect,
	}
	if len(p.SevenSEvaluation) > 0 && string(p.SevenSEvaluation) != "null" {
		d.SevenSEvaluation = datatypes.JSON(p.SevenSEvaluation)
	}
	return d
}

// CreateWorkOrderPayload 创建工单的请求体
type CreateWorkOrderPayload struct {
	WorkNumber string                   `json:"work_number" binding:"required,worknumber"`
	CreatedBy  string                   `json:"created_by" binding:"required,max=50"`
	Status     string                   `json:"status"`
	Details    []WorkOrderDetailPayload `json:"details"`
}

// UpdateWorkOrderPayload 更新工单的请求体，nil 字段保持不变，
// details 存在时整体替换明细
type UpdateWorkOrderPayload struct {
	WorkNumber *string                   `json:"work_number" binding:"omitempty,worknumber"`
	Status     *string                   `json:"status"`
	Details    *[]WorkOrderDetailPayload `json:"details"`
}
