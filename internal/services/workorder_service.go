package services

import (
	"context"
	"strings"

	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/internal/repositories"
)

// WorkOrderService 工单业务接口
type WorkOrderService interface {
	List(ctx context.Context) ([]models.WorkOrder, error)
	Get(ctx context.Context, id int64) (*models.WorkOrder, error)
	Create(ctx context.Context, s auth.Session, payload models.CreateWorkOrderPayload) (*models.WorkOrder, error)
	Update(ctx context.Context, s auth.Session, id int64, payload models.UpdateWorkOrderPayload) (*models.WorkOrder, error)
	Delete(ctx context.Context, s auth.Session, id int64) error
	Logs(ctx context.Context, id int64) ([]models.WorkOrderLog, error)
}

type workOrderService struct {
	repo repositories.WorkOrderRepository
}

// NewWorkOrderService 创建 WorkOrderService 实例
func NewWorkOrderService(repo repositories.WorkOrderRepository) WorkOrderService {
	return &workOrderService{repo: repo}
}

func validWorkOrderStatus(status string) bool {
	switch status {
	case models.WorkOrderStatusDraft, models.WorkOrderStatusSubmitted, models.WorkOrderStatusCompleted:
		return true
	}
	return false
}

func toDetails(payload []models.WorkOrderDetailPayload) ([]models.WorkOrderDetail, error) {
	details := make([]models.WorkOrderDetail, 0, len(payload))
	for _, p := range payload {
		if strings.TrimSpace(p.Engineer) == "" {
			return nil, ErrDetailEngineerRequired
		}
		details = append(details, p.ToModel())
	}
	return details, nil
}

func (s *workOrderService) List(ctx context.Context) ([]models.WorkOrder, error) {
	return s.repo.List(ctx)
}

func (s *workOrderService) Get(ctx context.Context, id int64) (*models.WorkOrder, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *workOrderService) Create(ctx context.Context, sess auth.Session, payload models.CreateWorkOrderPayload) (*models.WorkOrder, error) {
	workNumber := strings.TrimSpace(payload.WorkNumber)
	createdBy := strings.TrimSpace(payload.CreatedBy)
	if workNumber == "" || createdBy == "" {
		return nil, ErrWorkOrderFieldsRequired
	}

	status := payload.Status
	if status == "" {
		status = models.WorkOrderStatusDraft
	}
	if !validWorkOrderStatus(status) {
		return nil, ErrInvalidWorkOrderStatus
	}

	details, err := toDetails(payload.Details)
	if err != nil {
		return nil, err
	}

	order := &models.WorkOrder{
		WorkNumber: workNumber,
		CreatedBy:  createdBy,
		Status:     status,
		Details:    details,
	}
	if err := s.repo.Create(ctx, order, sess.Username); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *workOrderService) Update(ctx context.Context, sess auth.Session, id int64, payload models.UpdateWorkOrderPayload) (*models.WorkOrder, error) {
	var changes repositories.WorkOrderChanges

	if payload.WorkNumber != nil {
		workNumber := strings.TrimSpace(*payload.WorkNumber)
		changes.WorkNumber = &workNumber
	}
	if payload.Status != nil {
		if !validWorkOrderStatus(*payload.Status) {
			return nil, ErrInvalidWorkOrderStatus
		}
		changes.Status = payload.Status
	}
	if payload.Details != nil {
		details, err := toDetails(*payload.Details)
		if err != nil {
			return nil, err
		}
		changes.Details = &details
	}

	return s.repo.Update(ctx, id, changes, sess.Username)
}

func (s *workOrderService) Delete(ctx context.Context, sess auth.Session, id int64) error {
	if !auth.CanDeleteWorkOrder(sess) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id, sess.Username)
}

func (s *workOrderService) Logs(ctx context.Context, id int64) ([]models.WorkOrderLog, error) {
	// 工单删除后日志仍可查询，因此不检查工单是否存在
	return s.repo.Logs(ctx, id)
}
