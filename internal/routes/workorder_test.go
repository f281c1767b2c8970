package routes_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/internal/testutil"
)

func decodeWorkOrder(t *testing.T, raw json.RawMessage) models.WorkOrder {
	t.Helper()
	var order models.WorkOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		t.Fatalf("解析工单失败: %v", err)
	}
	return order
}

func decodeLogs(t *testing.T, raw json.RawMessage) []models.WorkOrderLog {
	t.Helper()
	var logs []models.WorkOrderLog
	if err := json.Unmarshal(raw, &logs); err != nil {
		t.Fatalf("解析工单日志失败: %v", err)
	}
	return logs
}

func TestWorkOrderLifecycle(t *testing.T) {
	env := testutil.NewEnv(t)
	eng := env.CreateUser("zhang1", "secret1", models.PermissionEngineer, testutil.IntPtr(1))
	admin := env.CreateUser("root", "secret1", models.PermissionAdmin, nil)
	engToken := env.Token(eng)

	w := env.Do(http.MethodPost, "/api/workorders", engToken, map[string]interface{}{
		"work_number": "WO-2024_001",
		"created_by":  "zhang1",
		"details": []map[string]interface{}{
			{"engineer": "engineer2", "fault_type": "电源", "fault_description": "无法开机"},
			{"engineer": "engineer1", "fault_type": "主板", "seven_s_evaluation": map[string]bool{"arrange": true}},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建工单失败: %d %s", w.Code, w.Body.String())
	}
	created := decodeWorkOrder(t, testutil.Decode(t, w).Data)
	if created.Status != models.WorkOrderStatusDraft {
		t.Errorf("默认状态应为 draft, got %q", created.Status)
	}
	if created.DetailCount != 2 {
		t.Errorf("detail_count = %d, want 2", created.DetailCount)
	}

	w = env.Do(http.MethodGet, "/api/workorders/1", engToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("获取工单失败: %d", w.Code)
	}
	got := decodeWorkOrder(t, testutil.Decode(t, w).Data)
	if len(got.Details) != 2 || got.Details[0].Engineer != "engineer1" {
		t.Fatalf("明细应按工程师排序: %+v", got.Details)
	}
	if string(got.Details[0].SevenSEvaluation) != `{"arrange":true}` {
		t.Errorf("seven_s_evaluation = %s", got.Details[0].SevenSEvaluation)
	}

	w = env.Do(http.MethodPut, "/api/workorders/1", engToken, map[string]interface{}{
		"status":  models.WorkOrderStatusSubmitted,
		"details": []map[string]interface{}{{"engineer": "engineer3", "fault_type": "硬盘"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("更新工单失败: %d %s", w.Code, w.Body.String())
	}
	updated := decodeWorkOrder(t, testutil.Decode(t, w).Data)
	if updated.Status != models.WorkOrderStatusSubmitted || updated.WorkNumber != "WO-2024_001" {
		t.Errorf("更新结果不符: %+v", updated)
	}
	if len(updated.Details) != 1 || updated.Details[0].Engineer != "engineer3" {
		t.Errorf("details 应被整体替换: %+v", updated.Details)
	}

	w = env.Do(http.MethodGet, "/api/workorders", engToken, nil)
	var list []models.WorkOrder
	if err := json.Unmarshal(testutil.Decode(t, w).Data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].DetailCount != 1 {
		t.Errorf("列表结果不符: %+v", list)
	}

	if w := env.Do(http.MethodDelete, "/api/workorders/1", engToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("工程师删除工单应返回 403, got %d", w.Code)
	}
	if w := env.Do(http.MethodDelete, "/api/workorder.php?id=1", env.Token(admin), nil); w.Code != http.StatusOK {
		t.Fatalf("管理员删除工单失败: %d %s", w.Code, w.Body.String())
	}
	if w := env.Do(http.MethodGet, "/api/workorders/1", engToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("删除后应返回 404, got %d", w.Code)
	}
	var details int64
	env.DB.Model(&models.WorkOrderDetail{}).Count(&details)
	if details != 0 {
		t.Errorf("删除工单应同时删除明细, 剩余 %d 条", details)
	}

	logs := decodeLogs(t, testutil.Decode(t, env.Do(http.MethodGet, "/api/workorders/1/logs", engToken, nil)).Data)
	want := []struct{ op, operator string }{
		{models.OperationCreate, "zhang1"},
		{models.OperationUpdate, "zhang1"},
		{models.OperationDelete, "root"},
	}
	if len(logs) != len(want) {
		t.Fatalf("日志条数 = %d, want %d", len(logs), len(want))
	}
	for i, l := range logs {
		if l.OperationType != want[i].op || l.Operator != want[i].operator {
			t.Errorf("logs[%d] = %s/%s, want %s/%s", i, l.OperationType, l.Operator, want[i].op, want[i].operator)
		}
	}
}

func TestWorkOrderValidation(t *testing.T) {
	env := testutil.NewEnv(t)
	eng := env.CreateUser("zhang1", "secret1", models.PermissionEngineer, testutil.IntPtr(1))
	token := env.Token(eng)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"缺少工号", map[string]interface{}{"created_by": "zhang1"}},
		{"工号含非法字符", map[string]interface{}{"work_number": "WO 001", "created_by": "zhang1"}},
		{"无效状态", map[string]interface{}{"work_number": "WO1", "created_by": "zhang1", "status": "closed"}},
		{"明细缺少工程师", map[string]interface{}{"work_number": "WO1", "created_by": "zhang1", "details": []map[string]string{{"fault_type": "电源"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.Do(http.MethodPost, "/api/workorders", token, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("应返回 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	var n int64
	env.DB.Model(&models.WorkOrder{}).Count(&n)
	if n != 0 {
		t.Errorf("校验失败不应写入工单, got %d", n)
	}
	if w := env.Do(http.MethodPut, "/api/workorders/99", token, map[string]string{"status": "draft"}); w.Code != http.StatusNotFound {
		t.Errorf("更新不存在的工单应返回 404, got %d", w.Code)
	}

	w := env.Do(http.MethodPost, "/api/workorders", token, map[string]interface{}{"work_number": "WO-1", "created_by": "zhang1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("创建工单失败: %d %s", w.Code, w.Body.String())
	}
	for _, bad := range []string{"WO 2", ""} {
		w := env.Do(http.MethodPut, "/api/workorders/1", token, map[string]string{"work_number": bad})
		if w.Code != http.StatusBadRequest {
			t.Errorf("工号 %q 应返回 400, got %d", bad, w.Code)
		}
		if msg := testutil.Decode(t, w).Message; msg != "请求参数无效" {
			t.Errorf("message = %q", msg)
		}
	}
	got := decodeWorkOrder(t, testutil.Decode(t, env.Do(http.MethodGet, "/api/workorders/1", token, nil)).Data)
	if got.WorkNumber != "WO-1" {
		t.Errorf("校验失败不应修改工号, got %q", got.WorkNumber)
	}
}
