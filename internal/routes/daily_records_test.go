package routes_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/internal/testutil"
)

func decodeFaults(t *testing.T, raw json.RawMessage) []models.FaultWorkOrder {
	t.Helper()
	var rows []models.FaultWorkOrder
	if err := json.Unmarshal(raw, &rows); err != nil {
		t.Fatalf("解析故障工单列表失败: %v", err)
	}
	return rows
}

func TestFaultWorkOrderSaveIsIdempotentPerDay(t *testing.T) {
	env := testutil.NewEnv(t)
	eng1 := env.CreateUser("zhang1", "secret1", models.PermissionEngineer, testutil.IntPtr(1))
	token := env.Token(eng1)

	first := map[string]interface{}{
		"user":                     "engineer1",
		"work_date":                "2024-05-01",
		"Discovered_a_malfunction": "电源故障",
	}
	w := env.Do(http.MethodPost, "/api/fcbmwo", token, first)
	if w.Code != http.StatusCreated {
		t.Fatalf("首次保存应返回 201, got %d: %s", w.Code, w.Body.String())
	}
	if resp := testutil.Decode(t, w); resp.Action != models.ActionCreated {
		t.Fatalf("action = %q, want created", resp.Action)
	}

	second := map[string]interface{}{
		"user":                     "engineer1",
		"work_date":                "2024-05-01",
		"Discovered_a_malfunction": "主板故障",
	}
	w = env.Do(http.MethodPost, "/api/fcbmwo.php", token, second)
	if w.Code != http.StatusOK {
		t.Fatalf("同日再次保存应返回 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.Decode(t, w)
	if resp.Action != models.ActionUpdated {
		t.Fatalf("action = %q, want updated", resp.Action)
	}
	var saved models.FaultWorkOrder
	if err := json.Unmarshal(resp.Data, &saved); err != nil {
		t.Fatal(err)
	}
	if saved.ID != 1 || saved.UserID != eng1.ID {
		t.Errorf("覆盖应保留原 id 并写入当前用户: %+v", saved)
	}

	w = env.Do(http.MethodGet, "/api/fcbmwo?work_date=2024-05-01", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	list := testutil.Decode(t, w)
	rows := decodeFaults(t, list.Data)
	if len(rows) != 1 {
		t.Fatalf("同一 (user, 日期) 只应有一条记录, got %d", len(rows))
	}
	if rows[0].DiscoveredAMalfunction != "主板故障" {
		t.Errorf("内容应为最后一次保存的值, got %q", rows[0].DiscoveredAMalfunction)
	}
	if list.QueryInfo["total_records"] != float64(1) {
		t.Errorf("query_info.total_records = %v", list.QueryInfo["total_records"])
	}
}

func TestFaultWorkOrderListOrderingAndFilters(t *testing.T) {
	env := testutil.NewEnv(t)
	admin := env.CreateUser("root", "secret1", models.PermissionAdmin, nil)
	token := env.Token(admin)

	for _, rec := range []map[string]string{
		{"user": "engineer1", "work_date": "2024-05-01"},
		{"user": "engineer2", "work_date": "2024-05-02"},
		{"user": "engineer1", "work_date": "2024-05-03"},
	} {
		if w := env.Do(http.MethodPost, "/api/fcbmwo", token, rec); w.Code != http.StatusCreated {
			t.Fatalf("保存 %v 失败: %d %s", rec, w.Code, w.Body.String())
		}
	}

	rows := decodeFaults(t, testutil.Decode(t, env.Do(http.MethodGet, "/api/fcbmwo?work_date=", token, nil)).Data)
	if len(rows) != 3 {
		t.Fatalf("空日期应返回全部记录, got %d", len(rows))
	}
	for i, want := range []string{"2024-05-03", "2024-05-02", "2024-05-01"} {
		if rows[i].WorkDate.String() != want {
			t.Errorf("rows[%d].work_date = %s, want %s", i, rows[i].WorkDate, want)
		}
	}

	rows = decodeFaults(t, testutil.Decode(t, env.Do(http.MethodGet, "/api/fcbmwo/list?user=engineer1&date=", token, nil)).Data)
	if len(rows) != 2 {
		t.Fatalf("按 user 过滤应返回 2 条, got %d", len(rows))
	}
	for _, r := range rows {
		if r.User != "engineer1" {
			t.Errorf("过滤结果包含其他用户: %s", r.User)
		}
	}

	// 不带日期参数时只查询当天
	rows = decodeFaults(t, testutil.Decode(t, env.Do(http.MethodGet, "/api/fcbmwo", token, nil)).Data)
	if len(rows) != 0 {
		t.Errorf("默认应只返回当天记录, got %d", len(rows))
	}

	if w := env.Do(http.MethodGet, "/api/fcbmwo?work_date=abc", token, nil); w.Code != http.StatusBadRequest {
		t.Errorf("无效日期应返回 400, got %d", w.Code)
	}
}

func TestFaultWorkOrderEngineerCannotWriteOtherSlot(t *testing.T) {
	env := testutil.NewEnv(t)
	eng2 := env.CreateUser("li2", "secret1", models.PermissionEngineer, testutil.IntPtr(2))

	w := env.Do(http.MethodPost, "/api/fcbmwo", env.Token(eng2), map[string]string{
		"user":      "engineer1",
		"work_date": "2024-05-01",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("写其他工位应返回 403, got %d", w.Code)
	}

	w = env.Do(http.MethodPost, "/api/fcbmwo", env.Token(eng2), map[string]string{"work_date": "2024-05-01"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("缺少 user 应返回 400, got %d", w.Code)
	}
}

func TestSevenSUpdateRejectsOwnerMismatch(t *testing.T) {
	env := testutil.NewEnv(t)
	eng1 := env.CreateUser("zhang1", "secret1", models.PermissionEngineer, testutil.IntPtr(1))
	referee := env.CreateUser("wang", "secret1", models.PermissionReferee, nil)

	w := env.Do(http.MethodPost, "/api/7s-management", env.Token(eng1), map[string]interface{}{
		"user":            "engineer1",
		"evaluation_date": "2024-05-01",
		"arrange":         true,
		"clean":           1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("保存 7S 评估失败: %d %s", w.Code, w.Body.String())
	}
	var created models.SevenSEvaluation
	if err := json.Unmarshal(testutil.Decode(t, w).Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.TotalScore != 2 {
		t.Errorf("total_score = %d, want 2", created.TotalScore)
	}

	w = env.Do(http.MethodPut, "/api/7s-management/1", env.Token(referee), map[string]interface{}{
		"current_user": "engineer2",
		"arrange":      false,
		"clean":        false,
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("current_user 与记录不一致应返回 403, got %d", w.Code)
	}
	if msg := testutil.Decode(t, w).Message; msg != "无权限修改其他用户的评估记录" {
		t.Errorf("message = %q", msg)
	}

	var stored models.SevenSEvaluation
	if err := env.DB.First(&stored, 1).Error; err != nil {
		t.Fatal(err)
	}
	if !stored.Arrange.Bool() || stored.TotalScore != 2 {
		t.Errorf("拒绝的更新不应修改记录: %+v", stored)
	}

	w = env.Do(http.MethodPut, "/api/7s-management.php?id=1", env.Token(eng1), map[string]interface{}{
		"current_user": "engineer1",
		"arrange":      true,
		"reorganize":   true,
		"clean":        true,
		"secure":       "1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("本人更新应成功, got %d: %s", w.Code, w.Body.String())
	}
	var updated models.SevenSEvaluation
	if err := json.Unmarshal(testutil.Decode(t, w).Data, &updated); err != nil {
		t.Fatal(err)
	}
	if updated.TotalScore != 4 || updated.User != "engineer1" || updated.EvaluationDate.String() != "2024-05-01" {
		t.Errorf("更新结果不符: %+v", updated)
	}
}

func TestDailyRecordNotFound(t *testing.T) {
	env := testutil.NewEnv(t)
	admin := env.CreateUser("root", "secret1", models.PermissionAdmin, nil)
	token := env.Token(admin)

	if w := env.Do(http.MethodGet, "/api/drarwo/42", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("GET 不存在的记录应返回 404, got %d", w.Code)
	}
	if w := env.Do(http.MethodDelete, "/api/drarwo/42", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("DELETE 不存在的记录应返回 404, got %d", w.Code)
	}
	if w := env.Do(http.MethodDelete, "/api/drarwo", token, nil); w.Code != http.StatusBadRequest {
		t.Errorf("缺少 id 应返回 400, got %d", w.Code)
	}
	if w := env.Do(http.MethodGet, "/api/drarwo", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("未登录应返回 401, got %d", w.Code)
	}
}

func TestSevenSListDateParam(t *testing.T) {
	env := testutil.NewEnv(t)
	eng1 := env.CreateUser("zhang1", "secret1", models.PermissionEngineer, testutil.IntPtr(1))
	token := env.Token(eng1)

	w := env.Do(http.MethodPost, "/api/7s-management", token, map[string]interface{}{
		"user":            "engineer1",
		"evaluation_date": "2024-05-01",
		"arrange":         true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("保存 7S 评估失败: %d %s", w.Code, w.Body.String())
	}

	for _, query := range []string{"evaluation_date=2024-05-01", "evaluation_date=2024/5/1", "date=2024-05-01"} {
		w := env.Do(http.MethodGet, "/api/7s-management?"+query, token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: %d %s", query, w.Code, w.Body.String())
		}
		var rows []models.SevenSEvaluation
		if err := json.Unmarshal(testutil.Decode(t, w).Data, &rows); err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 {
			t.Errorf("%s: 应返回 1 条, got %d", query, len(rows))
		}
	}

	for _, query := range []string{"evaluation_date=2024-13-40", "date=abc"} {
		w := env.Do(http.MethodGet, "/api/7s-management?"+query, token, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: 应返回 400, got %d", query, w.Code)
		}
	}
}
