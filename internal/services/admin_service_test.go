package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
	"unicode/utf16"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/pkg/lock"
)

func setupAdminService() (*adminService, *mockMaintenanceRepo, *lock.LocalLocker) {
	maintenance := &mockMaintenanceRepo{}
	locker := lock.NewLocalLocker()
	svc := NewAdminService(AdminRepositories{
		FaultWorkOrders:     newMockFaultRepo(),
		SevenSEvaluations:   newMockSevenSRepo(),
		DataRecoveryRecords: newMockRecoveryRepo(),
		Maintenance:         maintenance,
	}, locker, zap.NewNop()).(*adminService)
	svc.now = func() time.Time { return time.Date(2024, 5, 20, 9, 30, 0, 0, time.Local) }
	return svc, maintenance, locker
}

func TestNormalizeImportRecord(t *testing.T) {
	today := models.MustParseDate("2024-05-20")

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, fields map[string]interface{})
	}{
		{
			name:  "去掉 id 与生成列",
			input: `{"id": 7, "total_score": 5, "user": "engineer1", "evaluation_date": "2024-05-01"}`,
			check: func(t *testing.T, fields map[string]interface{}) {
				if _, ok := fields["id"]; ok {
					t.Error("id 应被移除")
				}
				if _, ok := fields["total_score"]; ok {
					t.Error("total_score 应被移除")
				}
				if fields["evaluation_date"] != "2024-05-01" {
					t.Errorf("evaluation_date = %v", fields["evaluation_date"])
				}
			},
		},
		{
			name:  "字符串 user_id",
			input: `{"user": "engineer1", "user_id": "12"}`,
			check: func(t *testing.T, fields map[string]interface{}) {
				if fields["user_id"] != float64(12) {
					t.Errorf("user_id = %#v", fields["user_id"])
				}
			},
		},
		{
			name:  "旧格式时间戳",
			input: `{"user": "engineer1", "created_at": "2024-05-01 08:30:00", "updated_at": ""}`,
			check: func(t *testing.T, fields map[string]interface{}) {
				want := time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local).Format(time.RFC3339)
				if fields["created_at"] != want {
					t.Errorf("created_at = %v, want %s", fields["created_at"], want)
				}
				if _, ok := fields["updated_at"]; ok {
					t.Error("空 updated_at 应被移除")
				}
			},
		},
		{
			name:  "缺少日期使用当天",
			input: `{"user": "engineer1", "evaluation_date": null}`,
			check: func(t *testing.T, fields map[string]interface{}) {
				if fields["evaluation_date"] != "2024-05-20" {
					t.Errorf("evaluation_date = %v", fields["evaluation_date"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := normalizeImportRecord(json.RawMessage(tt.input), "evaluation_date", today)
			if err != nil {
				t.Fatalf("normalizeImportRecord: %v", err)
			}
			var fields map[string]interface{}
			if err := json.Unmarshal(out, &fields); err != nil {
				t.Fatal(err)
			}
			tt.check(t, fields)
		})
	}

	if out, err := normalizeImportRecord(json.RawMessage(`{"id": 3}`), "work_date", today); err != nil || out != nil {
		t.Errorf("只有 id 的记录应跳过: out=%s err=%v", out, err)
	}
	if _, err := normalizeImportRecord(json.RawMessage(`{"user": "a", "user_id": "abc"}`), "work_date", today); err == nil {
		t.Error("非数字 user_id 应报错")
	}
	if _, err := normalizeImportRecord(json.RawMessage(`[1]`), "work_date", today); err == nil {
		t.Error("非对象记录应报错")
	}
}

func TestDecodeImportDocumentEncodings(t *testing.T) {
	doc := `{"fcbmwo_date": [], "export_info": {"version": "1.0"}}`

	utf16le := []byte{0xFF, 0xFE}
	for _, u := range utf16.Encode([]rune(doc)) {
		utf16le = append(utf16le, byte(u), byte(u>>8))
	}

	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(`{"fcbmwo_date": [{"user": "engineer1", "Test_results": "通过"}]}`))
	if err != nil {
		t.Fatal(err)
	}

	inputs := map[string][]byte{
		"UTF-8":        []byte(doc),
		"UTF-8 BOM":    append([]byte{0xEF, 0xBB, 0xBF}, doc...),
		"UTF-16LE BOM": utf16le,
		"GBK":          gbk,
	}
	for name, content := range inputs {
		t.Run(name, func(t *testing.T) {
			parsed, err := decodeImportDocument(content)
			if err != nil {
				t.Fatalf("decodeImportDocument: %v", err)
			}
			if _, ok := parsed["fcbmwo_date"]; !ok {
				t.Errorf("缺少 fcbmwo_date: %v", parsed)
			}
		})
	}

	for _, bad := range []string{"not json", "null", "[]"} {
		if _, err := decodeImportDocument([]byte(bad)); !errors.Is(err, ErrInvalidImportFile) {
			t.Errorf("%q: err = %v", bad, err)
		}
	}
}

func TestAdminService_ImportCountsInsertsAndUpdates(t *testing.T) {
	svc, _, _ := setupAdminService()
	ctx := context.Background()

	content := []byte(`{
		"fcbmwo_date": [
			{"id": 5, "user": "engineer1", "work_date": "2024-05-01", "Test_results": "通过"},
			{"user": "engineer1", "work_date": "2024-05-01", "Test_results": "复测通过"},
			{}
		],
		"7S_Management_Evaluation": [
			{"user": "engineer2", "arrange": "1", "total_score": 7}
		],
		"export_info": {"version": "1.0"}
	}`)
	result, err := svc.Import(ctx, "backup.JSON", content)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got := result.Results[TableFaultWorkOrder]; got.Inserted != 1 || got.Updated != 1 {
		t.Errorf("fcbmwo_date = %+v", got)
	}
	if got := result.Results[TableSevenSEvaluation]; got.Inserted != 1 {
		t.Errorf("7S = %+v", got)
	}
	if _, ok := result.Results[TableDataRecovery]; ok {
		t.Error("文件中没有的表不应出现在结果中")
	}
	if string(result.ImportInfo) != `{"version": "1.0"}` {
		t.Errorf("import_info = %s", result.ImportInfo)
	}

	rows, _ := svc.repos.SevenSEvaluations.All(ctx)
	if len(rows) != 1 || rows[0].EvaluationDate.String() != "2024-05-20" || rows[0].TotalScore != 1 {
		t.Errorf("7S 记录 = %+v", rows)
	}
	faults, _ := svc.repos.FaultWorkOrders.All(ctx)
	if len(faults) != 1 || faults[0].TestResults != "复测通过" || faults[0].ID != 1 {
		t.Errorf("故障工单 = %+v", faults)
	}

	if _, err := svc.Import(ctx, "backup.csv", content); !errors.Is(err, ErrInvalidImportFile) {
		t.Errorf("非 JSON 扩展名 err = %v", err)
	}
	if _, err := svc.Import(ctx, "bad.json", []byte(`{"drarwo": {}}`)); err == nil {
		t.Error("表数据不是数组时应报错")
	}
}

func TestAdminService_BulkOperationsAreExclusive(t *testing.T) {
	svc, maintenance, locker := setupAdminService()
	ctx := context.Background()

	lease, err := locker.Obtain(ctx, bulkLockKey, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Clear(ctx); !errors.Is(err, ErrBulkOperationInProgress) {
		t.Errorf("持有锁时 Clear err = %v", err)
	}
	if _, err := svc.Import(ctx, "a.json", []byte(`{}`)); !errors.Is(err, ErrBulkOperationInProgress) {
		t.Errorf("持有锁时 Import err = %v", err)
	}
	lease.Release()

	deleted, err := svc.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(deleted) != len(TrackedTables) || len(maintenance.cleared) != len(TrackedTables) {
		t.Errorf("deleted = %v, cleared = %v", deleted, maintenance.cleared)
	}
	// 操作结束后续期停止且锁已释放
	after, err := locker.Obtain(ctx, bulkLockKey, time.Minute)
	if err != nil {
		t.Fatalf("Clear 结束后锁未释放: %v", err)
	}
	after.Release()
}

func TestAdminService_ExportFormats(t *testing.T) {
	svc, _, _ := setupAdminService()
	ctx := context.Background()

	file, err := svc.Export(ctx, "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if file.ASCIIName != "workorder_system_data_2024-05-20_09-30-00.json" {
		t.Errorf("文件名 = %s", file.ASCIIName)
	}
	var doc ExportDocument
	if err := json.Unmarshal(file.Body, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.ExportInfo.Timestamp != "2024-05-20 09:30:00" || doc.ExportInfo.Version != ExportVersion {
		t.Errorf("export_info = %+v", doc.ExportInfo)
	}

	if _, err := svc.Export(ctx, "csv"); !errors.Is(err, ErrUnsupportedExportFormat) {
		t.Errorf("csv err = %v", err)
	}
}
