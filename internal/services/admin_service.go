package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gorm.io/gorm"

	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/internal/repositories"
	"github.com/repair_workorder/pkg/lock"
)

// 导出、导入、清除涉及的表，顺序即导出顺序
const (
	TableFaultWorkOrder   = "fcbmwo_date"
	TableSevenSEvaluation = "7S_Management_Evaluation"
	TableDataRecovery     = "drarwo"
)

var TrackedTables = []string{TableFaultWorkOrder, TableSevenSEvaluation, TableDataRecovery}

// 导出格式
const (
	ExportFormatJSON = "json"
	ExportFormatXLSX = "xlsx"
)

const (
	ExportVersion = "1.0"

	exportTimestampLayout = "2006-01-02 15:04:05"
	exportFileTimeLayout  = "2006-01-02_15-04-05"
	legacyDateTimeLayout  = "2006-01-02 15:04:05"

	bulkLockKey     = "admin:bulk"
	bulkLockTTL     = time.Minute
	bulkLockRefresh = bulkLockTTL / 3
)

// ExportInfo 导出文件的元信息
type ExportInfo struct {
	Timestamp    string         `json:"timestamp"`
	Version      string         `json:"version"`
	TotalRecords map[string]int `json:"total_records"`
}

// ExportDocument 导出文件的结构，键名与表名一致
type ExportDocument struct {
	FaultWorkOrders     []models.FaultWorkOrder     `json:"fcbmwo_date"`
	SevenSEvaluations   []models.SevenSEvaluation   `json:"7S_Management_Evaluation"`
	DataRecoveryRecords []models.DataRecoveryRecord `json:"drarwo"`
	ExportInfo          ExportInfo                  `json:"export_info"`
}

// ExportFile 待下载的导出文件
type ExportFile struct {
	ASCIIName   string
	UTF8Name    string
	ContentType string
	Body        []byte
}

// ImportCount 单表导入结果
type ImportCount struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// ImportResult 导入结果，ImportInfo 为文件中的 export_info 原文
type ImportResult struct {
	Results    map[string]ImportCount
	ImportInfo json.RawMessage
}

// AdminService 管理员数据维护接口
type AdminService interface {
	Export(ctx context.Context, format string) (*ExportFile, error)
	Import(ctx context.Context, filename string, content []byte) (*ImportResult, error)
	Clear(ctx context.Context) (map[string]int64, error)
}

// AdminRepositories 管理员服务依赖的仓库
type AdminRepositories struct {
	FaultWorkOrders     repositories.DailyRecordRepository[models.FaultWorkOrder]
	SevenSEvaluations   repositories.DailyRecordRepository[models.SevenSEvaluation]
	DataRecoveryRecords repositories.DailyRecordRepository[models.DataRecoveryRecord]
	Maintenance         repositories.MaintenanceRepository
}

type adminService struct {
	repos  AdminRepositories
	locker lock.Locker
	logger *zap.Logger
	now    func() time.Time
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(repos AdminRepositories, locker lock.Locker, logger *zap.Logger) AdminService {
	return &adminService{repos: repos, locker: locker, logger: logger, now: time.Now}
}

// acquire 批量操作互斥，多实例部署时经 Redis 协调。
// 操作期间持续续期，进程退出后锁在 bulkLockTTL 内过期。
func (s *adminService) acquire(ctx context.Context) (func(), error) {
	lease, err := s.locker.Obtain(ctx, bulkLockKey, bulkLockTTL)
	if errors.Is(err, lock.ErrNotObtained) {
		return nil, ErrBulkOperationInProgress
	} else if err != nil {
		return nil, err
	}
	stop := lock.KeepAlive(context.WithoutCancel(ctx), lease, bulkLockRefresh)
	return func() {
		stop()
		lease.Release()
	}, nil
}

func (s *adminService) collect(ctx context.Context) (*ExportDocument, error) {
	faults, err := s.repos.FaultWorkOrders.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", TableFaultWorkOrder, err)
	}
	sevenS, err := s.repos.SevenSEvaluations.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", TableSevenSEvaluation, err)
	}
	recovery, err := s.repos.DataRecoveryRecords.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", TableDataRecovery, err)
	}

	return &ExportDocument{
		FaultWorkOrders:     faults,
		SevenSEvaluations:   sevenS,
		DataRecoveryRecords: recovery,
		ExportInfo: ExportInfo{
			Timestamp: s.now().Format(exportTimestampLayout),
			Version:   ExportVersion,
			TotalRecords: map[string]int{
				TableFaultWorkOrder:   len(faults),
				TableSevenSEvaluation: len(sevenS),
				TableDataRecovery:     len(recovery),
			},
		},
	}, nil
}

func (s *adminService) Export(ctx context.Context, format string) (*ExportFile, error) {
	if format == "" {
		format = ExportFormatJSON
	}
	if format != ExportFormatJSON && format != ExportFormatXLSX {
		return nil, ErrUnsupportedExportFormat
	}

	doc, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}
	stamp := s.now().Format(exportFileTimeLayout)

	if format == ExportFormatXLSX {
		body, err := buildWorkbook(doc)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			ASCIIName:   "workorder_system_data_" + stamp + ".xlsx",
			UTF8Name:    "工单系统数据_" + stamp + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        body,
		}, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("序列化导出数据失败: %w", err)
	}
	return &ExportFile{
		ASCIIName:   "workorder_system_data_" + stamp + ".json",
		UTF8Name:    "工单系统数据_" + stamp + ".json",
		ContentType: "application/json; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}

func (s *adminService) Import(ctx context.Context, filename string, content []byte) (*ImportResult, error) {
	if strings.ToLower(filepath.Ext(filename)) != ".json" {
		return nil, fmt.Errorf("%w: 只支持JSON格式的文件", ErrInvalidImportFile)
	}
	doc, err := decodeImportDocument(content)
	if err != nil {
		return nil, err
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	today := models.NewDate(s.now())
	result := &ImportResult{Results: make(map[string]ImportCount), ImportInfo: doc["export_info"]}

	err = s.repos.Maintenance.Transaction(ctx, func(tx *gorm.DB) error {
		for _, table := range TrackedTables {
			raw, ok := doc[table]
			if !ok {
				continue
			}
			var records []json.RawMessage
			if err := json.Unmarshal(raw, &records); err != nil {
				return fmt.Errorf("表 %s 的数据必须是数组", table)
			}

			var count ImportCount
			var err error
			switch table {
			case TableFaultWorkOrder:
				count, err = importTable(ctx, s.repos.FaultWorkOrders.WithTx(tx), records, today)
			case TableSevenSEvaluation:
				count, err = importTable(ctx, s.repos.SevenSEvaluations.WithTx(tx), records, today)
			case TableDataRecovery:
				count, err = importTable(ctx, s.repos.DataRecoveryRecords.WithTx(tx), records, today)
			}
			if err != nil {
				return fmt.Errorf("表 %s %w", table, err)
			}
			result.Results[table] = count
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("导入数据失败，已回滚", zap.String("file", filename), zap.Error(err))
		return nil, err
	}

	s.logger.Info("导入数据完成", zap.String("file", filename), zap.Any("results", result.Results))
	return result, nil
}

func (s *adminService) Clear(ctx context.Context) (map[string]int64, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	deleted, err := s.repos.Maintenance.ClearTables(ctx, TrackedTables)
	if err != nil {
		s.logger.Error("清除数据失败", zap.Error(err))
		return nil, err
	}
	s.logger.Warn("所有业务数据已清除", zap.Any("results", deleted))
	return deleted, nil
}

// decodeImportDocument 接受带或不带 BOM 的 UTF-8 以及带 BOM 的 UTF-16 文件
func decodeImportDocument(content []byte) (map[string]json.RawMessage, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, content)
	if err != nil {
		return nil, fmt.Errorf("%w: 无法读取文件内容", ErrInvalidImportFile)
	}
	// 无 BOM 且不是合法 UTF-8 时按 GBK 读取
	if !utf8.Valid(text) {
		if text, _, err = transform.Bytes(simplifiedchinese.GBK.NewDecoder(), content); err != nil {
			return nil, fmt.Errorf("%w: 无法识别文件编码", ErrInvalidImportFile)
		}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(text, &doc); err != nil {
		return nil, fmt.Errorf("%w: JSON格式错误: %v", ErrInvalidImportFile, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: 顶层必须是 JSON 对象", ErrInvalidImportFile)
	}
	return doc, nil
}

// importTable 逐条按 (user, 日期) 写入，调用方负责事务
func importTable[T any, P repositories.DailyRecordPtr[T]](ctx context.Context, repo repositories.DailyRecordRepository[T], records []json.RawMessage, today models.Date) (ImportCount, error) {
	var count ImportCount
	dateColumn := P(new(T)).DateColumn()

	for i, raw := range records {
		normalized, err := normalizeImportRecord(raw, dateColumn, today)
		if err != nil {
			return count, fmt.Errorf("第 %d 条记录: %w", i+1, err)
		}
		if normalized == nil {
			continue
		}

		var rec T
		if err := json.Unmarshal(normalized, &rec); err != nil {
			return count, fmt.Errorf("第 %d 条记录: %w", i+1, err)
		}
		if strings.TrimSpace(P(&rec).Owner()) == "" {
			return count, fmt.Errorf("第 %d 条记录缺少 user 字段", i+1)
		}

		action, err := repo.Upsert(ctx, &rec)
		if err != nil {
			return count, fmt.Errorf("第 %d 条记录写入失败: %w", i+1, err)
		}
		if action == models.ActionCreated {
			count.Inserted++
		} else {
			count.Updated++
		}
	}
	return count, nil
}

// normalizeImportRecord 去掉 id 和生成列，兼容旧导出文件中的字符串数字与
// "YYYY-MM-DD HH:MM:SS" 时间，缺少日期时使用当天。空对象返回 nil。
func normalizeImportRecord(raw json.RawMessage, dateColumn string, today models.Date) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, errors.New("记录必须是 JSON 对象")
	}

	delete(fields, "id")
	delete(fields, "total_score")
	if len(fields) == 0 {
		return nil, nil
	}

	switch v := fields["user_id"].(type) {
	case nil:
		delete(fields, "user_id")
	case string:
		if strings.TrimSpace(v) == "" {
			delete(fields, "user_id")
			break
		}
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("user_id 不是整数: %q", v)
		}
		fields["user_id"] = id
	}

	for _, key := range []string{"created_at", "updated_at"} {
		switch v := fields[key].(type) {
		case nil:
			delete(fields, key)
		case string:
			if v == "" {
				delete(fields, key)
				continue
			}
			if t, err := time.ParseInLocation(legacyDateTimeLayout, v, time.Local); err == nil {
				fields[key] = t.Format(time.RFC3339)
			}
		}
	}

	if v, ok := fields[dateColumn]; !ok || v == nil || v == "" {
		fields[dateColumn] = today.String()
	}
	return json.Marshal(fields)
}

func buildWorkbook(doc *ExportDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		rows func() ([]string, [][]interface{}, error)
	}{
		{TableFaultWorkOrder, func() ([]string, [][]interface{}, error) { return sheetRows(doc.FaultWorkOrders) }},
		{TableSevenSEvaluation, func() ([]string, [][]interface{}, error) { return sheetRows(doc.SevenSEvaluations) }},
		{TableDataRecovery, func() ([]string, [][]interface{}, error) { return sheetRows(doc.DataRecoveryRecords) }},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, err
		}

		columns, rows, err := sheet.rows()
		if err != nil {
			return nil, err
		}
		header := make([]interface{}, len(columns))
		for j, col := range columns {
			header[j] = col
		}
		if err := f.SetSheetRow(sheet.name, "A1", &header); err != nil {
			return nil, err
		}
		for j := range rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheet.name, cell, &rows[j]); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("生成 Excel 文件失败: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetRows 按 id、user、日期、内容列、时间戳的顺序展开记录
func sheetRows[T any, P repositories.DailyRecordPtr[T]](rows []T) ([]string, [][]interface{}, error) {
	proto := P(new(T))
	columns := append([]string{"id", "user", proto.DateColumn()}, models.ContentColumns(proto)...)
	if _, scored := any(proto).(interface{ Score() int }); scored {
		columns = append(columns, "total_score")
	}
	columns = append(columns, "created_at", "updated_at")

	out := make([][]interface{}, 0, len(rows))
	for i := range rows {
		raw, err := json.Marshal(&rows[i])
		if err != nil {
			return nil, nil, err
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var fields map[string]interface{}
		if err := dec.Decode(&fields); err != nil {
			return nil, nil, err
		}

		line := make([]interface{}, len(columns))
		for j, col := range columns {
			line[j] = cellValue(fields[col])
		}
		out = append(out, line)
	}
	return columns, out, nil
}

func cellValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return ""
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		return val.String()
	default:
		return val
	}
}
