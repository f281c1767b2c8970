package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrInvalidHeaders 表头数据必须是非空 JSON 对象
var ErrInvalidHeaders = errors.New("表头数据必须是非空 JSON 对象")

// HeadersSaveResult 保存表头后的返回信息
type HeadersSaveResult struct {
	Timestamp string `json:"timestamp"`
	FileSize  int    `json:"file_size"`
}

// HeadersService 自定义表头文字的读写，保存在单个文本文件中
type HeadersService interface {
	Load() (map[string]interface{}, error)
	Save(raw []byte) (*HeadersSaveResult, error)
}

type headersService struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewHeadersService 创建 HeadersService，path 默认为 date/date.txt
func NewHeadersService(path string) HeadersService {
	return &headersService{path: path, now: time.Now}
}

func (s *headersService) Load() (map[string]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取表头文件失败: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return map[string]interface{}{}, nil
	}

	var headers map[string]interface{}
	if err := json.Unmarshal(content, &headers); err != nil {
		return nil, fmt.Errorf("表头文件内容无效: %w", err)
	}
	if headers == nil {
		headers = map[string]interface{}{}
	}
	return headers, nil
}

func (s *headersService) Save(raw []byte) (*HeadersSaveResult, error) {
	var headers map[string]interface{}
	if err := json.Unmarshal(raw, &headers); err != nil || len(headers) == 0 {
		return nil, ErrInvalidHeaders
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(headers); err != nil {
		return nil, err
	}
	content := bytes.TrimRight(buf.Bytes(), "\n")

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.path, content); err != nil {
		return nil, fmt.Errorf("写入表头文件失败: %w", err)
	}
	return &HeadersSaveResult{
		Timestamp: s.now().Format(exportTimestampLayout),
		FileSize:  len(content),
	}, nil
}

// writeFileAtomic 先写临时文件再重命名，读者不会看到写了一半的文件
func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
