package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// KeyDatabaseInitialized app-config.ini 中记录数据库是否已初始化的键
const KeyDatabaseInitialized = "database.initialized"

// ErrUnknownStateKey 请求了不受支持的配置键
var ErrUnknownStateKey = errors.New("不支持的配置项")

// AppState 管理 app-config.ini，记录运行期可变的开关。
// 读写都经过互斥锁，写入时整体重写文件。
type AppState struct {
	mu   sync.Mutex
	path string
	v    *viper.Viper
}

// OpenAppState 加载状态文件，不存在时以默认值创建
func OpenAppState(path string) (*AppState, error) {
	v := viper.New()
	v.SetConfigType("ini")
	v.SetDefault(KeyDatabaseInitialized, false)

	s := &AppState{path: path, v: v}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		v.Set(KeyDatabaseInitialized, false)
		if err := s.write(); err != nil {
			return nil, err
		}
		return s, nil
	} else if err != nil {
		return nil, fmt.Errorf("无法访问状态文件 %s: %w", path, err)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取状态文件 %s 失败: %w", path, err)
	}
	return s, nil
}

func (s *AppState) write() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建目录 %s 失败: %w", dir, err)
		}
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("写入状态文件 %s 失败: %w", s.path, err)
	}
	return nil
}

// DatabaseInitialized 返回数据库初始化标记
func (s *AppState) DatabaseInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetBool(KeyDatabaseInitialized)
}

// SetDatabaseInitialized 更新初始化标记并落盘
func (s *AppState) SetDatabaseInitialized(initialized bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.v.GetBool(KeyDatabaseInitialized)
	s.v.Set(KeyDatabaseInitialized, initialized)
	if err := s.write(); err != nil {
		s.v.Set(KeyDatabaseInitialized, prev)
		return err
	}
	return nil
}

// Get 读取单个配置键，仅支持已知键
func (s *AppState) Get(key string) (interface{}, error) {
	switch strings.ToLower(key) {
	case KeyDatabaseInitialized:
		return s.DatabaseInitialized(), nil
	default:
		return nil, ErrUnknownStateKey
	}
}

// Set 写入单个配置键。value 接受 bool、数字或 "true"/"1" 等字符串。
func (s *AppState) Set(key string, value interface{}) error {
	switch strings.ToLower(key) {
	case KeyDatabaseInitialized:
		return s.SetDatabaseInitialized(truthy(value))
	default:
		return ErrUnknownStateKey
	}
}

// All 返回全部状态，按 section 分组
func (s *AppState) All() map[string]interface{} {
	return map[string]interface{}{
		"database": map[string]interface{}{
			"initialized": s.DatabaseInitialized(),
		},
	}
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "on":
			return true
		}
	}
	return false
}
