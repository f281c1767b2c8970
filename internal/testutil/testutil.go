// Package testutil 为集成测试提供内存 SQLite、组装好的路由与登录 Token
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/repair_workorder/configs"
	"github.com/repair_workorder/internal/app"
	"github.com/repair_workorder/internal/auth"
	"github.com/repair_workorder/internal/models"
	"github.com/repair_workorder/pkg/db"
	"github.com/repair_workorder/pkg/utils"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
	_ = utils.RegisterValidators()
	utils.BcryptCost = bcrypt.MinCost
}

// NewDB 打开已迁移的内存数据库，测试结束时关闭
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	log := zap.NewNop()
	gormDB, err := db.NewDB(configs.DatabaseConfig{Driver: configs.DriverSQLite, SQLitePath: ":memory:"}, log)
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if _, err := db.RunMigrations(gormDB, configs.DriverSQLite, log); err != nil {
		t.Fatalf("执行迁移失败: %v", err)
	}
	t.Cleanup(func() { db.Close(gormDB, log) })
	return gormDB
}

// Config 测试用配置，状态文件与表头文件放在临时目录
func Config(t *testing.T) *configs.Configuration {
	t.Helper()
	dir := t.TempDir()
	return &configs.Configuration{
		Server: configs.ServerConfig{Port: 8080, Mode: gin.TestMode, MaxUploadMB: 1, AllowOrigins: "*"},
		Database: configs.DatabaseConfig{
			Driver:     configs.DriverSQLite,
			SQLitePath: ":memory:",
		},
		Auth: configs.AuthConfig{
			JWTSecret:              testSecret,
			TokenTTL:               time.Hour,
			Issuer:                 "repair_workorder_test",
			BootstrapAdminPassword: "admin123",
		},
		Log: configs.LogConfig{Level: "error", Format: "console"},
		Storage: configs.StorageConfig{
			HeadersFile:   filepath.Join(dir, "date", "date.txt"),
			AppConfigFile: filepath.Join(dir, "config", "app-config.ini"),
		},
	}
}

// Env 集成测试环境
type Env struct {
	T   *testing.T
	DB  *gorm.DB
	App *app.App
	Cfg *configs.Configuration
}

// NewEnv 组装完整应用，不使用 Redis
func NewEnv(t *testing.T) *Env {
	t.Helper()
	cfg := Config(t)
	gormDB := NewDB(t)
	state, err := configs.OpenAppState(cfg.Storage.AppConfigFile)
	if err != nil {
		t.Fatalf("打开状态文件失败: %v", err)
	}
	a := app.New(app.Dependencies{
		Config: cfg,
		Logger: zap.NewNop(),
		DB:     gormDB,
		State:  state,
	})
	return &Env{T: t, DB: gormDB, App: a, Cfg: cfg}
}

// CreateUser 直接写入一个启用的用户，密码为 bcrypt 哈希
func (e *Env) CreateUser(username, password string, permissions int, slot *int) *models.User {
	e.T.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		e.T.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Permissions:  permissions,
		EngineerSlot: slot,
		Status:       models.UserStatusActive,
	}
	if err := e.DB.Create(user).Error; err != nil {
		e.T.Fatalf("创建用户 %s 失败: %v", username, err)
	}
	return user
}

// Token 为用户签发 Token，不经过登录接口
func (e *Env) Token(user *models.User) string {
	e.T.Helper()
	token, _, err := e.App.Issuer.Issue(auth.Session{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         auth.RoleFor(user.Permissions, user.EngineerSlot),
		Permissions:  user.Permissions,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		e.T.Fatalf("签发 Token 失败: %v", err)
	}
	return token
}

// Do 发送 JSON 请求，token 为空时不带认证头
func (e *Env) Do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.T.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case []byte:
			reader = bytes.NewReader(b)
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(body)
			if err != nil {
				e.T.Fatalf("序列化请求体失败: %v", err)
			}
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.Serve(req)
}

// Serve 直接交给路由处理
func (e *Env) Serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.App.Router.ServeHTTP(w, req)
	return w
}

// Envelope 响应体的通用解析结果
type Envelope struct {
	Success    bool                       `json:"success"`
	Message    string                     `json:"message"`
	Data       json.RawMessage            `json:"data"`
	Action     string                     `json:"action"`
	QueryInfo  map[string]interface{}     `json:"query_info"`
	Results    map[string]json.RawMessage `json:"results"`
	ImportInfo json.RawMessage            `json:"import_info"`
}

// Decode 解析响应体
func Decode(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("解析响应失败: %v, body=%s", err, w.Body.String())
	}
	return env
}

// IntPtr 返回 i 的指针
func IntPtr(i int) *int { return &i }
