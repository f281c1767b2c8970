package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration 应用配置，对应 config/mysql.ini 中的各个 section
type Configuration struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Mode         string `mapstructure:"mode"` // debug | release | test
	MaxUploadMB  int    `mapstructure:"max_upload_mb"`
	SwaggerUI    bool   `mapstructure:"swagger"`
	AllowOrigins string `mapstructure:"allow_origins"` // 逗号分隔，"*" 表示全部
}

// DatabaseConfig 对应 [database] section
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // mysql | sqlite
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	Charset      string `mapstructure:"charset"`
	SQLitePath   string `mapstructure:"sqlite_path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type AuthConfig struct {
	JWTSecret              string        `mapstructure:"jwt_secret"`
	TokenTTL               time.Duration `mapstructure:"token_ttl"`
	Issuer                 string        `mapstructure:"issuer"`
	BootstrapAdminPassword string        `mapstructure:"bootstrap_admin_password"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

// RedisConfig Addr 为空时使用进程内的拒绝列表和锁
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type StorageConfig struct {
	HeadersFile   string `mapstructure:"headers_file"`
	AppConfigFile string `mapstructure:"app_config_file"`
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	DefaultConfigFile = "config/mysql.ini"
	envPrefix         = "WORKORDER"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.max_upload_mb", 20)
	v.SetDefault("server.swagger", true)
	v.SetDefault("server.allow_origins", "*")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "workorder")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.sqlite_path", "data/workorder.db")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.issuer", "repair_workorder")
	v.SetDefault("auth.bootstrap_admin_password", "admin")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.headers_file", "date/date.txt")
	v.SetDefault("storage.app_config_file", "config/app-config.ini")
}

// Load 读取 INI 配置文件，环境变量 WORKORDER_<SECTION>_<KEY> 可覆盖任意配置项。
// 配置文件不存在时仅使用默认值和环境变量。
func Load(path string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("ini")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("无法访问配置文件 %s: %w", path, err)
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验必填项与取值范围
func (c *Configuration) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret 未配置 (可通过环境变量 WORKORDER_AUTH_JWT_SECRET 设置)")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port 超出范围: %d", c.Server.Port)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl 必须为正数: %s", c.Auth.TokenTTL)
	}
	switch c.Database.Driver {
	case DriverMySQL:
		if c.Database.Host == "" || c.Database.Database == "" {
			return errors.New("mysql 需要配置 database.host 和 database.database")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("sqlite 需要配置 database.sqlite_path")
		}
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", c.Database.Driver)
	}
	return nil
}

// Addr 返回 HTTP 监听地址
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Origins 解析允许的跨域来源
func (c ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
