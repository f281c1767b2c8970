package db

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/repair_workorder/configs"
)

// NewDB 按 [database] 配置打开连接池。
// 整个进程共享同一个 *gorm.DB，请求通过 WithContext 取用连接。
func NewDB(cfg configs.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg, log)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second, // 慢 SQL 阈值
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	if cfg.Driver == configs.DriverSQLite && isMemoryPath(cfg.SQLitePath) {
		// 内存库只存在于单个连接中
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		maxOpen := cfg.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = 25
		}
		maxIdle := cfg.MaxIdleConns
		if maxIdle <= 0 {
			maxIdle = 10
		}
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetMaxIdleConns(maxIdle)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	log.Info("数据库连接成功", zap.String("driver", cfg.Driver), zap.String("target", describe(cfg)))
	return gormDB, nil
}

func dialectorFor(cfg configs.DatabaseConfig, log *zap.Logger) (gorm.Dialector, error) {
	switch cfg.Driver {
	case configs.DriverMySQL:
		return mysql.Open(MySQLDSN(cfg)), nil
	case configs.DriverSQLite:
		path := cfg.SQLitePath
		if !isMemoryPath(path) {
			// 确保数据库文件所在的目录存在
			dir := filepath.Dir(path)
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				log.Info("数据库目录不存在，正在创建", zap.String("dir", dir))
				if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
					return nil, fmt.Errorf("创建数据库目录 %s 失败: %w", dir, mkErr)
				}
			}
		}
		return sqlite.Open(SQLiteDSN(path)), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}
}

// MySQLDSN 生成 go-sql-driver 格式的 DSN。
// 迁移文件包含多条语句，因此开启 multiStatements。
func MySQLDSN(cfg configs.DatabaseConfig) string {
	mc := mysqldriver.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Database
	mc.ParseTime = true
	mc.MultiStatements = true
	mc.Loc = time.Local
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	mc.Params = map[string]string{"charset": charset}
	return mc.FormatDSN()
}

// SQLiteDSN 为文件路径附加外键与忙等待参数
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		path = "file::memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory") || strings.HasPrefix(path, "file::memory:")
}

func describe(cfg configs.DatabaseConfig) string {
	if cfg.Driver == configs.DriverSQLite {
		return cfg.SQLitePath
	}
	return fmt.Sprintf("%s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.Database)
}

// Close 关闭连接池 (通常在应用退出时调用)
func Close(gormDB *gorm.DB, log *zap.Logger) {
	if gormDB == nil {
		return
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Warn("获取底层 sql.DB 失败", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("关闭数据库失败", zap.Error(err))
		return
	}
	log.Info("数据库连接已关闭")
}
