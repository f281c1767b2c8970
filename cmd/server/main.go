package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/repair_workorder/configs"
	"github.com/repair_workorder/pkg/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

var configPath string

// @title 维修工单系统 API
// @version 1.0
// @description 维修团队每日故障工单、7S 评估、数据恢复记录与工单管理接口
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	rootCmd := &cobra.Command{
		Use:     "workorder",
		Short:   "维修工单系统",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Long: `维修工单系统后端服务。

不带子命令时等同于 serve，启动 HTTP 服务。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", configs.DefaultConfigFile, "INI 配置文件路径")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap 读取配置并创建日志
func bootstrap() (*configs.Configuration, *zap.Logger, error) {
	cfg, err := configs.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}
	zapLogger, err := logger.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	return cfg, zapLogger, nil
}
