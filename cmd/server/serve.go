package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/repair_workorder/configs"
	"github.com/repair_workorder/internal/app"
	"github.com/repair_workorder/pkg/db"
	"github.com/repair_workorder/pkg/redis"
	"github.com/repair_workorder/pkg/utils"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, zapLogger, err := bootstrap()
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting workorder service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	gin.SetMode(cfg.Server.Mode)
	if err := utils.RegisterValidators(); err != nil {
		return fmt.Errorf("注册校验规则失败: %w", err)
	}

	gormDB, err := db.NewDB(cfg.Database, zapLogger)
	if err != nil {
		return err
	}
	defer db.Close(gormDB, zapLogger)

	if _, err := db.RunMigrations(gormDB, cfg.Database.Driver, zapLogger); err != nil {
		return err
	}

	rdb, err := redis.NewClient(cfg.Redis, zapLogger)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	state, err := configs.OpenAppState(cfg.Storage.AppConfigFile)
	if err != nil {
		return err
	}

	application := app.New(app.Dependencies{
		Config: cfg,
		Logger: zapLogger,
		DB:     gormDB,
		Redis:  rdb,
		State:  state,
	})
	if !application.Setup.Initialized() {
		zapLogger.Warn("数据库尚未标记为已初始化，请调用 POST /api/database/init")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	zapLogger.Info("Server exited")
	return nil
}
