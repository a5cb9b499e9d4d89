package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	docs "edu-admin/docs/admin"
	"edu-admin/internal/modules/admin"
	"edu-admin/internal/pkg/config"
	"edu-admin/internal/pkg/log"
)

// @title           Edu Admin API
// @version         1.0
// @description     管理员注册与学生指标图表 API

// @BasePath  /api/v1

// shutdownTimeout 优雅关闭的最长等待时间
const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.LoadAdminConfig()
	log.Init(cfg.LogLevel, cfg.Environment)
	logger := log.GetLogger()

	logger.Info("==============================================")
	logger.Info("  Edu Admin Server", log.String("version", "1.0.0"))
	logger.Info("==============================================")
	logger.Info("[Main] Configuration loaded", log.Any("config", cfg.LogFields()))

	// Swagger 跟随当前请求的 Host
	docs.SwaggerInfo.Host = ""
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := admin.NewServer(cfg, logger)
	if err := server.Init(ctx); err != nil {
		logger.Error("[Main] 服务初始化失败", err)
		shutdown(server, logger)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("[Main] 收到退出信号，开始优雅关闭")
	case err := <-errCh:
		if err != nil {
			logger.Error("[Main] HTTP 服务异常退出", err)
		}
	}

	shutdown(server, logger)
	logger.Info("[Main] Stopped")
}

func shutdown(server *admin.Server, logger log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("[Main] 关闭过程中出现错误", err)
	}
}
