package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	custommiddleware "edu-admin/internal/middleware"
	dashboardhandler "edu-admin/internal/modules/dashboard/handler"
	dashboardservice "edu-admin/internal/modules/dashboard/service"
	signuphandler "edu-admin/internal/modules/signup/handler"
	signupservice "edu-admin/internal/modules/signup/service"
	"edu-admin/internal/modules/signup/tasks"
	"edu-admin/internal/pkg/config"
	"edu-admin/internal/pkg/i18n"
	"edu-admin/internal/pkg/inflight"
	"edu-admin/internal/pkg/kratos"
	"edu-admin/internal/pkg/log"
	"edu-admin/internal/pkg/metrics"
	pkgnats "edu-admin/internal/pkg/nats"
	"edu-admin/internal/pkg/notify"
	pkgredis "edu-admin/internal/pkg/redis"
	"edu-admin/internal/pkg/response"
	"edu-admin/internal/pkg/security"
	"edu-admin/internal/pkg/trace"
	"edu-admin/internal/pkg/validator"
	"edu-admin/internal/repository/impl"
	"edu-admin/internal/repository/interfaces"
	"edu-admin/internal/repository/migrations"

	apivalidator "edu-admin/internal/api/validator"

	_ "edu-admin/docs/admin" // Swagger 文档

	"github.com/labstack/echo/v4"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// ServiceName 指标与日志中的服务名
const ServiceName = "admin"

// pendingKeyPrefix Redis 中进行中标记的键前缀
const pendingKeyPrefix = "signup:pending:"

// Server 管理后台 HTTP 服务
type Server struct {
	cfg    *config.AdminConfig
	logger log.Logger

	db         *sql.DB
	redis      *pkgredis.Client
	natsConn   *nats.Conn
	natsHealth *pkgnats.HealthChecker
	publisher  *notify.Publisher

	httpServer     *echo.Echo
	respWriter     response.Writer
	authHandler    *signuphandler.AuthHandler
	metricsHandler *dashboardhandler.MetricsHandler
	orphanAudit    *tasks.OrphanAuditTask

	gatherer         prometheus.Gatherer
	backgroundCancel context.CancelFunc
	backgroundWG     sync.WaitGroup
}

// NewServer 创建服务实例，Init 之前不建立任何连接
func NewServer(cfg *config.AdminConfig, logger log.Logger) *Server {
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Server{
		cfg:       cfg,
		logger:    logger,
		publisher: notify.NewPublisher(nil),
		gatherer:  prometheus.DefaultGatherer,
	}
}

// Init 初始化依赖：数据库（必需）、Redis 与 NATS（可选）、HTTP 路由与定时任务
func (s *Server) Init(ctx context.Context) error {
	metrics.SetServiceName(ServiceName)

	bgCtx, cancel := context.WithCancel(context.Background())
	s.backgroundCancel = cancel

	// 1. Response writer
	s.initResponseWriter()

	// 2. Database + migrations
	if err := s.initDatabase(ctx, bgCtx); err != nil {
		return err
	}

	// 3. Redis（未配置时使用进程内标记）
	s.initRedis(ctx)

	// 4. NATS（未配置时事件静默丢弃）
	s.initNATS(bgCtx)

	// 5. Handlers & tasks
	kratosClient := kratos.NewClient(s.cfg.KratosAdminURL, s.cfg.KratosIdentitySchema, s.logger)
	profiles := impl.NewProfileRepository(s.db)
	s.initHandlers(kratosClient, profiles)

	// 6. HTTP server
	if err := s.initHTTPServer(); err != nil {
		return err
	}
	s.setupRoutes()

	// 7. 孤立身份巡检
	s.orphanAudit = tasks.NewOrphanAuditTask(kratosClient, profiles, metrics.DefaultSignupMetrics, s.logger,
		s.cfg.SignupOrphanAuditSchedule, signupservice.MinPendingTTL(s.cfg.SignupRemoteTimeout))
	if err := s.orphanAudit.Start(); err != nil {
		return err
	}

	return nil
}

// initResponseWriter initializes response writer
func (s *Server) initResponseWriter() {
	s.respWriter = response.NewResponseHandler(s.logger, s.cfg.Environment)
}

// initDatabase initializes database connection
func (s *Server) initDatabase(ctx, bgCtx context.Context) error {
	if s.cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL not configured")
	}

	db, err := sql.Open("postgres", s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(s.cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(s.cfg.DBMaxIdleConns)
	s.db = db

	if err := migrations.Up(ctx, db); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "[Admin Server] 数据库连接成功，迁移已完成")

	// 启动数据库连接池监控
	s.backgroundWG.Add(1)
	go func() {
		defer s.backgroundWG.Done()
		s.startDBPoolMonitoring(bgCtx, db, 30*time.Second)
	}()
	return nil
}

// initRedis 连接失败时降级为进程内标记
func (s *Server) initRedis(ctx context.Context) {
	if s.cfg.RedisAddr == "" {
		s.logger.InfoContext(ctx, "[Admin Server] 未配置 REDIS_ADDR，重复提交检查使用进程内标记")
		return
	}

	client, err := pkgredis.NewClient(ctx, pkgredis.Config{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPassword,
		DB:       s.cfg.RedisDB,
	}, ServiceName)
	if err != nil {
		s.logger.WarnContext(ctx, "[Admin Server] Redis 不可用，重复提交检查使用进程内标记", log.Err(err))
		return
	}
	s.redis = client
	s.logger.InfoContext(ctx, "[Admin Server] Redis 连接成功", log.String("addr", s.cfg.RedisAddr))
}

func (s *Server) initNATS(bgCtx context.Context) {
	if s.cfg.NATSURL == "" {
		s.logger.Info("[Admin Server] 未配置 NATS_URL，注册事件不会发布")
		return
	}

	conn, err := pkgnats.Connect(s.cfg.NATSURL, "edu-admin")
	if err != nil {
		s.logger.Warn("[Admin Server] NATS 不可用，注册事件不会发布", log.Err(err))
		return
	}
	s.natsConn = conn
	s.publisher.SetConn(conn)

	s.natsHealth = pkgnats.NewHealthChecker(conn, 10*time.Second)
	s.backgroundWG.Add(1)
	go func() {
		defer s.backgroundWG.Done()
		s.natsHealth.Start(bgCtx)
	}()
	s.logger.Info("[Admin Server] NATS 连接成功", log.String("url", s.cfg.NATSURL))
}

// initHandlers initializes HTTP handlers
func (s *Server) initHandlers(identities signupservice.IdentityProvider, profiles interfaces.ProfileRepository) {
	pendingTTL := s.pendingTTL()
	var guard inflight.Guard = inflight.NewMemoryGuard(pendingTTL)
	if s.redis != nil {
		guard = inflight.NewRedisGuard(s.redis, pendingKeyPrefix, pendingTTL, s.logger)
	}

	registration := signupservice.NewRegistrationService(signupservice.Dependencies{
		Identities:                 identities,
		Profiles:                   profiles,
		Guard:                      guard,
		Events:                     s.publisher,
		Metrics:                    metrics.DefaultSignupMetrics,
		Logger:                     s.logger,
		RemoteTimeout:              s.cfg.SignupRemoteTimeout,
		CompensateOnProfileFailure: s.cfg.SignupCompensate,
	})

	s.authHandler = signuphandler.NewAuthHandler(registration, s.respWriter)
	s.metricsHandler = dashboardhandler.NewMetricsHandler(dashboardservice.NewPassFailService(), s.respWriter)
}

// pendingTTL 进行中标记的有效期不短于一次提交的最长处理时间
func (s *Server) pendingTTL() time.Duration {
	ttl := signupservice.EffectivePendingTTL(s.cfg.SignupPendingTTL, s.cfg.SignupRemoteTimeout)
	if ttl != s.cfg.SignupPendingTTL {
		s.logger.Warn("[Admin Server] SIGNUP_PENDING_TTL 短于一次提交的最长处理时间，已调整",
			log.String("configured", s.cfg.SignupPendingTTL.String()),
			log.String("effective", ttl.String()),
			log.String("remote_timeout", s.cfg.SignupRemoteTimeout.String()))
	}
	return ttl
}

// initHTTPServer initializes HTTP server
func (s *Server) initHTTPServer() error {
	s.httpServer = echo.New()
	s.httpServer.HideBanner = true
	s.httpServer.HidePort = true

	engine, err := validator.NewEngine(apivalidator.RegisterAuthValidators)
	if err != nil {
		return fmt.Errorf("init validator: %w", err)
	}
	s.httpServer.Validator = validator.New(engine)

	// 中间件通过 c.Error 上报的错误同样写成统一响应
	s.httpServer.HTTPErrorHandler = custommiddleware.HTTPErrorHandler(s.respWriter, s.logger)

	// 限流按连接地址计算，不信任客户端传入的 X-Forwarded-For
	s.httpServer.IPExtractor = echo.ExtractIPDirect()

	// ========== 中间件配置（顺序很重要！） ==========

	// 1. TraceID 中间件 - 最先执行，生成或提取 TraceID
	s.httpServer.Use(trace.Middleware())

	// 2. Metrics 中间件 - 记录请求数与耗时
	s.httpServer.Use(metrics.Middleware(metrics.DefaultHTTPMetrics))

	// 3. i18n 中间件 - 语言检测和设置
	s.httpServer.Use(i18n.Middleware())

	// 4. Logging 中间件 - 记录请求日志（依赖 TraceID）
	loggingConfig := custommiddleware.DefaultLoggingConfig()
	if s.cfg.Environment == "development" {
		// 开发环境记录请求体，密码字段已脱敏
		loggingConfig.DetailedLog = true
		loggingConfig.LogRequestBody = true
	}
	s.httpServer.Use(custommiddleware.LoggingMiddlewareWithConfig(s.logger, loggingConfig))

	// 5. Recovery 中间件 - 捕获 panic
	s.httpServer.Use(custommiddleware.RecoveryMiddleware(s.respWriter, s.logger))

	// 6. Error 中间件 - 统一错误处理
	s.httpServer.Use(custommiddleware.ErrorMiddleware(s.respWriter, s.logger))

	// 7. CORS 中间件
	s.httpServer.Use(security.CORSMiddlewareWithConfig(security.NewCORSConfig(s.cfg.CORSAllowOrigins)))

	// 8. 安全响应头
	s.httpServer.Use(security.SecurityHeadersMiddleware(s.cfg.Environment))

	s.logger.Info("[Admin Server] HTTP middlewares configured",
		log.String("environment", s.cfg.Environment))
	return nil
}

// setupRoutes sets up HTTP routes
func (s *Server) setupRoutes() {
	// API v1 group
	v1 := s.httpServer.Group("/api/v1")
	admin := v1.Group("/admin")

	// Auth routes（公开访问）
	auth := admin.Group("/auth")
	{
		var registerMiddleware []echo.MiddlewareFunc
		if s.cfg.SignupRateLimitPerSecond > 0 {
			registerMiddleware = append(registerMiddleware,
				custommiddleware.RateLimitMiddleware(float64(s.cfg.SignupRateLimitPerSecond), s.cfg.SignupRateLimitBurst))
		}
		auth.POST("/register", s.authHandler.Register, registerMiddleware...)
	}

	// Dashboard charts
	admin.GET("/metrics/students/pass-fail", s.metricsHandler.GetPassFailPercentage)

	// Swagger UI
	s.httpServer.GET("/swagger/*", echoSwagger.WrapHandler)

	// Health check
	s.httpServer.GET("/health", s.Health)
	s.httpServer.GET("/ready", s.Ready)

	// Prometheus metrics endpoint
	s.httpServer.GET("/metrics", metrics.EchoHandler(s.gatherer))

	s.logger.Info("[Admin Server] Routes configured successfully",
		log.String("swagger", "/swagger/index.html"),
		log.String("metrics", "/metrics"))
}

// Start 启动 HTTP 服务，阻塞直到服务关闭
func (s *Server) Start() error {
	addr := ":" + s.cfg.Port
	s.logger.Info("[Admin Server] Starting HTTP server", log.String("addr", addr))

	if err := s.httpServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown 依次停止 HTTP 服务、定时任务、后台协程并关闭连接
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown HTTP server: %w", err))
		} else {
			s.logger.Info("[Admin Server] HTTP server closed")
		}
	}

	if s.orphanAudit != nil {
		s.orphanAudit.Stop()
	}

	if s.backgroundCancel != nil {
		s.backgroundCancel()
	}
	if s.natsHealth != nil {
		s.natsHealth.Stop()
	}
	s.backgroundWG.Wait()

	if s.natsConn != nil {
		if err := s.natsConn.Drain(); err != nil {
			errs = append(errs, fmt.Errorf("drain NATS: %w", err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close Redis: %w", err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		} else {
			s.logger.Info("[Admin Server] Database connection closed")
		}
	}

	return errors.Join(errs...)
}

// startDBPoolMonitoring 启动数据库连接池监控
// 每个周期把连接池统计写入 Prometheus，等待次数与时长按增量上报
func (s *Server) startDBPoolMonitoring(ctx context.Context, db *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last sql.DBStats
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := db.Stats()
			recordDBPoolStats(metrics.DefaultResourceMetrics, last, stats)
			last = stats
		}
	}
}

func recordDBPoolStats(m *metrics.ResourceMetrics, last, stats sql.DBStats) {
	m.RecordDBPoolStats(
		metrics.GetServiceName(),
		"postgres",
		stats.OpenConnections,
		stats.InUse,
		stats.Idle,
		stats.MaxOpenConnections,
		stats.WaitCount-last.WaitCount,
		stats.WaitDuration-last.WaitDuration,
	)
}
