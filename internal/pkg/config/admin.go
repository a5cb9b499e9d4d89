package config

import (
	"log/slog"
	"strings"
	"time"
)

// AdminConfig 管理后台服务配置，全部来自环境变量
type AdminConfig struct {
	Environment string
	LogLevel    slog.Level
	Port        string

	KratosAdminURL       string
	KratosIdentitySchema string

	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NATSURL string

	SignupPendingTTL          time.Duration
	SignupRemoteTimeout       time.Duration
	SignupCompensate          bool
	SignupOrphanAuditSchedule string
	SignupRateLimitPerSecond  int
	SignupRateLimitBurst      int

	CORSAllowOrigins []string
}

// LoadAdminConfig 加载配置：环境变量 > 默认值
func LoadAdminConfig() *AdminConfig {
	return &AdminConfig{
		Environment: GetEnvOrDefault("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(GetEnvOrDefault("LOG_LEVEL", "info")),
		Port:        GetEnvOrDefault("PORT", "8080"),

		KratosAdminURL:       GetEnvOrDefault("KRATOS_ADMIN_URL", "http://kratos:4434"),
		KratosIdentitySchema: GetEnvOrDefault("KRATOS_IDENTITY_SCHEMA", "admin"),

		DatabaseURL:    GetEnvOrDefault("DATABASE_URL", ""),
		DBMaxOpenConns: GetEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: GetEnvInt("DB_MAX_IDLE_CONNS", 5),

		RedisAddr:     GetEnvOrDefault("REDIS_ADDR", ""),
		RedisPassword: GetEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvInt("REDIS_DB", 0),

		NATSURL: GetEnvOrDefault("NATS_URL", ""),

		SignupPendingTTL:    GetEnvDuration("SIGNUP_PENDING_TTL", 30*time.Second),
		SignupRemoteTimeout: GetEnvDuration("SIGNUP_REMOTE_TIMEOUT", 10*time.Second),
		SignupCompensate:    GetEnvBool("SIGNUP_COMPENSATE_ON_PROFILE_FAILURE", false),
		// 显式设置为空字符串可关闭巡检，默认值只在变量未设置时生效
		SignupOrphanAuditSchedule: lookupEnv("SIGNUP_ORPHAN_AUDIT_SCHEDULE", "@every 1h"),
		SignupRateLimitPerSecond:  GetEnvInt("SIGNUP_RATE_LIMIT_PER_SECOND", 5),
		SignupRateLimitBurst:      GetEnvInt("SIGNUP_RATE_LIMIT_BURST", 10),

		CORSAllowOrigins: GetEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),
	}
}

// LogFields 可安全写入日志的配置快照
func (c *AdminConfig) LogFields() map[string]any {
	return SanitizeConfigForLog(map[string]any{
		"environment":        c.Environment,
		"log_level":          c.LogLevel.String(),
		"port":               c.Port,
		"kratos_admin_url":   c.KratosAdminURL,
		"kratos_schema":      c.KratosIdentitySchema,
		"database_url":       c.DatabaseURL,
		"redis_addr":         c.RedisAddr,
		"redis_password":     c.RedisPassword,
		"nats_url":           c.NATSURL,
		"pending_ttl":        c.SignupPendingTTL.String(),
		"remote_timeout":     c.SignupRemoteTimeout.String(),
		"compensate":         c.SignupCompensate,
		"orphan_audit":       c.SignupOrphanAuditSchedule,
		"signup_rate_limit":  c.SignupRateLimitPerSecond,
		"cors_allow_origins": c.CORSAllowOrigins,
	})
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
