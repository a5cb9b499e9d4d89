package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadAdminConfigDefaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "LOG_LEVEL", "PORT", "SIGNUP_REMOTE_TIMEOUT", "SIGNUP_COMPENSATE_ON_PROFILE_FAILURE", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := LoadAdminConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "admin", cfg.KratosIdentitySchema)
	assert.Equal(t, 10*time.Second, cfg.SignupRemoteTimeout)
	assert.False(t, cfg.SignupCompensate)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
}

func TestLoadAdminConfigOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	t.Setenv("SIGNUP_PENDING_TTL", "45s")
	t.Setenv("SIGNUP_COMPENSATE_ON_PROFILE_FAILURE", "true")
	t.Setenv("SIGNUP_ORPHAN_AUDIT_SCHEDULE", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://admin.example.com, ,https://ops.example.com")

	cfg := LoadAdminConfig()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 40, cfg.DBMaxOpenConns)
	assert.Equal(t, 45*time.Second, cfg.SignupPendingTTL)
	assert.True(t, cfg.SignupCompensate)
	assert.Empty(t, cfg.SignupOrphanAuditSchedule)
	assert.Equal(t, []string{"https://admin.example.com", "https://ops.example.com"}, cfg.CORSAllowOrigins)
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("BAD_INT", "abc")
	t.Setenv("BAD_BOOL", "maybe")
	t.Setenv("BAD_DURATION", "-3s")

	assert.Equal(t, 7, GetEnvInt("BAD_INT", 7))
	assert.True(t, GetEnvBool("BAD_BOOL", true))
	assert.Equal(t, time.Second, GetEnvDuration("BAD_DURATION", time.Second))
}

func TestSanitizeConfigForLog(t *testing.T) {
	cfg := &AdminConfig{
		DatabaseURL:   "postgres://user:pass@db/admin",
		RedisPassword: "secret",
		Port:          "8080",
	}

	fields := cfg.LogFields()

	assert.Equal(t, "***REDACTED***", fields["database_url"])
	assert.Equal(t, "***REDACTED***", fields["redis_password"])
	assert.Equal(t, "8080", fields["port"])
}
