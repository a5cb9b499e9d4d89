package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edu-admin/internal/pkg/config"
	"edu-admin/internal/pkg/kratos"
	"edu-admin/internal/pkg/log"
	"edu-admin/internal/pkg/metrics"
	"edu-admin/internal/pkg/xerrors"
	"edu-admin/internal/repository/entity"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentities struct {
	created []kratos.CreateIdentityInput
}

func (f *fakeIdentities) CreateIdentity(_ context.Context, input kratos.CreateIdentityInput) (string, error) {
	f.created = append(f.created, input)
	return "5f0c8b52-3f9d-4a8e-9c1c-2b8f6f0d9a11", nil
}

func (f *fakeIdentities) DeleteIdentity(context.Context, string) error { return nil }

type fakeProfiles struct {
	created []*entity.Profile
}

func (f *fakeProfiles) Create(_ context.Context, profile *entity.Profile) error {
	f.created = append(f.created, profile)
	return nil
}

func (f *fakeProfiles) GetByID(context.Context, string) (*entity.Profile, error) {
	return nil, xerrors.FromCode(xerrors.CodeResourceNotFound)
}

func (f *fakeProfiles) ExistsByID(context.Context, string) (bool, error) { return true, nil }

func newTestServer(t *testing.T, opts ...func(*config.AdminConfig)) (*Server, *fakeIdentities, *fakeProfiles) {
	t.Helper()
	cfg := &config.AdminConfig{
		Environment:              "test",
		Port:                     "0",
		SignupPendingTTL:         time.Minute,
		SignupRemoteTimeout:      time.Second,
		SignupRateLimitPerSecond: 100,
		SignupRateLimitBurst:     100,
		CORSAllowOrigins:         []string{"*"},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	s := NewServer(cfg, log.NewNopLogger())
	s.gatherer = prometheus.NewRegistry()

	identities := &fakeIdentities{}
	profiles := &fakeProfiles{}
	s.initResponseWriter()
	s.initHandlers(identities, profiles)
	require.NoError(t, s.initHTTPServer())
	s.setupRoutes()
	return s, identities, profiles
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.httpServer.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
}

func TestServer_ReadyWithoutDatabase(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(s, http.MethodGet, "/ready", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "not configured", status.Checks["database"])
}

func TestServer_PassFailChart(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(s, http.MethodGet, "/api/v1/admin/metrics/students/pass-fail", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"72% Pass"`)
}

func TestServer_RegisterEndToEnd(t *testing.T) {
	s, identities, profiles := newTestServer(t)
	body := `{"name":"Jane Roe","email":"jane@example.com","phone":"9876543210","username":"jane_r","password":"abc123","confirmPassword":"abc123"}`

	rec := do(s, http.MethodPost, "/api/v1/admin/auth/register", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect_to":"/admin/dashboard"`)
	assert.NotContains(t, rec.Body.String(), "abc123")
	require.Len(t, identities.created, 1)
	require.Len(t, profiles.created, 1)
	assert.Equal(t, "5f0c8b52-3f9d-4a8e-9c1c-2b8f6f0d9a11", profiles.created[0].ID)
}

func TestServer_RegisterInvalid(t *testing.T) {
	s, identities, _ := newTestServer(t)
	body := `{"name":"Jane Roe","email":"jane@example.com","phone":"9876543210","username":"jane_r","password":"abc123","confirmPassword":"nope"}`

	rec := do(s, http.MethodPost, "/api/v1/admin/auth/register", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"confirmPassword":"Passwords do not match"`)
	assert.Empty(t, identities.created)
}

func TestServer_UnknownRoute(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(s, http.MethodGet, "/api/v1/admin/unknown", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":100404`)
}

func TestServer_MetricsEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := do(s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecordDBPoolStats_UsesDeltas(t *testing.T) {
	m := metrics.NewResourceMetricsWithRegistry("test", prometheus.NewRegistry())

	first := sql.DBStats{OpenConnections: 3, InUse: 1, Idle: 2, MaxOpenConnections: 25, WaitCount: 4, WaitDuration: 2 * time.Second}
	recordDBPoolStats(m, sql.DBStats{}, first)
	second := first
	second.WaitCount = 6
	second.WaitDuration = 3 * time.Second
	recordDBPoolStats(m, first, second)

	service := metrics.GetServiceName()
	assert.Equal(t, float64(6), testutil.ToFloat64(m.DBWaitCount.WithLabelValues(service, "postgres")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.DBWaitDuration.WithLabelValues(service, "postgres")))
	assert.Equal(t, float64(25), testutil.ToFloat64(m.DBMaxConnections.WithLabelValues(service, "postgres")))
}

func TestServer_PendingTTLCoversRemoteCalls(t *testing.T) {
	s, _, _ := newTestServer(t, func(cfg *config.AdminConfig) {
		cfg.SignupPendingTTL = 5 * time.Second
		cfg.SignupRemoteTimeout = 10 * time.Second
	})

	assert.Equal(t, 25*time.Second, s.pendingTTL())
}

func TestServer_RegisterRateLimited(t *testing.T) {
	s, _, _ := newTestServer(t, func(cfg *config.AdminConfig) {
		cfg.SignupRateLimitPerSecond = 1
		cfg.SignupRateLimitBurst = 1
	})
	body := `{"name":"Jane Roe","email":"jane@example.com","phone":"9876543210","username":"jane_r","password":"abc123","confirmPassword":"abc123"}`

	first := do(s, http.MethodPost, "/api/v1/admin/auth/register", body)
	require.Equal(t, http.StatusOK, first.Code)

	// 伪造 X-Forwarded-For 不能绕过按连接地址的限流
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	second := httptest.NewRecorder()
	s.httpServer.ServeHTTP(second, req)

	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	var env struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &env))
	assert.Equal(t, int(xerrors.CodeRateLimitExceeded), env.Code)
}
