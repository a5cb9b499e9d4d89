// File: internal/pkg/metrics/http_metrics_test.go
package metrics

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics_RecordRequest(t *testing.T) {
	tests := []struct {
		name       string
		route      string
		method     string
		statusCode int
		wantRoute  string
	}{
		{"注册成功", "/api/v1/admin/auth/register", "POST", 200, "/api/v1/admin/auth/register"},
		{"注册校验失败", "/api/v1/admin/auth/register", "POST", 400, "/api/v1/admin/auth/register"},
		{"图表数据", "/api/v1/admin/metrics/students/pass-fail", "GET", 200, "/api/v1/admin/metrics/students/pass-fail"},
		{"未匹配路由", "", "GET", 404, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			m := NewHTTPMetricsWithRegistry("test", reg)

			m.RecordRequest("admin", tt.route, tt.method, tt.statusCode, 120*time.Millisecond)

			count := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("admin", tt.wantRoute, tt.method, strconv.Itoa(tt.statusCode)))
			assert.Equal(t, float64(1), count)
			assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
		})
	}
}

func TestHTTPMetrics_InProgress(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetricsWithRegistry("test", reg)

	m.IncInProgress("admin")
	m.IncInProgress("admin")
	assert.Equal(t, float64(2), testutil.ToFloat64(m.RequestsInProgress.WithLabelValues("admin")))

	m.DecInProgress("admin")
	m.DecInProgress("admin")
	assert.Equal(t, float64(0), testutil.ToFloat64(m.RequestsInProgress.WithLabelValues("admin")))
}

func TestHTTPMetrics_ConcurrentSafety(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetricsWithRegistry("test", reg)

	const goroutines, iterations = 10, 100
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				m.RecordRequest("admin", "/api/v1/admin/auth/register", "POST", 200, time.Millisecond)
				m.IncInProgress("admin")
				m.DecInProgress("admin")
			}
		}()
	}
	wg.Wait()

	total := testutil.ToFloat64(m.RequestsTotal.WithLabelValues("admin", "/api/v1/admin/auth/register", "POST", "200"))
	assert.Equal(t, float64(goroutines*iterations), total)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.RequestsInProgress.WithLabelValues("admin")))
}

func TestIsHealthCheckEndpoint(t *testing.T) {
	assert.True(t, IsHealthCheckEndpoint("/health"))
	assert.True(t, IsHealthCheckEndpoint("/metrics"))
	assert.False(t, IsHealthCheckEndpoint("/api/v1/admin/auth/register"))
}
