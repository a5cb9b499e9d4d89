// File: internal/pkg/metrics/signup_metrics_test.go
package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSignupMetrics_RecordSubmission(t *testing.T) {
	tests := []struct {
		name      string
		outcome   string
		stage     string
		reason    string
		wantStage string
		wantRsn   string
	}{
		{"注册成功", "succeeded", "", "", "none", "none"},
		{"身份创建失败", "failed", "identity", "duplicate_identity", "identity", "duplicate_identity"},
		{"资料写入失败", "failed", "profile", "store_error", "profile", "store_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			m := NewSignupMetricsWithRegistry("test", reg)

			m.RecordSubmission("admin", tt.outcome, tt.stage, tt.reason, 150*time.Millisecond)

			got := testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("admin", tt.outcome, tt.wantStage, tt.wantRsn))
			assert.Equal(t, float64(1), got)
			assert.Equal(t, 1, testutil.CollectAndCount(m.SubmissionDuration))
		})
	}
}

func TestSignupMetrics_OrphanAudit(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSignupMetricsWithRegistry("test", reg)

	m.RecordOrphanAudit("admin", 3, true)
	assert.Equal(t, float64(3), testutil.ToFloat64(m.OrphanAuditIdentities.WithLabelValues("admin")))

	// 失败的巡检保留上一次的结果
	m.RecordOrphanAudit("admin", 0, false)
	assert.Equal(t, float64(3), testutil.ToFloat64(m.OrphanAuditIdentities.WithLabelValues("admin")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OrphanAuditRuns.WithLabelValues("admin", "error")))
}

func TestSignupMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSignupMetricsWithRegistry("test", reg)

	m.RecordPendingRejection("")
	m.RecordOrphanedIdentity("admin", "duplicate_profile")
	m.RecordCompensation("admin", true)
	m.RecordCompensation("admin", false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.PendingRejections.WithLabelValues(GetServiceName())))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OrphanedIdentitiesTotal.WithLabelValues("admin", "duplicate_profile")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CompensationsTotal.WithLabelValues("admin", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CompensationsTotal.WithLabelValues("admin", "error")))
}
