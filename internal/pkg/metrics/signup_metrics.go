// File: internal/pkg/metrics/signup_metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SignupMetrics 管理员注册流程指标
type SignupMetrics struct {
	// 提交结果（按结果、失败阶段、失败原因）
	SubmissionsTotal *prometheus.CounterVec
	// 提交耗时，包含两次远程调用
	SubmissionDuration *prometheus.HistogramVec
	// 同一邮箱重复提交被拒绝的次数
	PendingRejections *prometheus.CounterVec
	// 身份已创建但资料写入失败
	OrphanedIdentitiesTotal *prometheus.CounterVec
	// 补偿删除身份的结果
	CompensationsTotal *prometheus.CounterVec
	// 最近一次巡检发现的孤立身份数量
	OrphanAuditIdentities *prometheus.GaugeVec
	// 巡检执行次数
	OrphanAuditRuns *prometheus.CounterVec
}

var (
	// DefaultSignupMetrics 默认的注册流程指标实例
	DefaultSignupMetrics *SignupMetrics
)

// SignupBuckets 注册请求耗时 buckets，单位：秒
var SignupBuckets = []float64{0.1, 0.25, 0.5, 1, 2, 5, 10}

func init() {
	DefaultSignupMetrics = NewSignupMetricsWithRegistry(Namespace, GetRegisterer())
}

// NewSignupMetricsWithRegistry 创建注册流程指标（使用自定义注册表）
func NewSignupMetricsWithRegistry(namespace string, registerer prometheus.Registerer) *SignupMetrics {
	factory := promauto.With(registerer)

	return &SignupMetrics{
		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "submissions_total",
				Help:      "Admin signup submissions by outcome, failing stage and reason",
			},
			[]string{"service", "outcome", "stage", "reason"},
		),

		SubmissionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "submission_duration_seconds",
				Help:      "Admin signup submission latency by outcome",
				Buckets:   SignupBuckets,
			},
			[]string{"service", "outcome"},
		),

		PendingRejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "pending_rejections_total",
				Help:      "Submissions rejected because another submission for the same email was in flight",
			},
			[]string{"service"},
		),

		OrphanedIdentitiesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "orphaned_identities_total",
				Help:      "Identities created whose profile record could not be written",
			},
			[]string{"service", "reason"},
		),

		CompensationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "compensations_total",
				Help:      "Compensating identity deletions by result",
			},
			[]string{"service", "result"},
		),

		OrphanAuditIdentities: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "orphan_audit_identities",
				Help:      "Admin identities without a profile record found by the last audit run",
			},
			[]string{"service"},
		),

		OrphanAuditRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "signup",
				Name:      "orphan_audit_runs_total",
				Help:      "Orphaned identity audit runs by result",
			},
			[]string{"service", "result"},
		),
	}
}

// RecordSubmission 记录一次提交，成功时 stage 与 reason 传空字符串
func (m *SignupMetrics) RecordSubmission(service, outcome, stage, reason string, duration time.Duration) {
	service = normalizeServiceName(service)
	if stage == "" {
		stage = "none"
	}
	if reason == "" {
		reason = "none"
	}
	m.SubmissionsTotal.WithLabelValues(service, outcome, stage, reason).Inc()
	m.SubmissionDuration.WithLabelValues(service, outcome).Observe(duration.Seconds())
}

// RecordPendingRejection 记录被进行中请求拒绝的提交
func (m *SignupMetrics) RecordPendingRejection(service string) {
	m.PendingRejections.WithLabelValues(normalizeServiceName(service)).Inc()
}

// RecordOrphanedIdentity 记录资料写入失败后遗留的身份
func (m *SignupMetrics) RecordOrphanedIdentity(service, reason string) {
	m.OrphanedIdentitiesTotal.WithLabelValues(normalizeServiceName(service), reason).Inc()
}

// RecordCompensation 记录补偿删除结果
func (m *SignupMetrics) RecordCompensation(service string, success bool) {
	m.CompensationsTotal.WithLabelValues(normalizeServiceName(service), resultLabel(success)).Inc()
}

// RecordOrphanAudit 记录一次巡检，失败时不更新孤立身份数量
func (m *SignupMetrics) RecordOrphanAudit(service string, orphans int, success bool) {
	service = normalizeServiceName(service)
	m.OrphanAuditRuns.WithLabelValues(service, resultLabel(success)).Inc()
	if success {
		m.OrphanAuditIdentities.WithLabelValues(service).Set(float64(orphans))
	}
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
