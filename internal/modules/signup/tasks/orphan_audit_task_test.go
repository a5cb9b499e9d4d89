package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"edu-admin/internal/pkg/kratos"
	"edu-admin/internal/pkg/log"
	"edu-admin/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	identities []kratos.Identity
	err        error
	role       string
}

func (f *fakeLister) ListIdentitiesByRole(_ context.Context, role string, _ int) ([]kratos.Identity, error) {
	f.role = role
	return f.identities, f.err
}

type fakeProfiles struct {
	existing map[string]bool
	err      error
}

func (f *fakeProfiles) ExistsByID(_ context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.existing[id], nil
}

func newTask(lister IdentityLister, profiles ProfileChecker, schedule string) (*OrphanAuditTask, *metrics.SignupMetrics) {
	m := metrics.NewSignupMetricsWithRegistry("test", prometheus.NewRegistry())
	return NewOrphanAuditTask(lister, profiles, m, log.NewNopLogger(), schedule, 30*time.Second), m
}

func TestOrphanAuditTask_RunOnce(t *testing.T) {
	lister := &fakeLister{identities: []kratos.Identity{
		{ID: "id-1", Email: "a@example.com", Role: "admin"},
		{ID: "id-2", Email: "b@example.com", Role: "admin"},
		{ID: "id-3", Email: "c@example.com", Role: "admin"},
	}}
	profiles := &fakeProfiles{existing: map[string]bool{"id-1": true}}
	task, m := newTask(lister, profiles, "")

	orphans, err := task.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, orphans)
	assert.Equal(t, "admin", lister.role)
	service := metrics.GetServiceName()
	assert.Equal(t, float64(2), testutil.ToFloat64(m.OrphanAuditIdentities.WithLabelValues(service)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.OrphanAuditRuns.WithLabelValues(service, "success")))
}

func TestOrphanAuditTask_SkipsRecentIdentities(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	lister := &fakeLister{identities: []kratos.Identity{
		{ID: "id-old", Role: "admin", CreatedAt: now.Add(-time.Hour)},
		{ID: "id-in-flight", Role: "admin", CreatedAt: now.Add(-5 * time.Second)},
		{ID: "id-unknown-time", Role: "admin"},
	}}
	task, m := newTask(lister, &fakeProfiles{existing: map[string]bool{}}, "")
	task.now = func() time.Time { return now }

	orphans, err := task.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, orphans, "刚创建的身份可能仍在写入资料，不计为孤立")
	assert.Equal(t, float64(2), testutil.ToFloat64(m.OrphanAuditIdentities.WithLabelValues(metrics.GetServiceName())))
}

func TestOrphanAuditTask_RunOnceErrors(t *testing.T) {
	tests := []struct {
		name     string
		lister   *fakeLister
		profiles *fakeProfiles
	}{
		{
			name:     "Kratos 列表失败",
			lister:   &fakeLister{err: errors.New("kratos unavailable")},
			profiles: &fakeProfiles{},
		},
		{
			name:     "数据库查询失败",
			lister:   &fakeLister{identities: []kratos.Identity{{ID: "id-1"}}},
			profiles: &fakeProfiles{err: errors.New("db down")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, m := newTask(tt.lister, tt.profiles, "")

			orphans, err := task.RunOnce(context.Background())

			assert.Error(t, err)
			assert.Zero(t, orphans)
			service := metrics.GetServiceName()
			assert.Equal(t, float64(1), testutil.ToFloat64(m.OrphanAuditRuns.WithLabelValues(service, "error")))
			assert.Equal(t, 0, testutil.CollectAndCount(m.OrphanAuditIdentities))
		})
	}
}

func TestOrphanAuditTask_Start(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
		running  bool
	}{
		{"未配置调度", "", false, false},
		{"合法调度", "@every 1h", false, true},
		{"六段表达式", "0 0 3 * * *", false, true},
		{"非法调度", "every hour", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, _ := newTask(&fakeLister{}, &fakeProfiles{}, tt.schedule)

			err := task.Start()
			defer task.Stop()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.running, task.cron != nil)
		})
	}
}
