package tasks

import (
	"context"
	"fmt"
	"time"

	"edu-admin/internal/pkg/kratos"
	"edu-admin/internal/pkg/log"
	"edu-admin/internal/pkg/metrics"
	"edu-admin/internal/repository/entity"

	"github.com/robfig/cron/v3"
)

// auditTimeout 单次巡检的最长耗时
const auditTimeout = 2 * time.Minute

// IdentityLister 按角色列出身份
type IdentityLister interface {
	ListIdentitiesByRole(ctx context.Context, role string, pageSize int) ([]kratos.Identity, error)
}

// ProfileChecker 检查资料是否存在
type ProfileChecker interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

var _ IdentityLister = (*kratos.Client)(nil)

// OrphanAuditTask 孤立身份巡检定时任务
// 找出 Kratos 中 user_role=admin 但 profiles 表没有对应记录的身份，只报告不删除
type OrphanAuditTask struct {
	identities IdentityLister
	profiles   ProfileChecker
	metrics    *metrics.SignupMetrics
	logger     log.Logger
	schedule   string
	grace      time.Duration
	now        func() time.Time
	cron       *cron.Cron
}

// NewOrphanAuditTask 创建巡检任务，schedule 为空时 Start 不做任何事
//
// 创建时间距巡检不足 grace 的身份可能仍在等待资料写入，本次巡检跳过。
func NewOrphanAuditTask(identities IdentityLister, profiles ProfileChecker, signupMetrics *metrics.SignupMetrics, logger log.Logger, schedule string, grace time.Duration) *OrphanAuditTask {
	if signupMetrics == nil {
		signupMetrics = metrics.DefaultSignupMetrics
	}
	if logger == nil {
		logger = log.GetLogger()
	}
	return &OrphanAuditTask{
		identities: identities,
		profiles:   profiles,
		metrics:    signupMetrics,
		logger:     logger,
		schedule:   schedule,
		grace:      grace,
		now:        time.Now,
	}
}

// Start 启动定时任务
func (t *OrphanAuditTask) Start() error {
	if t.schedule == "" {
		t.logger.Info("【注册巡检】未配置调度表达式，孤立身份巡检已关闭")
		return nil
	}

	// 上一次巡检未结束时跳过本次
	t.cron = cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)

	_, err := t.cron.AddFunc(t.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		if _, err := t.RunOnce(ctx); err != nil {
			t.logger.Error("【注册巡检】孤立身份巡检失败", err)
		}
	})
	if err != nil {
		t.cron = nil
		return fmt.Errorf("invalid orphan audit schedule %q: %w", t.schedule, err)
	}

	t.cron.Start()
	t.logger.Info("【注册巡检】孤立身份巡检任务已启动", log.String("schedule", t.schedule))
	return nil
}

// RunOnce 执行一次巡检，返回发现的孤立身份数量
func (t *OrphanAuditTask) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	service := metrics.GetServiceName()

	identities, err := t.identities.ListIdentitiesByRole(ctx, entity.RoleAdmin, kratos.DefaultPageSize)
	if err != nil {
		t.metrics.RecordOrphanAudit(service, 0, false)
		return 0, err
	}

	cutoff := t.now().Add(-t.grace)
	orphans, inFlight := 0, 0
	for _, identity := range identities {
		if !identity.CreatedAt.IsZero() && identity.CreatedAt.After(cutoff) {
			inFlight++
			continue
		}
		exists, err := t.profiles.ExistsByID(ctx, identity.ID)
		if err != nil {
			t.metrics.RecordOrphanAudit(service, 0, false)
			return 0, err
		}
		if exists {
			continue
		}
		orphans++
		t.logger.WarnContext(ctx, "【注册巡检】发现没有资料记录的管理员身份",
			log.String("orphaned_identity_id", identity.ID),
			log.String("email", identity.Email))
	}

	t.metrics.RecordOrphanAudit(service, orphans, true)
	t.logger.InfoContext(ctx, "【注册巡检】孤立身份巡检完成",
		log.Int("identities", len(identities)),
		log.Int("orphans", orphans),
		log.Int("skipped_recent", inFlight),
		log.Duration("duration", time.Since(start).Milliseconds()))
	return orphans, nil
}

// Stop 停止定时任务（优雅关闭）
func (t *OrphanAuditTask) Stop() {
	if t.cron != nil {
		t.logger.Info("【注册巡检】正在停止孤立身份巡检任务...")
		ctx := t.cron.Stop()
		<-ctx.Done()
		t.logger.Info("【注册巡检】孤立身份巡检任务已停止")
	}
}
