package service

import (
	"context"
	"time"

	authreq "edu-admin/internal/api/request/auth"
	authresp "edu-admin/internal/api/response/auth"
	"edu-admin/internal/pkg/i18n"
	"edu-admin/internal/pkg/inflight"
	"edu-admin/internal/pkg/kratos"
	"edu-admin/internal/pkg/log"
	"edu-admin/internal/pkg/metrics"
	"edu-admin/internal/pkg/notify"
	"edu-admin/internal/pkg/xerrors"
	"edu-admin/internal/repository/entity"
	"edu-admin/internal/repository/interfaces"

	"golang.org/x/text/language"
)

// DashboardPath 注册成功后的跳转地址
const DashboardPath = "/admin/dashboard"

// 失败阶段
const (
	StageValidation = "validation"
	StagePending    = "pending"
	StageIdentity   = "identity"
	StageProfile    = "profile"
)

// 非远程失败的原因标签
const (
	ReasonInvalidFields = "invalid_fields"
	ReasonInProgress    = "in_progress"
)

// 通知类型
const (
	NotificationSuccess = "success"
	NotificationError   = "error"
)

const redactedValue = "********"

// DefaultRemoteTimeout 未配置时远程调用的超时
const DefaultRemoteTimeout = 10 * time.Second

// pendingTTLMargin 进行中标记在最长处理时间之外的余量
const pendingTTLMargin = 5 * time.Second

// MinPendingTTL 进行中标记的最短有效期
//
// 一次提交最多占用两个 remoteTimeout：身份与资料写入共用一个，补偿删除再用一个。
// 标记早于提交结束过期时，同一邮箱的并发提交会被放行。
func MinPendingTTL(remoteTimeout time.Duration) time.Duration {
	if remoteTimeout <= 0 {
		remoteTimeout = DefaultRemoteTimeout
	}
	return 2*remoteTimeout + pendingTTLMargin
}

// EffectivePendingTTL 配置值低于 MinPendingTTL 时取 MinPendingTTL
func EffectivePendingTTL(configured, remoteTimeout time.Duration) time.Duration {
	return max(configured, MinPendingTTL(remoteTimeout))
}

// Outcome 一次提交的最终结果
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeRejected  Outcome = "rejected"
	OutcomeFailed    Outcome = "failed"
)

// IdentityProvider 身份服务能力
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, input kratos.CreateIdentityInput) (string, error)
	DeleteIdentity(ctx context.Context, identityID string) error
}

// EventPublisher 领域事件发布
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

var (
	_ IdentityProvider = (*kratos.Client)(nil)
	_ EventPublisher   = (*notify.Publisher)(nil)
)

// SubmitResult 提交结果，handler 据此组装响应
type SubmitResult struct {
	Outcome      Outcome
	UserID       string
	RedirectTo   string
	Notification *authresp.Notification
	FieldErrors  map[string]string
}

// Dependencies RegistrationService 的依赖与开关
type Dependencies struct {
	Identities IdentityProvider
	Profiles   interfaces.ProfileRepository
	Guard      inflight.Guard
	Events     EventPublisher
	Metrics    *metrics.SignupMetrics
	Logger     log.Logger

	// RemoteTimeout 两次远程调用共用的超时
	RemoteTimeout time.Duration
	// CompensateOnProfileFailure 资料写入失败时删除已创建的身份
	CompensateOnProfileFailure bool
}

// RegistrationService 管理员注册流程
//
// 顺序固定：校验 → 进行中标记 → 创建身份 → 写入资料。任一步失败即终止，后续步骤不再执行。
type RegistrationService struct {
	identities    IdentityProvider
	profiles      interfaces.ProfileRepository
	guard         inflight.Guard
	events        EventPublisher
	metrics       *metrics.SignupMetrics
	logger        log.Logger
	remoteTimeout time.Duration
	compensate    bool
	now           func() time.Time
}

// NewRegistrationService 创建注册服务
func NewRegistrationService(deps Dependencies) *RegistrationService {
	s := &RegistrationService{
		identities:    deps.Identities,
		profiles:      deps.Profiles,
		guard:         deps.Guard,
		events:        deps.Events,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
		remoteTimeout: deps.RemoteTimeout,
		compensate:    deps.CompensateOnProfileFailure,
		now:           time.Now,
	}
	if s.remoteTimeout <= 0 {
		s.remoteTimeout = DefaultRemoteTimeout
	}
	if s.guard == nil {
		s.guard = inflight.NewMemoryGuard(MinPendingTTL(s.remoteTimeout))
	}
	if s.metrics == nil {
		s.metrics = metrics.DefaultSignupMetrics
	}
	if s.logger == nil {
		s.logger = log.GetLogger()
	}
	s.logger = s.logger.With("component", "signup_service")
	return s
}

// Submit 处理一次注册提交
//
// 返回的 error 为 *xerrors.AppError：校验失败 CodeInvalidParams，重复提交 CodeResourceLocked，
// 远程调用失败统一为 CodeExternalServiceError。result 在任何情况下都不为 nil。
func (s *RegistrationService) Submit(ctx context.Context, form authreq.RegisterRequest) (*SubmitResult, error) {
	start := s.now()
	lang := i18n.GetLanguage(ctx)

	// 1. 本地校验
	reg, fieldErrs := ValidateRegistration(form, lang)
	if len(fieldErrs) > 0 {
		s.logger.InfoContext(ctx, "注册表单校验失败", log.Any("fields", fieldKeys(fieldErrs)))
		s.recordOutcome(OutcomeInvalid, StageValidation, ReasonInvalidFields, start)
		s.publishFailed(ctx, StageValidation, ReasonInvalidFields, NormalizeForm(form).Email, "")
		return &SubmitResult{Outcome: OutcomeInvalid, FieldErrors: fieldErrs},
			xerrors.NewFieldValidationError(fieldErrs)
	}

	// 2. 同一邮箱同时只允许一个提交
	release, ok := s.acquire(ctx, reg.Email)
	if !ok {
		s.logger.WarnContext(ctx, "同一邮箱的注册请求正在处理中", log.String("email", reg.Email))
		s.metrics.RecordPendingRejection(metrics.GetServiceName())
		s.recordOutcome(OutcomeRejected, StagePending, ReasonInProgress, start)
		s.publishFailed(ctx, StagePending, ReasonInProgress, reg.Email, "")
		return &SubmitResult{Outcome: OutcomeRejected, Notification: pendingNotification(lang)},
			xerrors.NewResourceLockedError("signup", reg.Email)
	}
	defer release()

	remoteCtx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
	defer cancel()

	// 3. 创建身份
	identityID, err := s.identities.CreateIdentity(remoteCtx, kratos.CreateIdentityInput{
		Email:    reg.Email,
		Password: reg.Password,
		FullName: reg.Name,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		return s.fail(ctx, lang, start, StageIdentity, reg, "", err), s.remoteError("kratos", StageIdentity, "", err)
	}

	// 4. 写入资料，主键为身份 ID
	profile := &entity.Profile{
		ID:          identityID,
		Email:       reg.Email,
		FullName:    reg.Name,
		PhoneNumber: reg.Phone,
		Username:    reg.Username,
		UserRole:    entity.RoleAdmin,
	}
	if err := s.profiles.Create(remoteCtx, profile); err != nil {
		s.handleOrphanedIdentity(ctx, identityID, reg, err)
		return s.fail(ctx, lang, start, StageProfile, reg, identityID, err), s.remoteError("profile_store", StageProfile, identityID, err)
	}

	s.logger.InfoContext(ctx, "管理员注册成功",
		log.String("user_id", identityID),
		log.String("username", reg.Username))
	s.recordOutcome(OutcomeSucceeded, "", "", start)
	s.publish(ctx, notify.SubjectSignupSucceeded, notify.SignupSucceeded{
		UserID:     identityID,
		Email:      reg.Email,
		Username:   reg.Username,
		Role:       entity.RoleAdmin,
		OccurredAt: s.now().UTC(),
	})

	return &SubmitResult{
		Outcome:      OutcomeSucceeded,
		UserID:       identityID,
		RedirectTo:   DashboardPath,
		Notification: successNotification(lang, reg),
	}, nil
}

// acquire Guard 本身出错时放行，只记录告警
func (s *RegistrationService) acquire(ctx context.Context, email string) (inflight.Release, bool) {
	release, ok, err := s.guard.TryAcquire(ctx, email)
	if err != nil {
		s.logger.WarnContext(ctx, "进行中标记不可用，跳过重复提交检查",
			log.String("email", email),
			log.Err(err))
		return func() {}, true
	}
	if !ok {
		return nil, false
	}
	return release, true
}

func (s *RegistrationService) fail(ctx context.Context, lang language.Tag, start time.Time, stage string, reg Registration, identityID string, err error) *SubmitResult {
	reason := reasonOf(err)
	s.logger.WarnContext(ctx, "管理员注册失败",
		log.String("stage", stage),
		log.String("reason", reason),
		log.String("email", reg.Email),
		log.Err(err))
	s.recordOutcome(OutcomeFailed, stage, reason, start)
	s.publishFailed(ctx, stage, reason, reg.Email, identityID)
	return &SubmitResult{Outcome: OutcomeFailed, Notification: failureNotification(lang)}
}

// handleOrphanedIdentity 身份已创建但资料写入失败
func (s *RegistrationService) handleOrphanedIdentity(ctx context.Context, identityID string, reg Registration, cause error) {
	reason := reasonOf(cause)
	s.logger.ErrorContext(ctx, "资料写入失败，身份已成为孤立记录",
		log.String("orphaned_identity_id", identityID),
		log.String("email", reg.Email),
		log.String("reason", reason),
		log.Err(cause))
	s.metrics.RecordOrphanedIdentity(metrics.GetServiceName(), reason)

	if !s.compensate {
		return
	}

	// 请求 context 可能已超时，补偿使用独立超时
	compCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.remoteTimeout)
	defer cancel()
	if err := s.identities.DeleteIdentity(compCtx, identityID); err != nil {
		s.logger.ErrorContext(ctx, "补偿删除身份失败",
			log.String("orphaned_identity_id", identityID),
			log.Err(err))
		s.metrics.RecordCompensation(metrics.GetServiceName(), false)
		return
	}
	s.logger.InfoContext(ctx, "已补偿删除孤立身份", log.String("identity_id", identityID))
	s.metrics.RecordCompensation(metrics.GetServiceName(), true)
}

func (s *RegistrationService) remoteError(service, stage, identityID string, cause error) *xerrors.AppError {
	appErr := xerrors.NewExternalServiceError(service, cause).
		WithService("signup_service", "Submit").
		WithMetadata("stage", stage)
	if identityID != "" {
		appErr.WithMetadata("identity_id", identityID)
	}
	if appErr.Metadata(xerrors.MetaReason) == nil {
		appErr.WithMetadata(xerrors.MetaReason, xerrors.ReasonUnknown)
	}
	return appErr
}

func (s *RegistrationService) recordOutcome(outcome Outcome, stage, reason string, start time.Time) {
	s.metrics.RecordSubmission(metrics.GetServiceName(), string(outcome), stage, reason, s.now().Sub(start))
}

func (s *RegistrationService) publishFailed(ctx context.Context, stage, reason, email, identityID string) {
	s.publish(ctx, notify.SubjectSignupFailed, notify.SignupFailed{
		Stage:      stage,
		Reason:     reason,
		Email:      email,
		IdentityID: identityID,
		OccurredAt: s.now().UTC(),
	})
}

// publish 事件发布失败不影响提交结果
func (s *RegistrationService) publish(ctx context.Context, subject string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, payload); err != nil {
		s.logger.WarnContext(ctx, "发布注册事件失败",
			log.String("subject", subject),
			log.Err(err))
	}
}

func reasonOf(err error) string {
	if reason := xerrors.ReasonOf(err); reason != "" {
		return reason
	}
	return xerrors.ReasonUnknown
}

func fieldKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	return keys
}

func successNotification(lang language.Tag, reg Registration) *authresp.Notification {
	return &authresp.Notification{
		Type:    NotificationSuccess,
		Title:   i18n.Translate(lang, i18n.KeySignupSuccessTitle),
		Message: i18n.Translate(lang, i18n.KeySignupSuccessBody),
		Values: map[string]string{
			"name":            reg.Name,
			"email":           reg.Email,
			"phone":           reg.Phone,
			"username":        reg.Username,
			"password":        redactedValue,
			"confirmPassword": redactedValue,
		},
	}
}

func failureNotification(lang language.Tag) *authresp.Notification {
	return &authresp.Notification{
		Type:    NotificationError,
		Title:   i18n.Translate(lang, i18n.KeySignupFailureTitle),
		Message: i18n.Translate(lang, i18n.KeySignupFailureBody),
	}
}

func pendingNotification(lang language.Tag) *authresp.Notification {
	return &authresp.Notification{
		Type:    NotificationError,
		Title:   i18n.Translate(lang, i18n.KeySignupFailureTitle),
		Message: i18n.Translate(lang, i18n.KeySignupPendingBody),
	}
}
