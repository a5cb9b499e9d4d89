package inflight

import (
	"context"
	"sync"
	"time"

	"edu-admin/internal/pkg/log"
	"edu-admin/internal/pkg/redis"

	"github.com/google/uuid"
)

// Locker RedisGuard 依赖的锁操作
type Locker interface {
	AcquireLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, token string) error
}

var _ Locker = (*redis.Client)(nil)

// RedisGuard 基于 Redis SET NX 的 Guard，多实例部署时共享
type RedisGuard struct {
	locker Locker
	prefix string
	ttl    time.Duration
	logger log.Logger
}

// NewRedisGuard 创建 Redis Guard，prefix 如 "signup:pending:"
func NewRedisGuard(locker Locker, prefix string, ttl time.Duration, logger log.Logger) *RedisGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if logger == nil {
		logger = log.GetLogger()
	}
	return &RedisGuard{
		locker: locker,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With("component", "inflight_guard"),
	}
}

// TryAcquire 实现 Guard
func (g *RedisGuard) TryAcquire(ctx context.Context, key string) (Release, bool, error) {
	redisKey := g.prefix + NormalizeKey(key)
	token := uuid.NewString()

	ok, err := g.locker.AcquireLock(ctx, redisKey, token, g.ttl)
	if err != nil || !ok {
		return nil, false, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// 请求 context 可能已取消，释放使用独立的短超时
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
			defer cancel()
			if err := g.locker.ReleaseLock(releaseCtx, redisKey, token); err != nil {
				g.logger.WarnContext(ctx, "释放进行中标记失败，等待过期",
					log.String("key", redisKey),
					log.Any("error", err))
			}
		})
	}, true, nil
}
