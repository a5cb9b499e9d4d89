package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"edu-admin/internal/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

// Config Redis 配置
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Client Redis 客户端封装，所有操作都记录资源指标
type Client struct {
	*redis.Client
	service string
}

// releaseScript 只删除仍由 token 持有的锁，避免误删过期后被他人重新获取的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewClient 创建 Redis 客户端并检查连通性
func NewClient(ctx context.Context, cfg Config, service string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	return Wrap(rdb, service), nil
}

// Wrap 包装已有的 go-redis 客户端
func Wrap(rdb *redis.Client, service string) *Client {
	if service == "" {
		service = metrics.GetServiceName()
	}
	return &Client{
		Client:  rdb,
		service: service,
	}
}

// AcquireLock 使用 SET NX 获取带过期时间的锁，返回是否获取成功
func (c *Client) AcquireLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	start := time.Now()
	ok, err := c.SetNX(ctx, key, token, ttl).Result()
	c.record("SETNX", err, time.Since(start))
	return ok, err
}

// ReleaseLock 释放锁，锁已过期或被他人持有时什么也不做
func (c *Client) ReleaseLock(ctx context.Context, key, token string) error {
	start := time.Now()
	err := releaseScript.Run(ctx, c.Client, []string{key}, token).Err()
	if errors.Is(err, redis.Nil) {
		err = nil
	}
	c.record("EVAL", err, time.Since(start))
	return err
}

// HealthCheck 用于就绪检查
func (c *Client) HealthCheck(ctx context.Context) error {
	start := time.Now()
	err := c.Ping(ctx).Err()
	c.record("PING", err, time.Since(start))
	return err
}

func (c *Client) record(operation string, err error, duration time.Duration) {
	metrics.DefaultResourceMetrics.RecordRedisOperation(operation, err == nil, duration, c.service)
	if err == nil {
		return
	}
	errorType := "operation_error"
	if errors.Is(err, context.DeadlineExceeded) {
		errorType = "timeout"
	}
	metrics.DefaultResourceMetrics.RecordRedisError(errorType, c.service)
}
