package nats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// Connect 连接 NATS，断线后由客户端自动重连
func Connect(url, name string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("NATS 连接失败: %w", err)
	}
	return conn, nil
}

// Status 连接状态的最小接口，便于测试
type Status interface {
	IsConnected() bool
	IsClosed() bool
}

var _ Status = (*nats.Conn)(nil)

// HealthChecker 周期性采样 NATS 连接状态，供就绪检查读取
type HealthChecker struct {
	conn     Status
	interval time.Duration

	mu        sync.RWMutex
	isHealthy bool
	stopOnce  sync.Once
	stopCh    chan struct{}
}

// NewHealthChecker 创建健康检查器，checkInterval <= 0 时默认 10 秒
func NewHealthChecker(conn Status, checkInterval time.Duration) *HealthChecker {
	if checkInterval <= 0 {
		checkInterval = 10 * time.Second
	}

	hc := &HealthChecker{
		conn:     conn,
		interval: checkInterval,
		stopCh:   make(chan struct{}),
	}
	hc.checkHealth()
	return hc
}

// Start 阻塞运行直到 ctx 取消或 Stop 被调用
func (hc *HealthChecker) Start(ctx context.Context) {
	ticker := time.NewTicker(hc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-hc.stopCh:
			return
		case <-ticker.C:
			hc.checkHealth()
		}
	}
}

// Stop 停止健康检查，可重复调用
func (hc *HealthChecker) Stop() {
	hc.stopOnce.Do(func() { close(hc.stopCh) })
}

// IsHealthy 最近一次采样的结果
func (hc *HealthChecker) IsHealthy() bool {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.isHealthy
}

func (hc *HealthChecker) checkHealth() {
	healthy := hc.conn != nil && hc.conn.IsConnected() && !hc.conn.IsClosed()

	hc.mu.Lock()
	hc.isHealthy = healthy
	hc.mu.Unlock()
}
