package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// 注册流程事件主题
const (
	SubjectSignupSucceeded = "admin.signup.succeeded"
	SubjectSignupFailed    = "admin.signup.failed"
)

// SignupSucceeded 注册成功事件
type SignupSucceeded struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SignupFailed 注册失败事件，只携带失败阶段与原因
type SignupFailed struct {
	Stage      string    `json:"stage"`
	Reason     string    `json:"reason"`
	Email      string    `json:"email"`
	IdentityID string    `json:"identity_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Conn Publisher 依赖的 NATS 连接能力
type Conn interface {
	Publish(subject string, data []byte) error
}

var _ Conn = (*nats.Conn)(nil)

// Publisher 事件发布器，连接为空时静默降级
type Publisher struct {
	mu   sync.RWMutex
	conn Conn
}

// NewPublisher 创建事件发布器，conn 可以为 nil
func NewPublisher(conn Conn) *Publisher {
	return &Publisher{conn: conn}
}

// SetConn 替换连接（由 main 在连接建立后提供）
func (p *Publisher) SetConn(conn Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn = conn
}

// Publish 序列化并发布事件
func (p *Publisher) Publish(ctx context.Context, subject string, payload interface{}) error {
	p.mu.RLock()
	conn := p.conn
	p.mu.RUnlock()
	if conn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event failed: %w", subject, err)
	}
	return conn.Publish(subject, data)
}
