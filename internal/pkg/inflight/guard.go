// Package inflight 保证同一个键同一时刻只有一个请求在处理。
package inflight

import (
	"context"
	"strings"
)

// Release 释放占用，可重复调用
type Release func()

// Guard 进行中请求的互斥门
type Guard interface {
	// TryAcquire 尝试占用 key。已被占用时返回 ok=false，不阻塞等待。
	TryAcquire(ctx context.Context, key string) (release Release, ok bool, err error)
}

// NormalizeKey 统一键的大小写与空白
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
