package nats

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeStatus struct {
	connected atomic.Bool
}

func (f *fakeStatus) IsConnected() bool { return f.connected.Load() }
func (f *fakeStatus) IsClosed() bool    { return false }

func TestHealthCheckerTracksConnection(t *testing.T) {
	status := &fakeStatus{}
	status.connected.Store(true)

	hc := NewHealthChecker(status, 5*time.Millisecond)
	assert.True(t, hc.IsHealthy())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hc.Start(ctx)

	status.connected.Store(false)
	assert.Eventually(t, func() bool { return !hc.IsHealthy() }, time.Second, 5*time.Millisecond)

	hc.Stop()
	hc.Stop()
}

func TestHealthCheckerNilConn(t *testing.T) {
	assert.False(t, NewHealthChecker(nil, time.Second).IsHealthy())
}
