package blocklist

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-blocklist/internal/core/blocklist/resolver"
	"github.com/dep2p/go-blocklist/internal/core/blocklist/tracker"
	"github.com/dep2p/go-blocklist/internal/core/mainthread"
	"github.com/dep2p/go-blocklist/pkg/types"
)

// ============================================================================
//                              真实执行器集成测试
// ============================================================================

type liveFixture struct {
	mock    *clock.Mock
	exec    *mainthread.Executor
	ctx     *recordingContext
	metrics *Metrics
	handler *DefaultHandler
}

func newLiveFixture(t *testing.T) *liveFixture {
	t.Helper()

	mock := clock.NewMock()
	mock.Set(baseTime)
	exec, err := mainthread.New(mainthread.DefaultConfig(), mainthread.WithClock(mock))
	require.NoError(t, err)
	require.NoError(t, exec.Start())
	t.Cleanup(func() { _ = exec.Close() })

	f := &liveFixture{
		mock:    mock,
		exec:    exec,
		ctx:     &recordingContext{},
		metrics: newMetrics("live"),
	}
	res, err := resolver.NewCached(resolver.NewStatic(map[types.WorkerID]string{"tm-1": "H1"}).Lookup, 16)
	require.NoError(t, err)
	h, err := NewDefaultHandler(tracker.New(), f.ctx, res, testInterval, exec, WithMetrics(f.metrics))
	require.NoError(t, err)
	f.handler = h
	t.Cleanup(func() { _ = h.Close() })
	return f
}

func (f *liveFixture) run(t *testing.T, fn func(ctx context.Context)) {
	t.Helper()
	require.NoError(t, mainthread.Run(context.Background(), f.exec, fn))
}

func (f *liveFixture) ids(t *testing.T) []string {
	t.Helper()
	ids, err := mainthread.Call(context.Background(), f.exec, f.handler.AllBlockedNodeIDs)
	require.NoError(t, err)
	return ids
}

func (f *liveFixture) timeoutChecks() float64 {
	return testutil.ToFloat64(f.metrics.TimeoutChecks)
}

func TestLive_ExpiryUnblocks(t *testing.T) {
	f := newLiveFixture(t)
	l := &recordingListener{}

	f.run(t, func(ctx context.Context) {
		f.handler.RegisterBlocklistListener(ctx, l)
		f.handler.AddNewBlockedNodes(ctx, []types.BlockedNode{
			types.NewBlockedNode("H1", "c", baseTime.Add(1000*time.Millisecond)),
		})
	})
	assert.Equal(t, []string{"H1"}, f.ids(t))

	f.mock.Add(1001 * time.Millisecond)
	require.Eventually(t, func() bool { return f.timeoutChecks() >= 1 }, time.Second, 5*time.Millisecond)

	assert.Empty(t, f.ids(t))
	var unblocked [][]types.BlockedNode
	var notified int
	f.run(t, func(context.Context) {
		unblocked = f.ctx.unblocked
		notified = len(l.calls)
	})
	require.Len(t, unblocked, 1)
	assert.Equal(t, []string{"H1"}, types.NodeIDsOf(unblocked[0]))
	assert.Equal(t, 1, notified)
}

func TestLive_IsBlockedWorker(t *testing.T) {
	f := newLiveFixture(t)
	f.run(t, func(ctx context.Context) {
		f.handler.AddNewBlockedNodes(ctx, []types.BlockedNode{types.NewPermanentBlockedNode("H1", "c")})
	})

	blocked, err := mainthread.Call(context.Background(), f.exec, func(ctx context.Context) bool {
		return f.handler.IsBlockedWorker(ctx, "tm-1")
	})
	require.NoError(t, err)
	assert.True(t, blocked)

	// 未知工作进程的 panic 传播到调用方
	r := recoverPanic(func() {
		_, _ = mainthread.Call(context.Background(), f.exec, func(ctx context.Context) bool {
			return f.handler.IsBlockedWorker(ctx, "tm-unknown")
		})
	})
	err, ok := r.(error)
	require.True(t, ok)
	assert.ErrorIs(t, err, ErrUnresolvedWorker)
}

func TestLive_NoChecksAfterClose(t *testing.T) {
	f := newLiveFixture(t)

	f.mock.Add(testInterval)
	require.Eventually(t, func() bool { return f.timeoutChecks() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, f.handler.Close())
	for i := 0; i < 5; i++ {
		f.mock.Add(testInterval)
	}
	f.run(t, func(context.Context) {})
	time.Sleep(20 * time.Millisecond)
	f.run(t, func(context.Context) {})

	assert.Equal(t, float64(1), f.timeoutChecks())
}

func TestLive_RejectsOffThreadCalls(t *testing.T) {
	f := newLiveFixture(t)
	nodes := []types.BlockedNode{types.NewPermanentBlockedNode("H1", "c")}

	other, err := mainthread.New(mainthread.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, other.Start())
	defer other.Close()

	var leaked context.Context
	f.run(t, func(ctx context.Context) { leaked = ctx })

	requireNotInMain := func(fn func()) {
		t.Helper()
		err := panicErr(fn)
		assert.ErrorIs(t, err, mainthread.ErrNotInMainThread)
	}
	requireNotInMain(func() { f.handler.AddNewBlockedNodes(context.Background(), nodes) })
	requireNotInMain(func() { f.handler.AddNewBlockedNodes(leaked, nodes) })
	requireNotInMain(func() {
		_ = mainthread.Run(context.Background(), other, func(ctx context.Context) {
			f.handler.AddNewBlockedNodes(ctx, nodes)
		})
	})

	assert.Empty(t, f.ids(t))
}
