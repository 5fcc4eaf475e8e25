package resourcegate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-blocklist/internal/core/blocklist/resolver"
	"github.com/dep2p/go-blocklist/pkg/types"
)

func blocked(ids ...string) []types.BlockedNode {
	nodes := make([]types.BlockedNode, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, types.NewBlockedNode(id, "test", time.Unix(100, 0)))
	}
	return nodes
}

// ============================================================================
//                              Gate 测试
// ============================================================================

func TestGate_New(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.blocked)
	assert.Empty(t, g.BlockedNodes())
}

func TestGate_BlockResources(t *testing.T) {
	g := New()

	// 初始时应该允许
	assert.True(t, g.AllowPlacement("host-a"))

	g.BlockResources(blocked("host-a", "host-b"))
	assert.False(t, g.AllowPlacement("host-a"))
	assert.False(t, g.AllowPlacement("host-b"))

	// 其他节点不受影响
	assert.True(t, g.AllowPlacement("host-c"))
	assert.Equal(t, []string{"host-a", "host-b"}, g.BlockedNodes())
}

func TestGate_UnblockResources(t *testing.T) {
	g := New()

	g.BlockResources(blocked("host-a", "host-b"))
	g.UnblockResources(blocked("host-a"))

	assert.True(t, g.AllowPlacement("host-a"))
	assert.False(t, g.AllowPlacement("host-b"))
	assert.False(t, g.IsBlocked("host-a"))
	assert.True(t, g.IsBlocked("host-b"))
}

func TestGate_AllowWorker(t *testing.T) {
	r := resolver.NewStatic(map[types.WorkerID]string{
		"tm-1": "host-a",
		"tm-2": "host-a",
		"tm-3": "host-b",
	})
	g := New(WithRetriever(r))
	g.BlockResources(blocked("host-a"))

	assert.False(t, g.AllowWorker("tm-1"))
	assert.False(t, g.AllowWorker("tm-2"), "同一节点上的所有工作进程都被阻止")
	assert.True(t, g.AllowWorker("tm-3"))
	assert.True(t, g.AllowWorker("tm-unknown"), "无法解析时放行")

	assert.True(t, New().AllowWorker("tm-1"), "无解析器时放行")
}

func TestGate_Hooks(t *testing.T) {
	var gotBlock, gotUnblock []string
	g := New(
		WithBlockHook(func(nodes []types.BlockedNode) { gotBlock = types.NodeIDsOf(nodes) }),
		WithUnblockHook(func(nodes []types.BlockedNode) { gotUnblock = types.NodeIDsOf(nodes) }),
	)

	g.BlockResources(blocked("host-a"))
	g.UnblockResources(blocked("host-a"))

	assert.Equal(t, []string{"host-a"}, gotBlock)
	assert.Equal(t, []string{"host-a"}, gotUnblock)
}

func TestGate_Stats(t *testing.T) {
	g := New()
	g.BlockResources(blocked("host-a"))
	g.AllowPlacement("host-a")
	g.AllowPlacement("host-a")
	g.AllowPlacement("host-b")
	g.IsBlocked("host-a")

	stats := g.Stats()
	assert.Equal(t, 1, stats.BlockedNodes)
	assert.Equal(t, int64(2), stats.InterceptedPlacements)
	assert.Equal(t, int64(1), stats.BlockCalls)
	assert.Equal(t, int64(0), stats.UnblockCalls)
}

func TestGate_Clear(t *testing.T) {
	g := New()
	g.BlockResources(blocked("host-a"))
	g.Clear()
	assert.True(t, g.AllowPlacement("host-a"))
}

func TestGate_ConcurrentPlacement(t *testing.T) {
	g := New()
	g.BlockResources(blocked("host-a"))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.AllowPlacement("host-a")
				g.BlockedNodes()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1600), g.Stats().InterceptedPlacements)
}
