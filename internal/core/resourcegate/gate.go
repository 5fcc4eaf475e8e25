package resourcegate

import (
	"sort"
	"sync"
	"sync/atomic"

	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
	"github.com/dep2p/go-blocklist/pkg/lib/log"
	"github.com/dep2p/go-blocklist/pkg/types"
)

var logger = log.Logger("core/resourcegate")

// Hook 阻止/解除后的回调，在主线程上调用
type Hook func(nodes []types.BlockedNode)

// Gate 资源放置门控器
type Gate struct {
	mu      sync.RWMutex
	blocked map[string]types.BlockedNode

	retriever pkgif.NodeIDRetriever
	onBlock   Hook
	onUnblock Hook

	// 统计
	interceptedPlacements int64
	blockCalls            int64
	unblockCalls          int64
}

var _ pkgif.BlocklistContext = (*Gate)(nil)

// Option 门控器选项
type Option func(*Gate)

// WithRetriever 设置工作进程解析器，AllowWorker 依赖它
func WithRetriever(r pkgif.NodeIDRetriever) Option {
	return func(g *Gate) { g.retriever = r }
}

// WithBlockHook 设置阻止回调（如释放节点上的空闲资源）
func WithBlockHook(h Hook) Option {
	return func(g *Gate) { g.onBlock = h }
}

// WithUnblockHook 设置解除回调
func WithUnblockHook(h Hook) Option {
	return func(g *Gate) { g.onUnblock = h }
}

// New 创建门控器
func New(opts ...Option) *Gate {
	g := &Gate{
		blocked: make(map[string]types.BlockedNode),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ============================================================================
//                              BlocklistContext 实现
// ============================================================================

// BlockResources 阻止节点上的资源放置
func (g *Gate) BlockResources(nodes []types.BlockedNode) {
	g.mu.Lock()
	for _, n := range nodes {
		g.blocked[n.NodeID] = n
	}
	g.mu.Unlock()

	atomic.AddInt64(&g.blockCalls, 1)
	logger.Debug("阻止节点资源", "nodes", types.NodeIDsOf(nodes))

	if g.onBlock != nil {
		g.onBlock(nodes)
	}
}

// UnblockResources 解除节点上资源放置的阻止
func (g *Gate) UnblockResources(nodes []types.BlockedNode) {
	g.mu.Lock()
	for _, n := range nodes {
		delete(g.blocked, n.NodeID)
	}
	g.mu.Unlock()

	atomic.AddInt64(&g.unblockCalls, 1)
	logger.Debug("解除节点资源阻止", "nodes", types.NodeIDsOf(nodes))

	if g.onUnblock != nil {
		g.onUnblock(nodes)
	}
}

// ============================================================================
//                              放置查询
// ============================================================================

// AllowPlacement 是否允许在节点上放置新任务
// 返回 true 表示允许，false 表示拒绝
func (g *Gate) AllowPlacement(nodeID string) bool {
	g.mu.RLock()
	_, blocked := g.blocked[nodeID]
	g.mu.RUnlock()

	if blocked {
		atomic.AddInt64(&g.interceptedPlacements, 1)
		return false
	}
	return true
}

// AllowWorker 是否允许向工作进程放置新任务
//
// 未设置解析器或无法解析时放行，由调度器的其他检查兜底。
func (g *Gate) AllowWorker(worker types.WorkerID) bool {
	if g.retriever == nil {
		return true
	}
	nodeID := g.retriever.NodeIDOf(worker)
	if nodeID == "" {
		return true
	}
	return g.AllowPlacement(nodeID)
}

// IsBlocked 节点是否被阻止（不计入拦截统计）
func (g *Gate) IsBlocked(nodeID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, blocked := g.blocked[nodeID]
	return blocked
}

// BlockedNodes 返回所有被阻止的节点 ID（已排序，用于调试）
func (g *Gate) BlockedNodes() []string {
	g.mu.RLock()
	ids := make([]string, 0, len(g.blocked))
	for id := range g.blocked {
		ids = append(ids, id)
	}
	g.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Clear 清空所有阻止记录
func (g *Gate) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.blocked = make(map[string]types.BlockedNode)
}

// ============================================================================
//                              统计
// ============================================================================

// Stats 门控统计
type Stats struct {
	BlockedNodes          int
	InterceptedPlacements int64
	BlockCalls            int64
	UnblockCalls          int64
}

// Stats 返回统计信息
func (g *Gate) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return Stats{
		BlockedNodes:          len(g.blocked),
		InterceptedPlacements: atomic.LoadInt64(&g.interceptedPlacements),
		BlockCalls:            atomic.LoadInt64(&g.blockCalls),
		UnblockCalls:          atomic.LoadInt64(&g.unblockCalls),
	}
}
