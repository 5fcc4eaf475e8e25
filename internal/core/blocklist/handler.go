package blocklist

import (
	"context"
	"fmt"
	"slices"
	"time"

	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
	"github.com/dep2p/go-blocklist/pkg/lib/log"
	"github.com/dep2p/go-blocklist/pkg/types"
)

var logger = log.Logger("core/blocklist")

// ============================================================================
//                              DefaultHandler 结构体
// ============================================================================

// DefaultHandler 默认黑名单协调器
type DefaultHandler struct {
	tracker   pkgif.BlocklistTracker
	context   pkgif.BlocklistContext
	retriever pkgif.NodeIDRetriever
	executor  pkgif.MainThreadExecutor

	listeners    listenerRegistry
	timeoutCheck *repeatingTask
	metrics      *Metrics
}

var _ pkgif.BlocklistHandler = (*DefaultHandler)(nil)

// Option 协调器选项
type Option func(*DefaultHandler)

// WithMetrics 设置指标
func WithMetrics(m *Metrics) Option {
	return func(h *DefaultHandler) {
		if m != nil {
			h.metrics = m
		}
	}
}

// NewDefaultHandler 创建协调器
//
// 所有协作者都是必需的。创建后立即调度第一次超时检查。
func NewDefaultHandler(
	tracker pkgif.BlocklistTracker,
	blocklistContext pkgif.BlocklistContext,
	retriever pkgif.NodeIDRetriever,
	timeoutCheckInterval time.Duration,
	executor pkgif.MainThreadExecutor,
	opts ...Option,
) (*DefaultHandler, error) {
	switch {
	case tracker == nil:
		return nil, ErrNilTracker
	case blocklistContext == nil:
		return nil, ErrNilContext
	case retriever == nil:
		return nil, ErrNilRetriever
	case executor == nil:
		return nil, ErrNilExecutor
	case timeoutCheckInterval <= 0:
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, timeoutCheckInterval)
	}

	h := &DefaultHandler{
		tracker:   tracker,
		context:   blocklistContext,
		retriever: retriever,
		executor:  executor,
		metrics:   newMetrics(""),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.timeoutCheck = newRepeatingTask(executor, timeoutCheckInterval, h.removeTimeoutNodes)
	h.timeoutCheck.arm()
	return h, nil
}

// ============================================================================
//                              BlocklistHandler 实现
// ============================================================================

// AddNewBlockedNodes 添加（或合并）被阻止节点
//
// 所有监听器收到同一批记录，监听器不得修改它。
func (h *DefaultHandler) AddNewBlockedNodes(ctx context.Context, nodes []types.BlockedNode) {
	h.executor.AssertRunningInMainThread(ctx)

	changed := h.tracker.AddNewBlockedNodes(nodes)
	if len(changed) == 0 {
		return
	}

	all := h.tracker.AllBlockedNodes()
	if logger.DebugEnabled() {
		logger.Debug("新增/合并被阻止节点",
			"count", len(changed),
			"details", changed,
			"total", len(all),
			"blocked", all)
	} else {
		logger.Info("新增/合并被阻止节点", "count", len(changed), "total", len(all))
	}
	h.metrics.NodesBlocked.Add(float64(len(changed)))
	h.metrics.BlockedNodes.Set(float64(len(all)))

	h.listeners.notify(changed)
	h.context.BlockResources(changed)
}

// IsBlockedWorker 工作进程所在节点是否被阻止
func (h *DefaultHandler) IsBlockedWorker(ctx context.Context, worker types.WorkerID) bool {
	h.executor.AssertRunningInMainThread(ctx)

	nodeID := h.retriever.NodeIDOf(worker)
	if nodeID == "" {
		panic(fmt.Errorf("%w: %q", ErrUnresolvedWorker, worker))
	}
	return h.tracker.IsBlockedNode(nodeID)
}

// AllBlockedNodeIDs 返回当前所有被阻止节点的 ID（已排序）
func (h *DefaultHandler) AllBlockedNodeIDs(ctx context.Context) []string {
	h.executor.AssertRunningInMainThread(ctx)

	ids := slices.Clone(h.tracker.AllBlockedNodeIDs())
	slices.Sort(ids)
	return ids
}

// RegisterBlocklistListener 注册监听器
//
// 首次注册且已有被阻止节点时，仅向该监听器补发完整集合，不触发资源阻止。
func (h *DefaultHandler) RegisterBlocklistListener(ctx context.Context, listener pkgif.BlocklistListener) {
	h.executor.AssertRunningInMainThread(ctx)
	if listener == nil {
		panic(ErrNilListener)
	}

	if !h.listeners.add(listener) {
		return
	}
	h.metrics.Listeners.Set(float64(h.listeners.len()))

	if all := h.tracker.AllBlockedNodes(); len(all) > 0 {
		h.metrics.CatchUpNotifications.Inc()
		listener.NotifyNewBlockedNodes(all)
	}
}

// DeregisterBlocklistListener 注销监听器
func (h *DefaultHandler) DeregisterBlocklistListener(ctx context.Context, listener pkgif.BlocklistListener) {
	h.executor.AssertRunningInMainThread(ctx)
	if listener == nil {
		panic(ErrNilListener)
	}

	if h.listeners.remove(listener) {
		h.metrics.Listeners.Set(float64(h.listeners.len()))
	}
}

// Close 取消待执行的超时检查（幂等）
func (h *DefaultHandler) Close() error {
	if h.timeoutCheck.stop() {
		logger.Debug("黑名单超时检查已停止")
	}
	return nil
}

// ============================================================================
//                              超时检查
// ============================================================================

// removeTimeoutNodes 移除已过期的被阻止节点并解除资源阻止
//
// 过期不通知监听器。
func (h *DefaultHandler) removeTimeoutNodes(ctx context.Context) {
	h.executor.AssertRunningInMainThread(ctx)

	removed := h.tracker.RemoveTimeoutNodes(h.executor.Now())
	h.metrics.TimeoutChecks.Inc()
	if len(removed) == 0 {
		return
	}

	all := h.tracker.AllBlockedNodes()
	if logger.DebugEnabled() {
		logger.Debug("移除超时被阻止节点",
			"count", len(removed),
			"details", removed,
			"total", len(all),
			"blocked", all)
	} else {
		logger.Info("移除超时被阻止节点", "count", len(removed), "total", len(all))
	}
	h.metrics.NodesUnblocked.Add(float64(len(removed)))
	h.metrics.BlockedNodes.Set(float64(len(all)))

	h.context.UnblockResources(removed)
}
