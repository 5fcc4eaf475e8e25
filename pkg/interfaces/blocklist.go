package interfaces

import (
	"context"
	"time"

	"github.com/dep2p/go-blocklist/pkg/types"
)

// ============================================================================
//                              BlocklistHandler - 黑名单协调器
// ============================================================================

// BlocklistHandler 黑名单协调器
//
// 持有黑名单的权威视图：接收新的阻止请求，定期清理过期记录，
// 驱动资源阻止/解除，并向监听器广播变更。
//
// 除 Close 外，所有方法必须在主线程上调用，ctx 必须是主线程任务的 context。
type BlocklistHandler interface {
	// AddNewBlockedNodes 添加（或合并）被阻止节点
	//
	// 只有 Tracker 报告实际变化时才通知监听器并阻止资源。
	AddNewBlockedNodes(ctx context.Context, nodes []types.BlockedNode)

	// IsBlockedWorker 工作进程所在节点是否被阻止
	//
	// 工作进程无法解析为节点时 panic。
	IsBlockedWorker(ctx context.Context, worker types.WorkerID) bool

	// AllBlockedNodeIDs 返回当前所有被阻止节点的 ID（已排序）
	AllBlockedNodeIDs(ctx context.Context) []string

	// RegisterBlocklistListener 注册监听器
	//
	// 重复注册为空操作。首次注册且已有被阻止节点时，
	// 立即仅向该监听器补发一次完整集合。
	RegisterBlocklistListener(ctx context.Context, listener BlocklistListener)

	// DeregisterBlocklistListener 注销监听器，未注册时为空操作
	DeregisterBlocklistListener(ctx context.Context, listener BlocklistListener)

	// Close 取消待执行的超时检查
	//
	// 可在任意 goroutine 调用，幂等。
	Close() error
}

// ============================================================================
//                              协作者接口
// ============================================================================

// BlocklistTracker 黑名单状态存储
//
// 保存被阻止节点记录，负责合并语义。只在主线程上访问。
type BlocklistTracker interface {
	// AddNewBlockedNodes 添加或合并记录，返回新增或因合并而变化的记录
	AddNewBlockedNodes(nodes []types.BlockedNode) []types.BlockedNode

	// IsBlockedNode 节点是否被阻止
	IsBlockedNode(nodeID string) bool

	// AllBlockedNodeIDs 返回所有被阻止节点 ID
	AllBlockedNodeIDs() []string

	// AllBlockedNodes 返回所有被阻止节点记录
	AllBlockedNodes() []types.BlockedNode

	// RemoveTimeoutNodes 移除 now 时刻已过期的记录并返回它们
	RemoveTimeoutNodes(now time.Time) []types.BlockedNode
}

// BlocklistContext 资源阻止执行者
//
// 让节点对调度不可用或重新可用。返回值不被协调器使用。
type BlocklistContext interface {
	// BlockResources 阻止节点上的资源
	BlockResources(nodes []types.BlockedNode)

	// UnblockResources 解除节点上资源的阻止
	UnblockResources(nodes []types.BlockedNode)
}

// BlocklistListener 黑名单监听器
//
// 只接收新增/合并事件，不接收过期事件。实现必须是可比较类型（通常为指针）。
type BlocklistListener interface {
	// NotifyNewBlockedNodes 通知新增或合并的被阻止节点，nodes 非空
	NotifyNewBlockedNodes(nodes []types.BlockedNode)
}

// NodeIDRetriever 工作进程到物理节点的解析器
//
// 对合法输入必须返回非空节点 ID；返回空串是契约违背。
type NodeIDRetriever interface {
	NodeIDOf(worker types.WorkerID) string
}

// NodeIDRetrieverFunc 函数形式的 NodeIDRetriever
type NodeIDRetrieverFunc func(worker types.WorkerID) string

// NodeIDOf 实现 NodeIDRetriever
func (f NodeIDRetrieverFunc) NodeIDOf(worker types.WorkerID) string {
	return f(worker)
}

// BlocklistListenerFunc 是 BlocklistListener 的适配器
//
// 函数值不可比较，因此以指针形式注册：
//
//	l := &interfaces.BlocklistListenerFunc{Fn: func(nodes []types.BlockedNode) { ... }}
type BlocklistListenerFunc struct {
	Fn func(nodes []types.BlockedNode)
}

// NotifyNewBlockedNodes 实现 BlocklistListener
func (l *BlocklistListenerFunc) NotifyNewBlockedNodes(nodes []types.BlockedNode) {
	l.Fn(nodes)
}
