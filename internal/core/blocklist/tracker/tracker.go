// Package tracker 实现黑名单状态存储
//
// # 合并策略
//
// 同一节点的新记录与已有记录合并：
//   - 到期时间取两者较晚者，永不过期（零值）晚于任何有限时间
//   - 原因以新记录为准（新记录原因为空时保留原值）
//
// 合并结果与已有记录完全相同时视为无变化，不出现在返回值中。
// 因此重复提交同一请求、或提交到期更早且原因相同的请求都是空操作。
//
// # 线程安全
//
// Tracker 不加锁，只能在主线程上访问。
package tracker

import (
	"time"

	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
	"github.com/dep2p/go-blocklist/pkg/types"
)

// Tracker 默认黑名单状态存储
type Tracker struct {
	nodes map[string]types.BlockedNode
}

var _ pkgif.BlocklistTracker = (*Tracker)(nil)

// New 创建状态存储
func New() *Tracker {
	return &Tracker{
		nodes: make(map[string]types.BlockedNode),
	}
}

// AddNewBlockedNodes 添加或合并记录
//
// 返回新增或因合并而变化的记录（每个节点至多一条，取批内最终状态，
// 顺序为节点在批内首次发生变化的顺序）。NodeID 为空的记录被忽略。
func (t *Tracker) AddNewBlockedNodes(nodes []types.BlockedNode) []types.BlockedNode {
	var order []string
	changed := make(map[string]types.BlockedNode)

	for _, n := range nodes {
		if n.Validate() != nil {
			continue
		}
		existing, ok := t.nodes[n.NodeID]
		merged := n
		if ok {
			merged = Merge(existing, n)
			if merged.Equal(existing) {
				continue
			}
		}
		t.nodes[n.NodeID] = merged
		if _, seen := changed[n.NodeID]; !seen {
			order = append(order, n.NodeID)
		}
		changed[n.NodeID] = merged
	}

	result := make([]types.BlockedNode, 0, len(order))
	for _, id := range order {
		result = append(result, changed[id])
	}
	return result
}

// Merge 按合并策略合并已有记录与新记录
func Merge(existing, incoming types.BlockedNode) types.BlockedNode {
	merged := existing
	if incoming.ExpiresAfter(existing) {
		merged.EndTimestamp = incoming.EndTimestamp
	}
	if incoming.Cause != "" {
		merged.Cause = incoming.Cause
	}
	return merged
}

// IsBlockedNode 节点是否被阻止
//
// 记录在被 RemoveTimeoutNodes 移除之前都视为有效。
func (t *Tracker) IsBlockedNode(nodeID string) bool {
	_, ok := t.nodes[nodeID]
	return ok
}

// AllBlockedNodeIDs 返回所有被阻止节点 ID（已排序）
func (t *Tracker) AllBlockedNodeIDs() []string {
	return types.NodeIDsOf(t.AllBlockedNodes())
}

// AllBlockedNodes 返回所有被阻止节点记录（按 NodeID 排序）
func (t *Tracker) AllBlockedNodes() []types.BlockedNode {
	nodes := make([]types.BlockedNode, 0, len(t.nodes))
	for _, n := range t.nodes {
		nodes = append(nodes, n)
	}
	types.SortBlockedNodes(nodes)
	return nodes
}

// RemoveTimeoutNodes 移除 now 时刻已过期的记录（EndTimestamp <= now）
//
// 永不过期的记录不会被移除。返回值按 NodeID 排序。
func (t *Tracker) RemoveTimeoutNodes(now time.Time) []types.BlockedNode {
	var removed []types.BlockedNode
	for id, n := range t.nodes {
		if n.IsExpired(now) {
			removed = append(removed, n)
			delete(t.nodes, id)
		}
	}
	types.SortBlockedNodes(removed)
	return removed
}

// Len 返回记录数
func (t *Tracker) Len() int {
	return len(t.nodes)
}
