package types

import (
	"fmt"
	"sort"
	"time"
)

// ============================================================================
//                              BlockedNode - 被阻止节点
// ============================================================================

// BlockedNode 被阻止节点记录
//
// 一条记录对应一个物理节点（主机）。同一个 NodeID 在 Tracker 中
// 任意时刻最多存在一条记录，重复的阻止请求会合并到已有记录中。
type BlockedNode struct {
	// NodeID 物理节点标识，在该节点上的进程重启后保持不变
	NodeID string `json:"node_id"`

	// Cause 阻止原因，仅用于诊断
	Cause string `json:"cause,omitempty"`

	// EndTimestamp 阻止到期时间
	//
	// 零值表示永不自动过期。
	EndTimestamp time.Time `json:"end_timestamp,omitempty"`
}

// NewBlockedNode 创建被阻止节点记录
func NewBlockedNode(nodeID, cause string, endTimestamp time.Time) BlockedNode {
	return BlockedNode{
		NodeID:       nodeID,
		Cause:        cause,
		EndTimestamp: endTimestamp,
	}
}

// NewPermanentBlockedNode 创建永不过期的被阻止节点记录
func NewPermanentBlockedNode(nodeID, cause string) BlockedNode {
	return BlockedNode{NodeID: nodeID, Cause: cause}
}

// NeverExpires 是否永不自动过期
func (n BlockedNode) NeverExpires() bool {
	return n.EndTimestamp.IsZero()
}

// IsExpired 在 now 时刻是否已过期
//
// EndTimestamp <= now 时视为过期；永不过期的记录始终返回 false。
func (n BlockedNode) IsExpired(now time.Time) bool {
	if n.NeverExpires() {
		return false
	}
	return !n.EndTimestamp.After(now)
}

// ExpiresAfter 本记录的到期时间是否晚于 other
//
// 永不过期晚于任何有限时间；两者都永不过期时返回 false。
func (n BlockedNode) ExpiresAfter(other BlockedNode) bool {
	switch {
	case n.NeverExpires():
		return !other.NeverExpires()
	case other.NeverExpires():
		return false
	default:
		return n.EndTimestamp.After(other.EndTimestamp)
	}
}

// Equal 两条记录是否完全相同
func (n BlockedNode) Equal(other BlockedNode) bool {
	return n.NodeID == other.NodeID &&
		n.Cause == other.Cause &&
		n.EndTimestamp.Equal(other.EndTimestamp)
}

// String 返回字符串表示
func (n BlockedNode) String() string {
	end := "never"
	if !n.NeverExpires() {
		end = n.EndTimestamp.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("BlockedNode{nodeID=%s, cause=%q, endTimestamp=%s}", n.NodeID, n.Cause, end)
}

// ============================================================================
//                              集合辅助函数
// ============================================================================

// NodeIDsOf 返回记录集合中的节点 ID（保持输入顺序）
func NodeIDsOf(nodes []BlockedNode) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.NodeID)
	}
	return ids
}

// SortBlockedNodes 按 NodeID 原地排序
func SortBlockedNodes(nodes []BlockedNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].NodeID < nodes[j].NodeID
	})
}
