package blocklist

import (
	"context"

	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
	"github.com/dep2p/go-blocklist/pkg/types"
)

// NoOpHandler 空黑名单协调器
//
// 黑名单禁用时使用：不记录任何节点，不运行超时检查，监听器注册被接受但永不通知。
type NoOpHandler struct{}

var _ pkgif.BlocklistHandler = NoOpHandler{}

// AddNewBlockedNodes 忽略
func (NoOpHandler) AddNewBlockedNodes(context.Context, []types.BlockedNode) {}

// IsBlockedWorker 始终返回 false
func (NoOpHandler) IsBlockedWorker(context.Context, types.WorkerID) bool { return false }

// AllBlockedNodeIDs 始终返回空集合
func (NoOpHandler) AllBlockedNodeIDs(context.Context) []string { return []string{} }

// RegisterBlocklistListener 忽略
func (NoOpHandler) RegisterBlocklistListener(context.Context, pkgif.BlocklistListener) {}

// DeregisterBlocklistListener 忽略
func (NoOpHandler) DeregisterBlocklistListener(context.Context, pkgif.BlocklistListener) {}

// Close 无操作
func (NoOpHandler) Close() error { return nil }
