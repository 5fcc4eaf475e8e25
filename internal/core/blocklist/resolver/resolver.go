// Package resolver 提供工作进程到物理节点的解析器
//
//   - Static: 固定映射，适用于测试与静态部署
//   - Cached: 在较慢的查询函数前加一层 LRU 缓存
//
// 解析失败时返回空串，由 BlocklistHandler 视为契约违背。
package resolver

import (
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
	"github.com/dep2p/go-blocklist/pkg/lib/log"
	"github.com/dep2p/go-blocklist/pkg/types"
)

var logger = log.Logger("core/blocklist/resolver")

// ErrUnknownWorker 工作进程未知
var ErrUnknownWorker = errors.New("resolver: unknown worker")

// DefaultCacheSize 默认缓存容量
const DefaultCacheSize = 1024

// ============================================================================
//                              Static
// ============================================================================

// Static 固定映射解析器
//
// 可并发使用。
type Static struct {
	mu    sync.RWMutex
	nodes map[types.WorkerID]string
}

var _ pkgif.NodeIDRetriever = (*Static)(nil)

// NewStatic 创建固定映射解析器
func NewStatic(mapping map[types.WorkerID]string) *Static {
	nodes := make(map[types.WorkerID]string, len(mapping))
	for w, n := range mapping {
		nodes[w] = n
	}
	return &Static{nodes: nodes}
}

// Set 设置工作进程所在节点
func (s *Static) Set(worker types.WorkerID, nodeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes[worker] = nodeID
}

// Remove 移除工作进程
func (s *Static) Remove(worker types.WorkerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, worker)
}

// Lookup 查询工作进程所在节点
func (s *Static) Lookup(worker types.WorkerID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[worker]
	if !ok {
		return "", ErrUnknownWorker
	}
	return n, nil
}

// NodeIDOf 实现 NodeIDRetriever
func (s *Static) NodeIDOf(worker types.WorkerID) string {
	n, _ := s.Lookup(worker)
	return n
}

// ============================================================================
//                              Cached
// ============================================================================

// LookupFunc 查询工作进程所在节点
type LookupFunc func(worker types.WorkerID) (string, error)

// Cached 带 LRU 缓存的解析器
//
// 只缓存成功的查询结果。可并发使用。
type Cached struct {
	lookup LookupFunc
	cache  *lru.Cache[types.WorkerID, string]
}

var _ pkgif.NodeIDRetriever = (*Cached)(nil)

// NewCached 创建带缓存的解析器
//
// size <= 0 时使用 DefaultCacheSize。
func NewCached(lookup LookupFunc, size int) (*Cached, error) {
	if lookup == nil {
		return nil, errors.New("resolver: nil lookup func")
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[types.WorkerID, string](size)
	if err != nil {
		return nil, err
	}
	return &Cached{lookup: lookup, cache: cache}, nil
}

// NodeIDOf 实现 NodeIDRetriever
func (c *Cached) NodeIDOf(worker types.WorkerID) string {
	if worker.IsEmpty() {
		return ""
	}
	if n, ok := c.cache.Get(worker); ok {
		return n
	}

	n, err := c.lookup(worker)
	if err != nil || n == "" {
		logger.Warn("工作进程解析失败", "worker", worker, "error", err)
		return ""
	}
	c.cache.Add(worker, n)
	return n
}

// Forget 丢弃工作进程的缓存映射（如工作进程断开时）
func (c *Cached) Forget(worker types.WorkerID) {
	c.cache.Remove(worker)
}

// Len 返回缓存条目数
func (c *Cached) Len() int {
	return c.cache.Len()
}
