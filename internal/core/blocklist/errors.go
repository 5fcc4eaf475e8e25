package blocklist

import "errors"

// 构造错误
var (
	// ErrNilTracker 未提供 Tracker
	ErrNilTracker = errors.New("blocklist: nil tracker")

	// ErrNilContext 未提供 BlocklistContext
	ErrNilContext = errors.New("blocklist: nil blocklist context")

	// ErrNilRetriever 未提供 NodeIDRetriever
	ErrNilRetriever = errors.New("blocklist: nil node ID retriever")

	// ErrNilExecutor 未提供主线程执行器
	ErrNilExecutor = errors.New("blocklist: nil main thread executor")

	// ErrInvalidInterval 超时检查间隔无效
	ErrInvalidInterval = errors.New("blocklist: timeout check interval must be positive")
)

// 前置条件违背（以 panic 形式抛出）
var (
	// ErrUnresolvedWorker 工作进程无法解析为节点
	ErrUnresolvedWorker = errors.New("blocklist: worker cannot be resolved to a node")

	// ErrNilListener 监听器为 nil
	ErrNilListener = errors.New("blocklist: nil listener")
)
