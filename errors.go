package blocklist

import "errors"

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 服务生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotStarted 服务未启动
	ErrNotStarted = errors.New("blocklist service not started")

	// ErrAlreadyStarted 服务已启动
	ErrAlreadyStarted = errors.New("blocklist service already started")

	// ErrServiceClosed 服务已关闭
	ErrServiceClosed = errors.New("blocklist service closed")

	// ────────────────────────────────────────────────────────────────────────
	// 配置错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNoRetriever 未配置工作进程到节点的解析方式
	ErrNoRetriever = errors.New("no node id retriever configured")

	// ErrInvalidOption 无效选项
	ErrInvalidOption = errors.New("invalid option")
)
