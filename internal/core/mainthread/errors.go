package mainthread

import "errors"

var (
	// ErrNotInMainThread 调用方不在主线程上
	ErrNotInMainThread = errors.New("mainthread: not running in main thread")

	// ErrExecutorClosed 执行器已关闭
	ErrExecutorClosed = errors.New("mainthread: executor closed")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("mainthread: invalid config")
)
