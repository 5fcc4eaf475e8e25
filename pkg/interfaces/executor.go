package interfaces

import (
	"context"
	"time"
)

// MainThreadExecutor 主线程执行器
//
// 所有任务在同一个 goroutine 上依次执行。执行器为每个任务注入一个
// 只在该任务执行期间有效的 context，AssertRunningInMainThread 据此
// 判断调用方是否位于主线程。
type MainThreadExecutor interface {
	// Execute 将任务投递到主线程执行（不等待完成）
	Execute(fn func(ctx context.Context)) error

	// Schedule 在 delay 之后将任务投递到主线程执行
	//
	// 可在任意 goroutine 调用。返回的句柄用于取消尚未执行的任务。
	Schedule(delay time.Duration, fn func(ctx context.Context)) ScheduledTask

	// AssertRunningInMainThread 断言 ctx 属于当前正在主线程上执行的任务
	//
	// 断言失败时 panic，属于编程错误。
	AssertRunningInMainThread(ctx context.Context)

	// Now 返回执行器时钟的当前时间
	Now() time.Time
}

// ScheduledTask 延迟任务句柄
type ScheduledTask interface {
	// Cancel 取消任务
	//
	// 幂等，不等待正在执行的任务结束。
	// 返回 true 表示本次调用阻止了任务执行。
	Cancel() bool

	// Done 任务是否已执行或已取消
	Done() bool
}
