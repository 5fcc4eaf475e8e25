package blocklist

import (
	"context"
	"sync/atomic"
	"time"

	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
)

// repeatingTask 链式单次调度的周期任务
//
// 每次执行结束后才以 interval 为延迟重新调度下一次，两次执行不会重叠，
// 慢执行之后自动顺延。任意时刻最多只有一个待执行的 ScheduledTask。
type repeatingTask struct {
	executor pkgif.MainThreadExecutor
	interval time.Duration
	run      func(ctx context.Context)

	pending atomic.Pointer[pendingTask]
	stopped atomic.Bool
}

type pendingTask struct {
	task pkgif.ScheduledTask
}

func newRepeatingTask(executor pkgif.MainThreadExecutor, interval time.Duration, run func(ctx context.Context)) *repeatingTask {
	return &repeatingTask{
		executor: executor,
		interval: interval,
		run:      run,
	}
}

// arm 调度下一次执行
//
// 发布新句柄后再检查一次停止标记，与 stop 并发时由本方取消新句柄。
func (r *repeatingTask) arm() {
	if r.stopped.Load() {
		return
	}
	task := r.executor.Schedule(r.interval, r.fire)
	r.pending.Store(&pendingTask{task: task})
	if r.stopped.Load() {
		task.Cancel()
	}
}

// fire 在主线程上执行并重新调度
func (r *repeatingTask) fire(ctx context.Context) {
	if r.stopped.Load() {
		return
	}
	r.run(ctx)
	r.arm()
}

// stop 停止任务并取消待执行的句柄
//
// 幂等，可在任意 goroutine 调用，不等待正在执行的任务。
func (r *repeatingTask) stop() bool {
	if !r.stopped.CompareAndSwap(false, true) {
		return false
	}
	if p := r.pending.Load(); p != nil {
		p.task.Cancel()
	}
	return true
}

// isStopped 是否已停止
func (r *repeatingTask) isStopped() bool {
	return r.stopped.Load()
}
