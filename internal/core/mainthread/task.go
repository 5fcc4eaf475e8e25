package mainthread

import (
	"sync/atomic"

	"github.com/benbjohnson/clock"

	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
)

// 延迟任务状态
const (
	stateArmed int32 = iota
	stateFired
	stateCancelled
)

// scheduledTask 延迟任务句柄
//
// 状态只会从 armed 单向变为 fired 或 cancelled。
type scheduledTask struct {
	state atomic.Int32
	timer *clock.Timer
}

var _ pkgif.ScheduledTask = (*scheduledTask)(nil)

// Cancel 取消任务
//
// 任务已进入队列但尚未执行时同样生效。
func (t *scheduledTask) Cancel() bool {
	if !t.state.CompareAndSwap(stateArmed, stateCancelled) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}

// Done 任务是否已执行或已取消
func (t *scheduledTask) Done() bool {
	return t.state.Load() != stateArmed
}

// begin 在主线程上标记任务开始执行，已取消时返回 false
func (t *scheduledTask) begin() bool {
	return t.state.CompareAndSwap(stateArmed, stateFired)
}
