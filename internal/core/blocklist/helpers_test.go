package blocklist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
	"github.com/dep2p/go-blocklist/pkg/types"
)

// ============================================================================
//                              manualExecutor - 手动推进的执行器
// ============================================================================

var errFakeNotInMain = errors.New("fake: not in main thread")

type manualToken struct{ id int }

type manualTokenKey struct{}

// manualExecutor 由测试手动推进时间的执行器
//
// 测试 goroutine 即为主线程；任务只在 runInMain / advance 中同步执行。
type manualExecutor struct {
	now     time.Time
	current *manualToken
	nextID  int
	tasks   []*manualTask
}

type manualTask struct {
	at        time.Time
	seq       int
	fn        func(ctx context.Context)
	fired     bool
	cancelled bool
}

func (t *manualTask) Cancel() bool {
	if t.fired || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

func (t *manualTask) Done() bool { return t.fired || t.cancelled }

var _ pkgif.MainThreadExecutor = (*manualExecutor)(nil)

func newManualExecutor(now time.Time) *manualExecutor {
	return &manualExecutor{now: now}
}

func (m *manualExecutor) Execute(fn func(ctx context.Context)) error {
	m.runInMain(fn)
	return nil
}

func (m *manualExecutor) Schedule(delay time.Duration, fn func(ctx context.Context)) pkgif.ScheduledTask {
	m.nextID++
	t := &manualTask{at: m.now.Add(delay), seq: m.nextID, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

func (m *manualExecutor) AssertRunningInMainThread(ctx context.Context) {
	if ctx == nil {
		panic(fmt.Errorf("%w: nil context", errFakeNotInMain))
	}
	tok, _ := ctx.Value(manualTokenKey{}).(*manualToken)
	if tok == nil || tok != m.current {
		panic(errFakeNotInMain)
	}
}

func (m *manualExecutor) Now() time.Time { return m.now }

// runInMain 以主线程身份执行 fn
func (m *manualExecutor) runInMain(fn func(ctx context.Context)) {
	m.nextID++
	tok := &manualToken{id: m.nextID}
	prev := m.current
	m.current = tok
	defer func() { m.current = prev }()

	fn(context.WithValue(context.Background(), manualTokenKey{}, tok))
}

// advance 推进时间并执行到期任务
func (m *manualExecutor) advance(d time.Duration) {
	m.now = m.now.Add(d)
	for {
		due := m.dueTasks()
		if len(due) == 0 {
			return
		}
		t := due[0]
		t.fired = true
		m.runInMain(t.fn)
	}
}

func (m *manualExecutor) dueTasks() []*manualTask {
	var due []*manualTask
	for _, t := range m.tasks {
		if !t.Done() && !t.at.After(m.now) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].at.Equal(due[j].at) {
			return due[i].at.Before(due[j].at)
		}
		return due[i].seq < due[j].seq
	})
	return due
}

// pending 返回尚未执行也未取消的任务数
func (m *manualExecutor) pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.Done() {
			n++
		}
	}
	return n
}

// ============================================================================
//                              记录型协作者
// ============================================================================

// recordingContext 记录阻止/解除调用
type recordingContext struct {
	blocked   [][]types.BlockedNode
	unblocked [][]types.BlockedNode

	onBlock   func(nodes []types.BlockedNode)
	onUnblock func(nodes []types.BlockedNode)
}

func (c *recordingContext) BlockResources(nodes []types.BlockedNode) {
	c.blocked = append(c.blocked, nodes)
	if c.onBlock != nil {
		c.onBlock(nodes)
	}
}

func (c *recordingContext) UnblockResources(nodes []types.BlockedNode) {
	c.unblocked = append(c.unblocked, nodes)
	if c.onUnblock != nil {
		c.onUnblock(nodes)
	}
}

// recordingListener 记录通知
type recordingListener struct {
	calls [][]types.BlockedNode
}

func (l *recordingListener) NotifyNewBlockedNodes(nodes []types.BlockedNode) {
	l.calls = append(l.calls, nodes)
}

// recoverPanic 执行 fn 并返回其 panic 值
func recoverPanic(fn func()) (r any) {
	defer func() { r = recover() }()
	fn()
	return nil
}

func panicErr(fn func()) error {
	r := recoverPanic(fn)
	if r == nil {
		return nil
	}
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("non-error panic: %v", r)
}
