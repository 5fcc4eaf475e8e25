package mainthread

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
	"github.com/dep2p/go-blocklist/pkg/lib/log"
)

var logger = log.Logger("core/mainthread")

// ============================================================================
//                              Executor 结构体
// ============================================================================

// Executor 主线程执行器
type Executor struct {
	id    string
	clock clock.Clock

	mailbox chan func(ctx context.Context)

	// current 当前正在执行的任务凭证，仅由循环 goroutine 写入
	current atomic.Pointer[token]

	baseCtx    context.Context
	baseCancel context.CancelFunc

	started   atomic.Bool
	closed    atomic.Bool
	startOnce sync.Once
	closeOnce sync.Once
	closeCh   chan struct{}
	doneCh    chan struct{}
}

var _ pkgif.MainThreadExecutor = (*Executor)(nil)

// token 主线程凭证，每个任务一个
type token struct {
	owner *Executor
}

type tokenKey struct{}

// Option 执行器选项
type Option func(*Executor)

// WithClock 设置时钟
func WithClock(c clock.Clock) Option {
	return func(e *Executor) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithID 设置执行器 ID（默认随机 UUID）
func WithID(id string) Option {
	return func(e *Executor) {
		if id != "" {
			e.id = id
		}
	}
}

// New 创建执行器
//
// 创建后需调用 Start 启动主循环；启动前投递的任务在队列中等待。
func New(cfg Config, opts ...Option) (*Executor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &Executor{
		id:         uuid.NewString(),
		clock:      clock.New(),
		mailbox:    make(chan func(ctx context.Context), cfg.MailboxSize),
		baseCtx:    ctx,
		baseCancel: cancel,
		closeCh:    make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ID 返回执行器 ID
func (e *Executor) ID() string {
	return e.id
}

// Clock 返回执行器时钟
func (e *Executor) Clock() clock.Clock {
	return e.clock
}

// Now 返回执行器时钟的当前时间
func (e *Executor) Now() time.Time {
	return e.clock.Now()
}

// ============================================================================
//                              生命周期
// ============================================================================

// Start 启动主循环（幂等）
func (e *Executor) Start() error {
	if e.closed.Load() {
		return ErrExecutorClosed
	}
	e.startOnce.Do(func() {
		e.started.Store(true)
		go e.loop()
		logger.Info("主线程执行器已启动", "executor", e.id)
	})
	return nil
}

// Close 关闭执行器（幂等）
//
// 丢弃队列中尚未执行的任务，等待正在执行的任务结束。
// 不得在主线程任务内调用，否则会等待自身而死锁。
func (e *Executor) Close() error {
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		close(e.closeCh)
		e.baseCancel()
		if e.started.Load() {
			<-e.doneCh
		}
		logger.Info("主线程执行器已关闭", "executor", e.id)
	})
	return nil
}

// Done 返回主循环退出后关闭的通道
//
// 未启动的执行器在 Close 后，该通道不会关闭。
func (e *Executor) Done() <-chan struct{} {
	return e.doneCh
}

// loop 主循环
func (e *Executor) loop() {
	defer close(e.doneCh)

	for {
		// 优先响应关闭
		select {
		case <-e.closeCh:
			return
		default:
		}

		select {
		case <-e.closeCh:
			return
		case fn := <-e.mailbox:
			e.run(fn)
		}
	}
}

// run 在主线程上执行单个任务
//
// 任务内的 panic 不在这里恢复。
func (e *Executor) run(fn func(ctx context.Context)) {
	tok := &token{owner: e}
	e.current.Store(tok)
	defer e.current.Store(nil)

	fn(context.WithValue(e.baseCtx, tokenKey{}, tok))
}

// ============================================================================
//                              任务投递
// ============================================================================

// Execute 将任务投递到主线程
//
// 队列满时阻塞直到有空位或执行器关闭。
// 在主线程任务内投递且队列已满会死锁，主线程内部应直接调用而不是投递。
func (e *Executor) Execute(fn func(ctx context.Context)) error {
	if e.closed.Load() {
		return ErrExecutorClosed
	}
	select {
	case e.mailbox <- fn:
		return nil
	case <-e.closeCh:
		return ErrExecutorClosed
	}
}

// Schedule 在 delay 之后将任务投递到主线程
func (e *Executor) Schedule(delay time.Duration, fn func(ctx context.Context)) pkgif.ScheduledTask {
	st := &scheduledTask{}
	if e.closed.Load() {
		st.state.Store(stateCancelled)
		return st
	}

	st.timer = e.clock.AfterFunc(delay, func() {
		if st.Done() {
			return
		}
		err := e.Execute(func(ctx context.Context) {
			if !st.begin() {
				return
			}
			fn(ctx)
		})
		if err != nil {
			st.state.CompareAndSwap(stateArmed, stateCancelled)
			logger.Debug("执行器已关闭，丢弃延迟任务", "executor", e.id)
		}
	})
	return st
}

// ============================================================================
//                              主线程断言
// ============================================================================

// IsMainThread ctx 是否属于当前正在执行的任务
func (e *Executor) IsMainThread(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	tok, ok := ctx.Value(tokenKey{}).(*token)
	if !ok || tok.owner != e {
		return false
	}
	return e.current.Load() == tok
}

// AssertRunningInMainThread 断言 ctx 属于当前正在执行的任务，否则 panic
func (e *Executor) AssertRunningInMainThread(ctx context.Context) {
	if !e.IsMainThread(ctx) {
		panic(fmt.Errorf("%w (executor %s)", ErrNotInMainThread, e.id))
	}
}
