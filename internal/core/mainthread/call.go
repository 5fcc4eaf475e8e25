package mainthread

import (
	"context"
)

// callResult 同步调用结果
type callResult[T any] struct {
	value    T
	panicked bool
	panicVal any
}

// Call 在主线程上执行 fn 并等待其返回
//
// fn 内的 panic 会在调用方 goroutine 中重新抛出，前置条件失败与协作者错误
// 因此原样传播给调用方。ctx 取消时立即返回 ctx.Err()，已投递的任务仍可能执行。
func Call[T any](ctx context.Context, e *Executor, fn func(ctx context.Context) T) (T, error) {
	var zero T
	done := make(chan callResult[T], 1)

	err := e.Execute(func(mainCtx context.Context) {
		var r callResult[T]
		defer func() {
			if p := recover(); p != nil {
				r.panicked = true
				r.panicVal = p
			}
			done <- r
		}()
		r.value = fn(mainCtx)
	})
	if err != nil {
		return zero, err
	}

	select {
	case r := <-done:
		return r.unwrap()
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-e.closeCh:
		// 正在执行的任务会在主循环退出前完成
		if e.started.Load() {
			<-e.doneCh
		}
		select {
		case r := <-done:
			return r.unwrap()
		default:
			return zero, ErrExecutorClosed
		}
	}
}

// Run 在主线程上执行 fn 并等待其返回
func Run(ctx context.Context, e *Executor, fn func(ctx context.Context)) error {
	_, err := Call(ctx, e, func(mainCtx context.Context) struct{} {
		fn(mainCtx)
		return struct{}{}
	})
	return err
}

func (r callResult[T]) unwrap() (T, error) {
	if r.panicked {
		panic(r.panicVal)
	}
	return r.value, nil
}
