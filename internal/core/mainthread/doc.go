// Package mainthread 实现单线程主循环执行器
//
// Executor 在一个 goroutine 上按投递顺序依次执行任务，
// 为组件提供"所有状态变更都在同一逻辑线程上发生"的保证，组件内部无需加锁。
//
// # 主线程凭证
//
// 每个任务收到的 context 携带一个只在该任务执行期间有效的凭证。
// AssertRunningInMainThread(ctx) 校验凭证属于当前正在执行的任务，
// 否则 panic（错误包装 ErrNotInMainThread）。任务结束后泄漏出去的 context 同样无法通过校验。
//
// # 使用示例
//
//	exec, _ := mainthread.New(mainthread.DefaultConfig())
//	_ = exec.Start()
//	defer exec.Close()
//
//	// 从外部 goroutine 同步进入主线程
//	ids, err := mainthread.Call(ctx, exec, func(ctx context.Context) []string {
//	    return handler.AllBlockedNodeIDs(ctx)
//	})
//
//	// 延迟任务
//	task := exec.Schedule(time.Second, func(ctx context.Context) { ... })
//	task.Cancel()
//
// # 时钟
//
// 执行器的定时与 Now() 都基于 github.com/benbjohnson/clock，测试中可注入 clock.Mock。
package mainthread
