// Package blocklist 提供集群节点黑名单协调服务
//
// 黑名单记录哪些节点暂时（或永久）不可用于放置新工作。Service 组装
// 协调器、单 goroutine 主线程执行器、资源闸门与指标，对外提供线程安全的入口；
// 所有状态变更都在主线程上串行执行。
//
// # 快速开始
//
//	svc, err := blocklist.New(
//	    blocklist.WithWorkerMapping(map[types.WorkerID]string{"tm-1": "host-a"}),
//	    blocklist.WithTimeoutCheckInterval(30*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := svc.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Stop(context.Background())
//
//	_ = svc.Block(ctx, types.NewBlockedNode("host-a", "disk failure", time.Now().Add(time.Hour)))
//	blocked, _ := svc.IsBlocked(ctx, "tm-1") // true
//
// # 语义
//
//   - 同一节点的记录合并：过期时间取较晚者（永不过期优先），非空原因覆盖旧原因
//   - 只有新增或实际变化的记录才会通知监听器并阻止资源
//   - 过期记录由周期性超时检查移除并解除资源阻止，不通知监听器
//   - 新注册的监听器会收到一次当前完整集合
//
// 需要直接在主线程上操作时，使用 Handler 与 Executor 配合
// mainthread.Call 提交任务。
package blocklist
