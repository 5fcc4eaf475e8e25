// Package resourcegate 实现资源放置门控
//
// Gate 是 BlocklistContext 的默认实现：协调器阻止节点时，Gate 拒绝把
// 新任务放置到这些节点上；节点过期解除后重新放行。
//
// 阻止/解除由主线程调用，放置查询来自调度器的任意 goroutine，
// 因此 Gate 内部使用读写锁与原子计数。
//
//	gate := resourcegate.New(resourcegate.WithRetriever(retriever))
//	if !gate.AllowWorker(workerID) {
//	    // 选择其他工作进程
//	}
package resourcegate
