// Package interfaces 定义黑名单系统的公共接口
//
// 一个接口文件 = 一个实现目录：
//   - blocklist.go  - BlocklistHandler 及其协作者（Tracker、Context、Listener、NodeIDRetriever）
//                     实现: internal/core/blocklist, internal/core/blocklist/tracker,
//                     internal/core/blocklist/resolver, internal/core/resourcegate
//   - executor.go   - MainThreadExecutor 单线程执行器
//                     实现: internal/core/mainthread
//
// # 线程约束
//
// BlocklistHandler、BlocklistTracker、BlocklistListener 的所有方法都只在
// 主线程（MainThreadExecutor 的事件循环）上调用，实现无需加锁。
// BlocklistContext 的实现通常还要被调度器从其他 goroutine 查询，需要自行同步。
package interfaces
