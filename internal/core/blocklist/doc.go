// Package blocklist 实现黑名单协调器
//
// DefaultHandler 持有被阻止节点的权威视图，所有状态读写、资源阻止与监听器
// 通知都在主线程（MainThreadExecutor）上执行，内部不加锁。
//
// # 数据流
//
//	AddNewBlockedNodes
//	    └─ Tracker.AddNewBlockedNodes ──(有变化)──┬─ 每个监听器 NotifyNewBlockedNodes
//	                                              └─ Context.BlockResources
//
//	超时检查（每次结束后再等待 interval）
//	    └─ Tracker.RemoveTimeoutNodes(now) ──(有移除)── Context.UnblockResources
//
// 过期移除不通知监听器，监听器只关心新增与合并。
//
// # 前置条件
//
// 除 Close 外的所有操作首先断言调用方位于主线程，失败即 panic。
// 解析不出节点的工作进程、nil 监听器同样 panic。协作者的 panic 不被捕获。
//
// # 文件组织
//
//   - handler.go   - DefaultHandler
//   - noop.go      - NoOpHandler（黑名单禁用时使用）
//   - timeout.go   - 可取消的链式超时检查任务
//   - listeners.go - 监听器注册表
//   - metrics.go   - Prometheus 指标
//   - config.go    - 配置
//   - module.go    - Fx 模块
package blocklist
