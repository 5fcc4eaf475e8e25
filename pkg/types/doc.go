// Package types 定义黑名单系统的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - blocked_node.go - BlockedNode 被阻止节点记录及其集合辅助函数
//   - worker.go       - WorkerID 工作进程标识
//   - errors.go       - 公共错误定义
package types
