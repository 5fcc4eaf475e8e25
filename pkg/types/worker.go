package types

// WorkerID 工作进程标识
//
// 一个物理节点上可以运行多个工作进程。黑名单只以节点 ID 为粒度，
// WorkerID 需要经由 NodeIDRetriever 解析为节点 ID。
type WorkerID string

// String 返回字符串表示
func (id WorkerID) String() string {
	return string(id)
}

// IsEmpty 是否为空
func (id WorkerID) IsEmpty() bool {
	return id == ""
}
