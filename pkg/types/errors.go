package types

import "errors"

var (
	// ErrEmptyNodeID 空节点 ID
	ErrEmptyNodeID = errors.New("types: empty node ID")

	// ErrEmptyWorkerID 空工作进程 ID
	ErrEmptyWorkerID = errors.New("types: empty worker ID")
)

// Validate 检查记录是否可提交给 Tracker
func (n BlockedNode) Validate() error {
	if n.NodeID == "" {
		return ErrEmptyNodeID
	}
	return nil
}
