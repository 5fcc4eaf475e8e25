package blocklist

import (
	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
	"github.com/dep2p/go-blocklist/pkg/types"
)

// listenerRegistry 监听器注册表
//
// 集合语义，按注册顺序通知。只在主线程上访问。
type listenerRegistry struct {
	listeners []pkgif.BlocklistListener
}

// add 注册监听器，已注册时返回 false
func (r *listenerRegistry) add(l pkgif.BlocklistListener) bool {
	if r.contains(l) {
		return false
	}
	r.listeners = append(r.listeners, l)
	return true
}

// remove 注销监听器，未注册时返回 false
func (r *listenerRegistry) remove(l pkgif.BlocklistListener) bool {
	for i, existing := range r.listeners {
		if existing == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (r *listenerRegistry) contains(l pkgif.BlocklistListener) bool {
	for _, existing := range r.listeners {
		if existing == l {
			return true
		}
	}
	return false
}

// notify 向所有监听器发送同一批记录
func (r *listenerRegistry) notify(nodes []types.BlockedNode) {
	// 遍历快照，监听器在回调中注销自身不影响本轮通知
	snapshot := append([]pkgif.BlocklistListener(nil), r.listeners...)
	for _, l := range snapshot {
		l.NotifyNewBlockedNodes(nodes)
	}
}

func (r *listenerRegistry) len() int {
	return len(r.listeners)
}
