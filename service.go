package blocklist

import (
	"context"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-blocklist/internal/core/blocklist/resolver"
	"github.com/dep2p/go-blocklist/internal/core/mainthread"
	"github.com/dep2p/go-blocklist/internal/core/resourcegate"
	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
	"github.com/dep2p/go-blocklist/pkg/lib/log"
	"github.com/dep2p/go-blocklist/pkg/types"
)

var logger = log.Logger("blocklist")

// ════════════════════════════════════════════════════════════════════════════
//                              服务状态
// ════════════════════════════════════════════════════════════════════════════

// State 服务状态
type State int

const (
	// StateIdle 已创建，未启动
	StateIdle State = iota

	// StateRunning 运行中
	StateRunning

	// StateStopped 已停止（不可重新启动）
	StateStopped
)

// String 返回状态的字符串表示
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              Service
// ════════════════════════════════════════════════════════════════════════════

// Service 黑名单服务
//
// 所有方法可在任意 goroutine 调用；操作被投递到主线程执行并等待结果。
// 主线程上的前置条件失败（例如无法解析的工作进程）以 panic 形式传播到调用方。
type Service struct {
	mu    sync.RWMutex
	state State

	app      *fx.App
	handler  pkgif.BlocklistHandler
	executor *mainthread.Executor

	gate     *resourcegate.Gate
	registry *prometheus.Registry
	resolver *resolver.Cached

	listeners []pkgif.BlocklistListener
}

// New 创建黑名单服务（未启动）
func New(opts ...Option) (*Service, error) {
	o := newOptions()
	if err := o.apply(opts); err != nil {
		return nil, err
	}

	svc := &Service{listeners: o.listeners}
	app, err := buildFxApp(o, svc)
	if err != nil {
		return nil, err
	}
	svc.app = app
	return svc, nil
}

// Start 启动服务并注册初始监听器
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateRunning:
		return ErrAlreadyStarted
	case StateStopped:
		return ErrServiceClosed
	}

	if err := s.app.Start(ctx); err != nil {
		s.state = StateStopped
		return fmt.Errorf("start blocklist service: %w", err)
	}
	s.state = StateRunning

	if len(s.listeners) > 0 {
		err := mainthread.Run(ctx, s.executor, func(mainCtx context.Context) {
			for _, l := range s.listeners {
				s.handler.RegisterBlocklistListener(mainCtx, l)
			}
		})
		if err != nil {
			return fmt.Errorf("register listeners: %w", err)
		}
	}

	logger.Info("黑名单服务已启动", "executor", s.executor.ID(), "listeners", len(s.listeners))
	return nil
}

// Stop 停止服务（幂等）
//
// 注销初始监听器后先取消超时检查，再关闭主线程执行器；资源闸门随后清空。
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateStopped {
		return nil
	}
	wasRunning := s.state == StateRunning
	s.state = StateStopped
	if !wasRunning {
		return nil
	}

	var err error
	if len(s.listeners) > 0 {
		err = multierr.Append(err, mainthread.Run(ctx, s.executor, func(mainCtx context.Context) {
			for _, l := range s.listeners {
				s.handler.DeregisterBlocklistListener(mainCtx, l)
			}
		}))
	}
	err = multierr.Append(err, s.app.Stop(ctx))
	if s.gate != nil {
		s.gate.Clear()
	}

	logger.Info("黑名单服务已停止")
	return err
}

// State 返回当前状态
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ════════════════════════════════════════════════════════════════════════════
//                              黑名单操作
// ════════════════════════════════════════════════════════════════════════════

// Block 添加（或合并）被阻止节点
func (s *Service) Block(ctx context.Context, nodes ...types.BlockedNode) error {
	for _, n := range nodes {
		if err := n.Validate(); err != nil {
			return err
		}
	}
	return s.run(ctx, func(mainCtx context.Context) {
		s.handler.AddNewBlockedNodes(mainCtx, nodes)
	})
}

// IsBlocked 工作进程所在节点是否被阻止
func (s *Service) IsBlocked(ctx context.Context, worker types.WorkerID) (bool, error) {
	if err := s.checkRunning(); err != nil {
		return false, err
	}
	return mainthread.Call(ctx, s.executor, func(mainCtx context.Context) bool {
		return s.handler.IsBlockedWorker(mainCtx, worker)
	})
}

// BlockedNodeIDs 返回所有被阻止节点的 ID（已排序）
func (s *Service) BlockedNodeIDs(ctx context.Context) ([]string, error) {
	if err := s.checkRunning(); err != nil {
		return nil, err
	}
	return mainthread.Call(ctx, s.executor, s.handler.AllBlockedNodeIDs)
}

// RegisterListener 注册监听器
func (s *Service) RegisterListener(ctx context.Context, l pkgif.BlocklistListener) error {
	if l == nil {
		return fmt.Errorf("%w: nil listener", ErrInvalidOption)
	}
	return s.run(ctx, func(mainCtx context.Context) {
		s.handler.RegisterBlocklistListener(mainCtx, l)
	})
}

// DeregisterListener 注销监听器
func (s *Service) DeregisterListener(ctx context.Context, l pkgif.BlocklistListener) error {
	if l == nil {
		return fmt.Errorf("%w: nil listener", ErrInvalidOption)
	}
	return s.run(ctx, func(mainCtx context.Context) {
		s.handler.DeregisterBlocklistListener(mainCtx, l)
	})
}

func (s *Service) run(ctx context.Context, fn func(mainCtx context.Context)) error {
	if err := s.checkRunning(); err != nil {
		return err
	}
	return mainthread.Run(ctx, s.executor, fn)
}

func (s *Service) checkRunning() error {
	switch s.State() {
	case StateIdle:
		return ErrNotStarted
	case StateStopped:
		return ErrServiceClosed
	}
	return nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              组件访问
// ════════════════════════════════════════════════════════════════════════════

// Handler 返回底层协调器
//
// 其方法只能在主线程上调用，见 Executor。
func (s *Service) Handler() pkgif.BlocklistHandler {
	return s.handler
}

// Executor 返回主线程执行器
func (s *Service) Executor() *mainthread.Executor {
	return s.executor
}

// Gate 返回资源闸门，使用自定义 BlocklistContext 时为 nil
func (s *Service) Gate() *resourcegate.Gate {
	return s.gate
}

// Registry 返回指标 Registry，使用自定义注册器时为 nil
func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// Resolver 返回缓存解析器，使用 WithRetriever 时为 nil
func (s *Service) Resolver() *resolver.Cached {
	return s.resolver
}
