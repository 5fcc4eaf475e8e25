package blocklist

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
)

// Module 返回 Fx 模块
//
// 依赖图中需要已有 MainThreadExecutor、BlocklistTracker、
// BlocklistContext 与 NodeIDRetriever。
func Module() fx.Option {
	return fx.Module("blocklist",
		fx.Provide(
			ConfigFromUnified,
			ProvideMetrics,
			ProvideHandler,
		),
		fx.Invoke(registerLifecycle),
	)
}

// MetricsParams 指标依赖参数
type MetricsParams struct {
	fx.In

	Config     Config
	Registerer prometheus.Registerer `optional:"true"`
}

// ProvideMetrics 提供指标
//
// 指标禁用时返回未注册的收集器。
func ProvideMetrics(p MetricsParams) (*Metrics, error) {
	if !p.Config.MetricsEnabled {
		return newMetrics(""), nil
	}
	return NewMetrics(p.Config.MetricsNamespace, p.Registerer)
}

// HandlerParams 协调器依赖参数
type HandlerParams struct {
	fx.In

	Config    Config
	Metrics   *Metrics
	Executor  pkgif.MainThreadExecutor
	Tracker   pkgif.BlocklistTracker
	Context   pkgif.BlocklistContext
	Retriever pkgif.NodeIDRetriever
}

// ProvideHandler 提供黑名单协调器
func ProvideHandler(p HandlerParams) (pkgif.BlocklistHandler, error) {
	if !p.Config.Enabled {
		logger.Info("黑名单已禁用，使用空实现")
		return NoOpHandler{}, nil
	}
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	return NewDefaultHandler(
		p.Tracker,
		p.Context,
		p.Retriever,
		p.Config.TimeoutCheckInterval,
		p.Executor,
		WithMetrics(p.Metrics),
	)
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC      fx.Lifecycle
	Handler pkgif.BlocklistHandler
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return input.Handler.Close()
		},
	})
}
