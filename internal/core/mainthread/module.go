package mainthread

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-blocklist/config"
	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
)

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("mainthread",
		fx.Provide(
			ProvideExecutor,
			AsMainThreadExecutor,
		),
		fx.Invoke(registerLifecycle),
	)
}

// Params 执行器依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Clock      clock.Clock    `optional:"true"`
}

// ProvideExecutor 提供主线程执行器
func ProvideExecutor(p Params) (*Executor, error) {
	return New(ConfigFromUnified(p.UnifiedCfg), WithClock(p.Clock))
}

// AsMainThreadExecutor 以接口形式暴露执行器
func AsMainThreadExecutor(e *Executor) pkgif.MainThreadExecutor {
	return e
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC       fx.Lifecycle
	Executor *Executor
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return input.Executor.Start()
		},
		OnStop: func(_ context.Context) error {
			return input.Executor.Close()
		},
	})
}
