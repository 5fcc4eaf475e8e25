package blocklist

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	coreblocklist "github.com/dep2p/go-blocklist/internal/core/blocklist"
	"github.com/dep2p/go-blocklist/internal/core/blocklist/resolver"
	"github.com/dep2p/go-blocklist/internal/core/blocklist/tracker"
	"github.com/dep2p/go-blocklist/internal/core/mainthread"
	"github.com/dep2p/go-blocklist/internal/core/resourcegate"
	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
	"github.com/dep2p/go-blocklist/pkg/lib/log"
)

var fxLogger = log.Logger("blocklist/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. 配置与可选时钟
//  2. MainThread 执行器
//  3. 协作者：记录存储、解析器、资源闸门、指标注册器
//  4. Blocklist 协调器
//
// 停止时逆序执行：先关闭协调器（取消超时检查），再关闭执行器。
func buildFxApp(o *options, svc *Service) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	retriever, err := buildRetriever(o, svc)
	if err != nil {
		return nil, err
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 核心模块
	// ════════════════════════════════════════════════════════════════════════
	modules := []fx.Option{
		fx.Supply(o.config),
		mainthread.Module(),
	}
	if o.clock != nil {
		c := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return c }))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 3. 协作者
	// ════════════════════════════════════════════════════════════════════════
	tr := o.tracker
	if tr == nil {
		tr = tracker.New()
	}

	bc := o.blocklistContext
	if bc == nil {
		svc.gate = resourcegate.New(resourcegate.WithRetriever(retriever))
		bc = svc.gate
	}

	reg := o.registerer
	if reg == nil {
		svc.registry = prometheus.NewRegistry()
		reg = svc.registry
	}

	modules = append(modules, fx.Provide(
		func() pkgif.BlocklistTracker { return tr },
		func() pkgif.BlocklistContext { return bc },
		func() pkgif.NodeIDRetriever { return retriever },
		func() prometheus.Registerer { return reg },
	))

	// ════════════════════════════════════════════════════════════════════════
	// 4. 协调器
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, coreblocklist.Module())

	// 用户自定义选项
	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 5. 组件注入与 Fx 配置
	// ════════════════════════════════════════════════════════════════════════
	zl := o.fxLogger
	if zl == nil {
		zl = zap.NewNop()
	}
	modules = append(modules,
		fx.Populate(&svc.handler, &svc.executor),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zl}
		}),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	fxLogger.Debug("Fx 应用已构建", "enabled", o.config.Blocklist.Enabled)
	return app, nil
}

// buildRetriever 根据选项构造解析器
func buildRetriever(o *options, svc *Service) (pkgif.NodeIDRetriever, error) {
	switch {
	case o.retriever != nil:
		return o.retriever, nil
	case o.lookup != nil:
		cached, err := resolver.NewCached(o.lookup, o.config.Blocklist.ResolverCacheSize)
		if err != nil {
			return nil, fmt.Errorf("create resolver: %w", err)
		}
		svc.resolver = cached
		return cached, nil
	default:
		return nil, ErrNoRetriever
	}
}

