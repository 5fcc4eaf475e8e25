package blocklist

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/dep2p/go-blocklist/config"
	"github.com/dep2p/go-blocklist/internal/core/blocklist/resolver"
	pkgif "github.com/dep2p/go-blocklist/pkg/interfaces"
	"github.com/dep2p/go-blocklist/pkg/types"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 统一配置
	config *config.Config

	// 时钟（测试时注入 clock.Mock）
	clock clock.Clock

	// 工作进程 → 节点解析
	retriever pkgif.NodeIDRetriever
	lookup    resolver.LookupFunc

	// 协作者覆盖
	tracker          pkgif.BlocklistTracker
	blocklistContext pkgif.BlocklistContext

	// 指标注册器，nil 时使用独立的 Registry
	registerer prometheus.Registerer

	// 启动后注册的监听器
	listeners []pkgif.BlocklistListener

	// Fx 日志，nil 时丢弃
	fxLogger *zap.Logger

	// 用户自定义 Fx 选项
	userFxOptions []fx.Option
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{
		config: config.NewConfig(),
	}
}

func (o *options) apply(opts []Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              配置选项
// ════════════════════════════════════════════════════════════════════════════

// WithConfig 使用完整配置（覆盖此前的配置类选项）
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("%w: nil config", ErrInvalidOption)
		}
		o.config = cfg.Clone()
		return nil
	}
}

// WithTimeoutCheckInterval 设置超时检查间隔
func WithTimeoutCheckInterval(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("%w: timeout check interval %s", ErrInvalidOption, d)
		}
		o.config.Blocklist = o.config.Blocklist.WithTimeoutCheckInterval(d)
		return nil
	}
}

// WithEnabled 启用或禁用黑名单
//
// 禁用时 Service 使用空实现：不阻止任何节点。
func WithEnabled(enabled bool) Option {
	return func(o *options) error {
		o.config.Blocklist.Enabled = enabled
		return nil
	}
}

// WithMetricsNamespace 设置指标命名空间
func WithMetricsNamespace(ns string) Option {
	return func(o *options) error {
		o.config.Metrics.Namespace = ns
		return nil
	}
}

// WithClock 设置时钟
func WithClock(c clock.Clock) Option {
	return func(o *options) error {
		if c == nil {
			return fmt.Errorf("%w: nil clock", ErrInvalidOption)
		}
		o.clock = c
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              解析选项
// ════════════════════════════════════════════════════════════════════════════

// WithRetriever 直接使用给定的解析器（不加缓存）
func WithRetriever(r pkgif.NodeIDRetriever) Option {
	return func(o *options) error {
		if r == nil {
			return fmt.Errorf("%w: nil retriever", ErrInvalidOption)
		}
		o.retriever = r
		o.lookup = nil
		return nil
	}
}

// WithLookup 使用查找函数解析节点，结果经过 LRU 缓存
func WithLookup(fn resolver.LookupFunc) Option {
	return func(o *options) error {
		if fn == nil {
			return fmt.Errorf("%w: nil lookup", ErrInvalidOption)
		}
		o.lookup = fn
		o.retriever = nil
		return nil
	}
}

// WithWorkerMapping 使用静态映射解析节点
func WithWorkerMapping(mapping map[types.WorkerID]string) Option {
	return WithLookup(resolver.NewStatic(mapping).Lookup)
}

// ════════════════════════════════════════════════════════════════════════════
//                              协作者选项
// ════════════════════════════════════════════════════════════════════════════

// WithTracker 替换默认的内存记录存储
func WithTracker(t pkgif.BlocklistTracker) Option {
	return func(o *options) error {
		if t == nil {
			return fmt.Errorf("%w: nil tracker", ErrInvalidOption)
		}
		o.tracker = t
		return nil
	}
}

// WithBlocklistContext 替换默认的资源闸门
//
// 设置后 Service.Gate 返回 nil。
func WithBlocklistContext(c pkgif.BlocklistContext) Option {
	return func(o *options) error {
		if c == nil {
			return fmt.Errorf("%w: nil blocklist context", ErrInvalidOption)
		}
		o.blocklistContext = c
		return nil
	}
}

// WithRegisterer 设置指标注册器
//
// 设置后 Service.Registry 返回 nil。
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		if reg == nil {
			return fmt.Errorf("%w: nil registerer", ErrInvalidOption)
		}
		o.registerer = reg
		return nil
	}
}

// WithListener 启动时注册监听器
func WithListener(l pkgif.BlocklistListener) Option {
	return func(o *options) error {
		if l == nil {
			return fmt.Errorf("%w: nil listener", ErrInvalidOption)
		}
		o.listeners = append(o.listeners, l)
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              Fx 选项
// ════════════════════════════════════════════════════════════════════════════

// WithFxLogger 设置 Fx 事件日志
func WithFxLogger(l *zap.Logger) Option {
	return func(o *options) error {
		o.fxLogger = l
		return nil
	}
}

// WithFxOption 追加自定义 Fx 选项
func WithFxOption(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
