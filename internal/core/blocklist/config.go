package blocklist

import (
	"time"

	"github.com/dep2p/go-blocklist/config"
)

// Config 黑名单协调器配置
type Config struct {
	// Enabled 是否启用，禁用时使用 NoOpHandler
	Enabled bool

	// TimeoutCheckInterval 超时检查间隔
	TimeoutCheckInterval time.Duration

	// ResolverCacheSize 解析器缓存容量
	ResolverCacheSize int

	// MetricsEnabled 是否注册指标
	MetricsEnabled bool

	// MetricsNamespace 指标命名空间
	MetricsNamespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		TimeoutCheckInterval: time.Minute,
		ResolverCacheSize:    1024,
		MetricsEnabled:       true,
		MetricsNamespace:     "blocklist",
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.Enabled && c.TimeoutCheckInterval <= 0 {
		return ErrInvalidInterval
	}
	return nil
}

// ConfigFromUnified 从统一配置创建黑名单配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:              cfg.Blocklist.Enabled,
		TimeoutCheckInterval: cfg.Blocklist.TimeoutCheckInterval.Duration(),
		ResolverCacheSize:    cfg.Blocklist.ResolverCacheSize,
		MetricsEnabled:       cfg.Metrics.Enabled,
		MetricsNamespace:     cfg.Metrics.Namespace,
	}
}
