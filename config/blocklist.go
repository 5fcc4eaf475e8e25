package config

import (
	"errors"
	"time"
)

// BlocklistConfig 黑名单协调器配置
type BlocklistConfig struct {
	// Enabled 是否启用黑名单
	// 禁用时使用空实现：不阻止任何节点，也不运行超时检查
	Enabled bool `json:"enabled"`

	// TimeoutCheckInterval 超时检查间隔
	// 每次检查完成后再等待该间隔（链式单次调度，非固定频率）
	TimeoutCheckInterval Duration `json:"timeout_check_interval"`

	// ResolverCacheSize 工作进程到节点映射的缓存容量
	ResolverCacheSize int `json:"resolver_cache_size,omitempty"`
}

// DefaultBlocklistConfig 返回默认黑名单配置
func DefaultBlocklistConfig() BlocklistConfig {
	return BlocklistConfig{
		Enabled:              true,
		TimeoutCheckInterval: Duration(1 * time.Minute),
		ResolverCacheSize:    1024,
	}
}

// Validate 验证黑名单配置
func (c BlocklistConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.TimeoutCheckInterval <= 0 {
		return errors.New("timeout check interval must be positive")
	}
	if c.ResolverCacheSize < 0 {
		return errors.New("resolver cache size must be non-negative")
	}
	return nil
}

// WithTimeoutCheckInterval 设置超时检查间隔
func (c BlocklistConfig) WithTimeoutCheckInterval(d time.Duration) BlocklistConfig {
	c.TimeoutCheckInterval = Duration(d)
	return c
}

// MainThreadConfig 主线程执行器配置
type MainThreadConfig struct {
	// MailboxSize 任务队列容量
	// 队列满时投递方阻塞，直到主线程取走任务
	MailboxSize int `json:"mailbox_size"`
}

// DefaultMainThreadConfig 返回默认主线程配置
func DefaultMainThreadConfig() MainThreadConfig {
	return MainThreadConfig{
		MailboxSize: 256,
	}
}

// Validate 验证主线程配置
func (c MainThreadConfig) Validate() error {
	if c.MailboxSize <= 0 {
		return errors.New("mailbox size must be positive")
	}
	return nil
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// Enabled 是否注册 Prometheus 指标
	Enabled bool `json:"enabled"`

	// Namespace 指标命名空间
	Namespace string `json:"namespace,omitempty"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "blocklist",
	}
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	if c.Enabled && c.Namespace == "" {
		return errors.New("namespace must not be empty when metrics are enabled")
	}
	return nil
}
