// Package config 提供统一的配置管理
//
// 主 Config 结构体嵌入所有子配置，每个子配置在独立文件中定义，
// 支持从 JSON 加载。
//
//	cfg := config.NewConfig()
//	cfg.Blocklist.TimeoutCheckInterval = config.Duration(30 * time.Second)
//
//	cfg, err := config.FromJSON(data)
package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Config 完整配置结构
//
//   - Blocklist: 黑名单协调器
//   - MainThread: 主线程执行器
//   - Metrics: Prometheus 指标
type Config struct {
	// Blocklist 黑名单配置
	Blocklist BlocklistConfig `json:"blocklist"`

	// MainThread 主线程执行器配置
	MainThread MainThreadConfig `json:"main_thread"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Blocklist:  DefaultBlocklistConfig(),
		MainThread: DefaultMainThreadConfig(),
		Metrics:    DefaultMetricsConfig(),
	}
}

// Validate 验证配置的有效性
//
// 收集所有子配置的错误后一并返回。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	var err error
	if e := c.Blocklist.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("blocklist: %w", e))
	}
	if e := c.MainThread.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("main_thread: %w", e))
	}
	if e := c.Metrics.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("metrics: %w", e))
	}
	return err
}

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。
//
//	{
//	  "blocklist": {"enabled": true, "timeout_check_interval": "30s"},
//	  "main_thread": {"mailbox_size": 512}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Clone 深拷贝配置
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
