package mainthread

import (
	"github.com/dep2p/go-blocklist/config"
)

// Config 执行器配置
type Config struct {
	// MailboxSize 任务队列容量
	MailboxSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MailboxSize: 256,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	if c.MailboxSize <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// ConfigFromUnified 从统一配置创建执行器配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		MailboxSize: cfg.MainThread.MailboxSize,
	}
}
