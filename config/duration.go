package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Duration 可从 JSON 解码的时间间隔
//
//	"timeout_check_interval": "30s"    // time.ParseDuration 格式
//	"timeout_check_interval": 30000    // 整数按毫秒解释
//
// 编码时总是输出字符串形式。
type Duration time.Duration

var errDurationFormat = errors.New(`duration must be a string like "30s" or integer milliseconds`)

// UnmarshalJSON 实现 json.Unmarshaler
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", x, err)
		}
		*d = Duration(parsed)
	case float64:
		if x != float64(int64(x)) {
			return errDurationFormat
		}
		*d = Duration(time.Duration(x) * time.Millisecond)
	default:
		return errDurationFormat
	}
	return nil
}

// MarshalJSON 实现 json.Marshaler
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Duration 返回 time.Duration
func (d Duration) Duration() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }
