package catalog

import (
	"fmt"
)

// ConfigurationError 目录配置错误（仅在进程启动构建目录时产生，致命）
type ConfigurationError struct {
	Entry  string // 出错的指标/协议 id（可为空）
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("catalog configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("catalog configuration error: entry %q: %s", e.Entry, e.Reason)
}

func configErrorf(entry, format string, args ...interface{}) error {
	return &ConfigurationError{
		Entry:  entry,
		Reason: fmt.Sprintf(format, args...),
	}
}
