package diag

import (
	"context"
	"errors"
	"os"
	"time"

	"surfaces/pkg/contract"
)

// Code 是最小错误分类代码。
// 仅用于日志/指标汇总，与退出码解耦。
type Code string

const (
	CodeUnknown   Code = "unknown"
	CodeDomain    Code = "domain"
	CodeVariant   Code = "variant"
	CodeParam     Code = "param"
	CodeInvariant Code = "invariant"
	CodeCancel    Code = "cancel"
	CodeIO        Code = "io"
)

// Classify 将错误归为最小分类。
// 仅依赖哨兵错误与标准库错误类型，不做字符串匹配。
func Classify(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CodeCancel
	}
	// 存储错误可能同时包裹解码失败，先判定 I/O
	if errors.Is(err, contract.ErrStoreIO) {
		return CodeIO
	}
	switch {
	case errors.Is(err, contract.ErrUnknownVariant):
		return CodeVariant
	case errors.Is(err, contract.ErrInvalidParameter):
		return CodeParam
	case errors.Is(err, contract.ErrInvalidDomain):
		return CodeDomain
	case errors.Is(err, contract.ErrInvalidInput), errors.Is(err, contract.ErrPathInvalid):
		return CodeInvariant
	}
	var perr *os.PathError
	if errors.As(err, &perr) {
		return CodeIO
	}
	return CodeUnknown
}

// IsUsage 报告该分类是否源自调用方输入（变体、参数、定义域）。
func (c Code) IsUsage() bool {
	return c == CodeVariant || c == CodeParam || c == CodeDomain
}

// NowUTC 返回 RFC3339 UTC 时间字符串。
func NowUTC() string { return time.Now().UTC().Format(time.RFC3339) }
