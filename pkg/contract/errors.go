package contract

import "errors"

// 最小错误分类；调用方以 errors.Is 判定。
var (
	// ErrInvalidDomain: 区间 low >= high 或含非有限端点。
	ErrInvalidDomain = errors.New("invalid domain")
	// ErrUnknownVariant: 工厂收到未注册的曲面标签。
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrInvalidParameter: 必需标量缺失、非有限或越出声明范围。
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrStoreIO: 记录存储不可读/不可写/内容损坏（不含“不存在”）。
	ErrStoreIO = errors.New("store io failure")
	// ErrPathInvalid: 存储标识映射为无效/越界路径（例如绝对路径或 '..' 逃逸）。
	ErrPathInvalid = errors.New("path invalid")
	// ErrInvalidInput: 其余调用方输入错误（如分辨率 <= 0）。
	ErrInvalidInput = errors.New("invalid input")
)
