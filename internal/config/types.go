package config

import (
	"encoding/json"

	"surfaces/pkg/contract"
)

// Config: 运行期只读配置（一次解析，运行期不变）。
// JSON 使用 snake_case；未知字段在解析期失败。
type Config struct {
	// Store: 记录存储的 StoreID（csv 为文件名）。
	Store string `json:"store"`
	// Resolution: 网格分辨率 R（R×R 采样）。
	Resolution int             `json:"resolution"`
	Domain     contract.Domain `json:"domain"`
	// Locale: 列表输出的数字格式语言（BCP 47，如 "es"、"en-US"）。
	Locale  string  `json:"locale"`
	Logging Logging `json:"logging"`

	// 组件名选择（空则使用默认名）。
	Components Components `json:"components"`

	// 各组件 Options 子树，原样 JSON 传入工厂。
	Options Options `json:"options"`
}

// Logging: 日志等级与目录；轮转策略为固定默认。
type Logging struct {
	Level string `json:"level"`
	Dir   string `json:"dir"`
}

// Components: 组件名选择（注册表中的实现名）。
type Components struct {
	Store string `json:"store"`
}

// Options: 各组件的原样 JSON Options。
type Options struct {
	Store json.RawMessage `json:"store"`
}
