package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"surfaces/pkg/contract"
	"surfaces/pkg/registry"
)

// Validate 对最小必要边界做静态校验。
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Store) == "" {
		return errors.New("config: store id empty")
	}
	if cfg.Resolution < 1 {
		return errors.New("config: resolution must be >= 1")
	}
	if !cfg.Domain.X.Valid() {
		return fmt.Errorf("config: domain.x %v must satisfy low < high", cfg.Domain.X)
	}
	if !cfg.Domain.Y.Valid() {
		return fmt.Errorf("config: domain.y %v must satisfy low < high", cfg.Domain.Y)
	}
	if cfg.Locale != "" {
		if _, err := language.Parse(cfg.Locale); err != nil {
			return fmt.Errorf("config: locale %q: %w", cfg.Locale, err)
		}
	}
	if name := effName(cfg.Components.Store, Defaults().Components.Store); registry.Store[name] == nil {
		return fmt.Errorf("config: store %q not registered", name)
	}
	return nil
}

// Assemble 构造记录存储。
// 严格 Options 解析在 registry（工厂）层进行；此处只传 raw JSON。
func Assemble(cfg Config) (contract.RecordStore, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	name := effName(cfg.Components.Store, Defaults().Components.Store)
	st, err := registry.Store[name](cfg.Options.Store)
	if err != nil {
		return nil, fmt.Errorf("config: store %q options: %w", name, err)
	}
	return st, nil
}

// Tag 返回配置的语言标签；空或非法时回退到 Defaults().Locale。
func (c Config) Tag() language.Tag {
	if t, err := language.Parse(c.Locale); err == nil {
		return t
	}
	return language.MustParse(Defaults().Locale)
}

func effName(got, def string) string {
	if got == "" {
		return def
	}
	return got
}
