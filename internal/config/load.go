package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"

	"surfaces/pkg/contract"
	"surfaces/pkg/mesh"
)

// EnvPrefix 为所有环境变量的公共前缀。
const EnvPrefix = "SURFACES_"

// Defaults 返回带有安全默认值的 Config 雏形。
func Defaults() Config {
	return Config{
		Store:      "configuraciones.csv",
		Resolution: mesh.DefaultResolution,
		Domain:     contract.DefaultDomain(),
		Locale:     "es",
		Logging:    Logging{Level: "info", Dir: "logs"},
		Components: Components{Store: "csv"},
		Options:    Options{Store: json.RawMessage(`{"dir":"."}`)},
	}
}

// LoadJSON 从文件路径或原始 JSON 解析 Config（严格拒绝未知字段）。
func LoadJSON(path string, raw []byte) (Config, error) {
	var cfg Config
	var r io.Reader
	switch {
	case len(raw) > 0:
		r = bytes.NewReader(raw)
	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		r = f
	default:
		return cfg, errors.New("no config source provided")
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Merge 按优先级合并（后者覆盖前者）。
// 零值视为未设置；原样 JSON 为整体替换，不做深度合并。
func Merge(base, over Config) Config {
	out := base
	if s := strings.TrimSpace(over.Store); s != "" {
		out.Store = s
	}
	if over.Resolution != 0 {
		out.Resolution = over.Resolution
	}
	if over.Domain.X != (contract.Range{}) {
		out.Domain.X = over.Domain.X
	}
	if over.Domain.Y != (contract.Range{}) {
		out.Domain.Y = over.Domain.Y
	}
	if s := strings.TrimSpace(over.Locale); s != "" {
		out.Locale = s
	}
	if s := strings.TrimSpace(over.Logging.Level); s != "" {
		out.Logging.Level = s
	}
	if s := strings.TrimSpace(over.Logging.Dir); s != "" {
		out.Logging.Dir = s
	}
	if over.Components.Store != "" {
		out.Components.Store = over.Components.Store
	}
	if len(over.Options.Store) > 0 {
		out.Options.Store = cloneRaw(over.Options.Store)
	}
	return out
}

// envVars: SURFACES_* 映射（前缀由 EnvOverlay 统一添加）。
type envVars struct {
	Store        string         `env:"STORE"`
	Resolution   int            `env:"RESOLUTION"`
	DomainX      contract.Range `env:"DOMAIN_X"`
	DomainY      contract.Range `env:"DOMAIN_Y"`
	Locale       string         `env:"LOCALE"`
	LogLevel     string         `env:"LOG_LEVEL"`
	LogDir       string         `env:"LOG_DIR"`
	StoreKind    string         `env:"COMPONENTS_STORE"`
	StoreOptions string         `env:"OPTIONS_STORE_JSON"`
}

// EnvOverlay 从环境（KEY=VALUE 列表）构造覆盖层。
// 空值视为未设置；数值或区间格式错误时返回错误。
func EnvOverlay(environ []string) (Config, error) {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, EnvPrefix) || strings.TrimSpace(v) == "" {
			continue
		}
		vars[k] = v
	}
	var ev envVars
	err := env.ParseWithOptions(&ev, env.Options{
		Prefix:      EnvPrefix,
		Environment: vars,
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(contract.Range{}): func(v string) (any, error) {
				return contract.ParseRange(v)
			},
		},
	})
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	over := Config{
		Store:      strings.TrimSpace(ev.Store),
		Resolution: ev.Resolution,
		Domain:     contract.Domain{X: ev.DomainX, Y: ev.DomainY},
		Locale:     strings.TrimSpace(ev.Locale),
		Logging:    Logging{Level: strings.TrimSpace(ev.LogLevel), Dir: strings.TrimSpace(ev.LogDir)},
		Components: Components{Store: strings.TrimSpace(ev.StoreKind)},
	}
	if s := strings.TrimSpace(ev.StoreOptions); s != "" {
		over.Options.Store = json.RawMessage(s)
	}
	return over, nil
}

func cloneRaw(in json.RawMessage) json.RawMessage {
	if len(in) == 0 {
		return nil
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
