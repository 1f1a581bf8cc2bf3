package config

import "encoding/json"

// DefaultTemplateConfig 返回可直接运行的默认配置模板：
// csv 存储写入当前目录的 configuraciones.csv，选项列出全部键。
func DefaultTemplateConfig() Config {
	cfg := Defaults()
	cfg.Options.Store = json.RawMessage(`{
  "dir": ".",
  "atomic": true,
  "flat": true,
  "perm_file": 0,
  "perm_dir": 0,
  "buf_size": 65536
}`)
	return cfg
}

// DefaultEnvTemplate 为 .env 模板内容（键与 EnvOverlay 一致，值留空表示沿用配置文件）。
const DefaultEnvTemplate = `# SURFACES_* 覆盖 config.json；空值不生效
SURFACES_STORE=
SURFACES_RESOLUTION=
SURFACES_DOMAIN_X=
SURFACES_DOMAIN_Y=
SURFACES_LOCALE=
SURFACES_LOG_LEVEL=
SURFACES_LOG_DIR=
SURFACES_COMPONENTS_STORE=
SURFACES_OPTIONS_STORE_JSON=
`
