package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	cfgpkg "surfaces/internal/config"
)

// initConfig 在 dir 下生成 config.json 与 .env 模板；已存在的 config.json 视为配置错误。
func (a *app) initConfig(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return configError{fmt.Errorf("生成默认配置失败: %w", err)}
	}
	cfgPath := filepath.Join(dir, "config.json")
	if err := writeConfig(cfgPath, cfgpkg.DefaultTemplateConfig()); err != nil {
		return configError{fmt.Errorf("生成默认配置失败: %w", err)}
	}
	envPath := filepath.Join(dir, ".env")
	if err := writeExclusive(envPath, []byte(cfgpkg.DefaultEnvTemplate)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			fmt.Fprintf(a.stderr, "提示：%s 已存在（已跳过）\n", envPath)
		} else {
			fmt.Fprintf(a.stderr, "提示：.env 生成失败（已跳过）：%v\n", err)
		}
	}
	fmt.Fprintf(a.stdout, "%s\n", cfgPath)
	return nil
}

func writeConfig(path string, c cfgpkg.Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return writeExclusive(path, append(b, '\n'))
}

// writeExclusive 不覆盖已存在文件
func writeExclusive(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
