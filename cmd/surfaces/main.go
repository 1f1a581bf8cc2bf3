package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cfgpkg "surfaces/internal/config"
	"surfaces/internal/diag"
	"surfaces/pkg/contract"
	"surfaces/pkg/registry"
)

// 退出码
const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
	exitConfig  = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app 为一次进程运行的共享状态（配置与日志在 PersistentPreRunE 中就绪）。
type app struct {
	stdout io.Writer
	stderr io.Writer
	start  time.Time
	corrID string

	flagConfig     string
	flagStore      string
	flagResolution int
	flagLocale     string
	flagLogLevel   string

	cfg    cfgpkg.Config
	logger *diag.Logger
}

// configError 标记配置阶段失败（退出码 3）。
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

// usageError 标记命令行用法错误（退出码 2）。
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func run(args []string, stdout, stderr io.Writer) int {
	// 在任何 ENV 读取前加载工作目录下的 .env（不覆盖已有 ENV）。
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "提示：.env 解析失败（已跳过）：%v\n", err)
	}
	// 变体注册表不变量：启动期校验，失败即为实现缺陷
	if err := registry.Check(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitRuntime
	}
	a := &app{stdout: stdout, stderr: stderr, start: time.Now(), corrID: diag.NewCorrID(), logger: diag.Nop()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := root.ExecuteContext(ctx)
	defer a.logger.Close()
	if err == nil {
		return exitOK
	}
	code := exitCode(err)
	a.logger.Error("cli", string(diag.Classify(err)), err.Error(), &a.start)
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return code
}

func exitCode(err error) int {
	var ce configError
	if errors.As(err, &ce) {
		return exitConfig
	}
	var ue usageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	if diag.Classify(err).IsUsage() {
		return exitUsage
	}
	return exitRuntime
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "surfaces",
		Short: "Parametric surface measures and configuration records",
		Long: `Compute area and volume of closed-form parametric surfaces over a rectangular
domain, export their height fields, and keep an append-only record of every
computed configuration.

Variants: Plano, Paraboloide, Sinusoide, HiperboloideDeUnaHoja, Esfera,
Cilindro, Cono (English names accepted as aliases).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.flagConfig, "config", "", "配置文件路径（JSON）；缺省读取 ./config.json（若存在）")
	pf.StringVar(&a.flagStore, "store", "", "记录存储 StoreID（覆盖配置）")
	pf.IntVar(&a.flagResolution, "resolution", 0, "网格分辨率（覆盖配置）")
	pf.StringVar(&a.flagLocale, "locale", "", "列表数字格式语言（覆盖配置）")
	pf.StringVar(&a.flagLogLevel, "log-level", "", "日志级别 debug|info|warn|error（覆盖配置）")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	root.AddCommand(
		a.variantsCmd(),
		a.computeCmd(),
		a.saveCmd(),
		a.listCmd(),
		a.renderCmd(),
		a.initConfigCmd(),
	)
	return root
}

// loadConfig: 默认 ← JSON（--config / SURFACES_CONFIG_FILE / ./config.json 或 SURFACES_CONFIG_JSON）← ENV ← CLI。
func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations["skip-config"] == "true" {
		return nil
	}
	path := a.flagConfig
	if path == "" {
		path = os.Getenv("SURFACES_CONFIG_FILE")
	}
	var raw []byte
	if s := os.Getenv("SURFACES_CONFIG_JSON"); s != "" {
		raw = []byte(s)
	}
	if path == "" && len(raw) == 0 {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}

	cfg := cfgpkg.Defaults()
	if path != "" || len(raw) > 0 {
		base, err := cfgpkg.LoadJSON(path, raw)
		if err != nil {
			return configError{fmt.Errorf("配置解析失败: %w", err)}
		}
		cfg = cfgpkg.Merge(cfg, base)
	}
	over, err := cfgpkg.EnvOverlay(os.Environ())
	if err != nil {
		return configError{fmt.Errorf("环境变量解析失败: %w", err)}
	}
	cfg = cfgpkg.Merge(cfg, over)
	cfg = cfgpkg.Merge(cfg, cfgpkg.Config{
		Store:      a.flagStore,
		Resolution: a.flagResolution,
		Locale:     a.flagLocale,
		Logging:    cfgpkg.Logging{Level: a.flagLogLevel},
	})
	if err := cfgpkg.Validate(cfg); err != nil {
		_ = dumpConfig(a.stderr, cfg)
		return configError{err}
	}
	a.cfg = cfg
	a.logger = diag.NewLogger(a.corrID, cfg.Logging.Level, cfg.Logging.Dir)
	a.logger.DebugStart("config", "effective", cfg.Store, "", map[string]string{
		"store":      cfg.Components.Store,
		"resolution": fmt.Sprintf("%d", cfg.Resolution),
		"domain_x":   cfg.Domain.X.String(),
		"domain_y":   cfg.Domain.Y.String(),
		"locale":     cfg.Locale,
	})
	return nil
}

// openStore 通过注册表装配存储；返回的 closer 总是可调用。
func (a *app) openStore() (contract.RecordStore, func(), error) {
	st, err := cfgpkg.Assemble(a.cfg)
	if err != nil {
		return nil, func() {}, configError{err}
	}
	closer := func() {}
	if c, ok := st.(io.Closer); ok {
		closer = func() { _ = c.Close() }
	}
	return st, closer, nil
}

func dumpConfig(w io.Writer, c cfgpkg.Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "有效配置:\n%s\n", b)
	return err
}

// parseParams 解析重复的 key=value 标量输入。
func parseParams(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q, want key=value", contract.ErrInvalidParameter, p)
		}
		f, err := parseFloat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", contract.ErrInvalidParameter, k, v)
		}
		if _, dup := out[k]; dup {
			return nil, fmt.Errorf("%w: %s given twice", contract.ErrInvalidParameter, k)
		}
		out[k] = f
	}
	return out, nil
}
