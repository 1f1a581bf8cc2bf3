package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"surfaces/internal/diag"
	"surfaces/internal/render"
	"surfaces/pkg/contract"
	"surfaces/pkg/registry"
)

// surfaceFlags: compute/save/render 共享的曲面输入。
type surfaceFlags struct {
	params    []string
	x, y      string
	unchecked bool
}

func (f *surfaceFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringArrayVarP(&f.params, "param", "p", nil, "标量参数 key=value（可重复）")
	fl.StringVar(&f.x, "x", "", "x 区间 lo,hi（覆盖配置）")
	fl.StringVar(&f.y, "y", "", "y 区间 lo,hi（覆盖配置）")
	fl.BoolVar(&f.unchecked, "unchecked", false, "跳过推荐范围检查（缺失与非有限值仍拒绝）")
}

func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// build 解析输入并经工厂构造曲面。
func (a *app) build(tag string, f *surfaceFlags) (contract.Surface, error) {
	dom := a.cfg.Domain
	if f.x != "" {
		r, err := contract.ParseRange(f.x)
		if err != nil {
			return nil, err
		}
		dom.X = r
	}
	if f.y != "" {
		r, err := contract.ParseRange(f.y)
		if err != nil {
			return nil, err
		}
		dom.Y = r
	}
	in, err := parseParams(f.params)
	if err != nil {
		return nil, err
	}
	opts := []registry.Option{registry.WithResolution(a.cfg.Resolution)}
	if f.unchecked {
		opts = append(opts, registry.WithoutRangeCheck())
	}
	t := a.logger.StartWith("factory", "create", "", tag)
	s, err := registry.Create(tag, dom.X, dom.Y, in, opts...)
	if err != nil {
		a.logger.ErrorWith("factory", string(diag.Classify(err)), err.Error(), t.Since(), "", tag)
		diag.IncError("factory", string(diag.Classify(err)))
		return nil, err
	}
	t.Finish("create", 1)
	diag.IncOp("factory", "create", "success")
	return s, nil
}

func (a *app) variantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "variants",
		Short:       "List surface variants and their parameters",
		Args:        usageArgs(cobra.NoArgs),
		Annotations: map[string]string{"skip-config": "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printVariants(a.stdout)
		},
	}
}

func (a *app) computeCmd() *cobra.Command {
	var f surfaceFlags
	cmd := &cobra.Command{
		Use:   "compute <variant>",
		Short: "Print the parameter report, area and volume of a surface",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.build(args[0], &f)
			if err != nil {
				return err
			}
			return printRecord(a.stdout, contract.RecordOf(s))
		},
	}
	f.bind(cmd)
	return cmd
}

func (a *app) saveCmd() *cobra.Command {
	var f surfaceFlags
	cmd := &cobra.Command{
		Use:   "save <variant>",
		Short: "Compute a surface and append its record to the store",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.build(args[0], &f)
			if err != nil {
				return err
			}
			rec := contract.RecordOf(s)
			if err := printRecord(a.stdout, rec); err != nil {
				return err
			}
			st, closeStore, err := a.openStore()
			defer closeStore()
			if err != nil {
				return err
			}
			id := contract.StoreID(a.cfg.Store)
			t := a.logger.StartWith("store", "append", a.cfg.Store, string(s.Variant()))
			if err := st.Append(cmd.Context(), id, rec); err != nil {
				code := string(diag.Classify(err))
				a.logger.ErrorWith("store", code, err.Error(), t.Since(), a.cfg.Store, string(s.Variant()))
				diag.IncOp("store", "append", "error")
				diag.IncError("store", code)
				return err
			}
			t.Finish("append", 1)
			diag.IncOp("store", "append", "success")
			diag.ObserveDuration("store", "append", time.Since(*t.Since()).Milliseconds())
			fmt.Fprintf(a.stdout, "guardado en %s\n", a.cfg.Store)
			a.logMetrics()
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every stored configuration in append order",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, closeStore, err := a.openStore()
			defer closeStore()
			if err != nil {
				return err
			}
			t0 := time.Now()
			recs, err := st.LoadAll(cmd.Context(), contract.StoreID(a.cfg.Store))
			if err != nil {
				a.logger.ErrorWith("store", string(diag.Classify(err)), err.Error(), &t0, a.cfg.Store, "")
				return err
			}
			a.logger.InfoFinish("store", "load_all", t0, int64(len(recs)))
			return printRecords(a.stdout, a.cfg.Tag(), recs)
		},
	}
}

func (a *app) renderCmd() *cobra.Command {
	var (
		f     surfaceFlags
		out   string
		title string
	)
	cmd := &cobra.Command{
		Use:   "render <variant>",
		Short: "Export the height field of a surface as a PNG heat map",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(out) == "" {
				return usageError{fmt.Errorf("--out is required")}
			}
			s, err := a.build(args[0], &f)
			if err != nil {
				return err
			}
			hf, err := s.HeightField()
			if err != nil {
				return err
			}
			if title == "" {
				title = string(s.Variant())
			}
			var buf bytes.Buffer
			t := a.logger.StartWith("render", "heat_map", "", string(s.Variant()))
			if err := render.HeatMap(&buf, hf, render.Options{Title: title}); err != nil {
				a.logger.ErrorWith("render", string(diag.Classify(err)), err.Error(), t.Since(), "", string(s.Variant()))
				return err
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			t.Finish("heat_map", int64(buf.Len()))
			fmt.Fprintf(a.stdout, "%s\n", out)
			return nil
		},
	}
	f.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "输出 PNG 路径")
	cmd.Flags().StringVar(&title, "title", "", "图标题（缺省为变体标签）")
	return cmd
}

func (a *app) initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "init-config [dir]",
		Short:       "Write default config.json and .env templates (never overwrites)",
		Args:        usageArgs(cobra.MaximumNArgs(1)),
		Annotations: map[string]string{"skip-config": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				dir = strings.TrimSpace(args[0])
			}
			return a.initConfig(dir)
		},
	}
}

func (a *app) logMetrics() {
	kv := map[string]string{}
	for _, m := range diag.Snapshot() {
		kv[m.Name] = strconv.FormatInt(m.Value, 10)
	}
	a.logger.DebugStart("metrics", "snapshot", a.cfg.Store, "", kv)
}
