package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"surfaces/pkg/contract"
	"surfaces/pkg/registry"
)

func printVariants(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tag := range registry.Tags() {
		e, _ := registry.Lookup(string(tag))
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Tag, e.Label, strings.Join(e.Aliases, ", "))
		for _, p := range e.Params {
			alias := ""
			if len(p.Aliases) > 0 {
				alias = "(" + strings.Join(p.Aliases, ", ") + ")"
			}
			fmt.Fprintf(tw, "  %s\t[%g, %g] step %g default %g\t%s\n", p.Key, p.Min, p.Max, p.Step, p.Default, alias)
		}
	}
	return tw.Flush()
}

func printRecord(w io.Writer, rec contract.Record) error {
	dims, err := json.Marshal(rec.Dimensiones)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Dimensiones: %s\nArea: %s\nVolume: %s\n",
		dims, contract.FormatMeasure(rec.Area), contract.FormatMeasure(rec.Volume))
	return err
}

// printRecords 以表格输出存储记录；数字按 locale 分组与小数点格式化。
func printRecords(w io.Writer, tag language.Tag, recs []contract.Record) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "(sin registros)")
		return err
	}
	p := message.NewPrinter(tag)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\ttipo_superficie\tArea\tVolume\tDimensiones")
	for i, rec := range recs {
		dims, err := json.Marshal(rec.Dimensiones)
		if err != nil {
			return err
		}
		v := rec.Dimensiones.Variant()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.Sprintf("%d", i+1), v, localMeasure(p, rec.Area), localMeasure(p, rec.Volume), dims)
	}
	return tw.Flush()
}

func localMeasure(p *message.Printer, m contract.Measure) string {
	if m.IsInfinite() {
		return contract.InfLiteral
	}
	return p.Sprintf("%.4f", float64(m))
}
