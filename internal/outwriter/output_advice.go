package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/parquet"
	"github.com/huangsam/rankcast/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var adviceCSVHeader = []string{"source", "priority", "category", "area", "current", "target", "tips"}

// WriteAdviceResults outputs improvement areas, dispatching on the configured format.
func WriteAdviceResults(results []schema.AdviceResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, adviceCSVHeader, func(cw *csv.Writer) error {
				return writeAdviceCSVRows(cw, results)
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			var rows []parquet.Advice
			for _, r := range results {
				rows = append(rows, parquet.ConvertAdvice(r.Source, r.Areas)...)
			}
			return parquet.WriteAdviceParquet(rows, path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAdviceText(w, results, cfg)
		}, "Wrote table")
	}
}

func writeAdviceCSVRows(w *csv.Writer, results []schema.AdviceResult) error {
	for _, r := range results {
		for _, a := range r.Areas {
			rec := []string{
				r.Source,
				string(a.Priority),
				string(a.Category),
				a.Area,
				a.Current,
				a.Target,
				strings.Join(a.Tips, "|"),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeAdviceText renders one table per source with the tips wrapped to the terminal.
func writeAdviceText(w io.Writer, results []schema.AdviceResult, cfg *contract.Config) error {
	tipWidth := getMaxTableTextWidth(cfg, 60)
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "🎯 %s\n", r.Source); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Priority", "Area", "Current", "Target", "Tips"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignLeft
		})

		var data [][]string
		for _, a := range r.Areas {
			tips := make([]string, len(a.Tips))
			for i, tip := range a.Tips {
				tips[i] = "- " + contract.TruncateName(tip, tipWidth)
			}
			data = append(data, []string{
				contract.GetColorPriority(a.Priority),
				a.Area,
				a.Current,
				a.Target,
				strings.Join(tips, "\n"),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	return nil
}
