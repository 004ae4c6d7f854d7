package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/parquet"
	"github.com/huangsam/rankcast/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var synergyCSVHeader = []string{"agent_a", "agent_b", "score", "default"}

// WriteSynergyReport outputs a team synergy report, dispatching on the configured format.
// CSV and Parquet carry the pair table only.
func WriteSynergyReport(report schema.SynergyReport, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, synergyCSVHeader, func(cw *csv.Writer) error {
				for _, p := range report.Pairs {
					rec := []string{p.A, p.B, strconv.FormatFloat(p.Score, 'f', 2, 64), strconv.FormatBool(p.Default)}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteSynergyParquet(parquet.ConvertSynergyPairs(report.Pairs), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSynergyText(w, report, cfg, fmtFloat, intFmt)
		}, "Wrote table")
	}
}

// getColorRating colors a synergy rating for console output.
func getColorRating(rating string) string {
	switch rating {
	case "excellent":
		return contract.ExcellentColor.Sprint(rating)
	case "great", "good":
		return contract.StrongColor.Sprint(rating)
	case "fair":
		return contract.AverageColor.Sprint(rating)
	default:
		return contract.WeakColor.Sprint(rating)
	}
}

func writeSynergyText(w io.Writer, report schema.SynergyReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	header := fmt.Sprintf("🤝 Roster: %s (%d agents)", schema.FormatRoster(report.Roster), report.Size)
	if report.Score != nil {
		header += fmt.Sprintf(", synergy %s (%s)", fmtFloat(*report.Score), getColorRating(report.Rating))
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	if len(report.Pairs) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Agent", "Agent", "Synergy", "Source"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, p := range report.Pairs {
			source := "table"
			if p.Default {
				source = "default"
			}
			data = append(data, []string{p.A, p.B, strconv.FormatFloat(p.Score, 'f', 2, 64), source})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	roles := tablewriter.NewWriter(w)
	roles.Header([]string{"Role", "Count", "Optimal", "Share %"})
	roles.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, rc := range report.Roles {
		data = append(data, []string{
			string(rc.Role),
			fmt.Sprintf(intFmt, rc.Count),
			fmt.Sprintf(intFmt, rc.Optimal),
			fmtFloat(rc.Percentage),
		})
	}
	if err := roles.Bulk(data); err != nil {
		return err
	}
	if err := roles.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Balance: %s\n", fmtFloat(report.BalanceScore)); err != nil {
		return err
	}
	if len(report.UnknownAgents) > 0 {
		if _, err := fmt.Fprintf(w, "Unknown agents: %s\n", strings.Join(report.UnknownAgents, ", ")); err != nil {
			return err
		}
	}
	width := getMaxTableTextWidth(cfg, 0)
	for _, rec := range report.Recommendations {
		if _, err := fmt.Fprintf(w, "%s %s\n", color.CyanString("→"), contract.TruncateName(rec, width)); err != nil {
			return err
		}
	}
	return nil
}
