package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/parquet"
	"github.com/huangsam/rankcast/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var historyCSVHeader = []string{
	"run_id",
	"source",
	"recorded_at",
	"current_rank",
	"tier",
	"predicted_change",
	"overall_score",
	"confidence",
	"promotion",
	"stable",
	"demotion",
	"total_matches",
}

// WriteHistoryRecords outputs stored predictions, dispatching on the configured format.
func WriteHistoryRecords(records []schema.PredictionRecord, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, historyCSVHeader, func(cw *csv.Writer) error {
				for _, r := range records {
					rec := []string{
						r.RunID,
						r.Source,
						r.RecordedAt.Format(contract.DateTimeFormat),
						r.CurrentRank,
						r.Tier,
						strconv.Itoa(int(r.PredictedChange)),
						fmtFloat(r.OverallScore),
						fmtFloat(r.Confidence),
						fmtFloat(r.PromotionChance),
						fmtFloat(r.StableChance),
						fmtFloat(r.DemotionChance),
						fmt.Sprintf(intFmt, r.TotalMatches),
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WritePredictionsParquet(parquet.ConvertPredictionRecords(records), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, records, cfg, fmtFloat)
		}, "Wrote table")
	}
}

func writeHistoryTable(w io.Writer, records []schema.PredictionRecord, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Recorded", "Source", "Rank", "Change", "Score", "Conf"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	sourceWidth := getMaxTableTextWidth(cfg, 70)
	var data [][]string
	for _, r := range records {
		data = append(data, []string{
			r.RecordedAt.Format(contract.DateTimeFormat),
			contract.TruncateName(r.Source, sourceWidth),
			r.CurrentRank,
			contract.GetColorChangeLabel(int(r.PredictedChange)),
			fmtFloat(r.OverallScore),
			fmtFloat(r.Confidence),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d stored predictions. History backend: %s\n", len(records), cfg.HistoryBackend)
	return err
}

// WriteHistoryStatusResult outputs the history store status. Only text and JSON are supported.
func WriteHistoryStatusResult(status schema.HistoryStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeHistoryStatusText(w, status)
	}, "Wrote text")
}

func writeHistoryStatusText(w io.Writer, status schema.HistoryStatus) error {
	connected := contract.WeakColor.Sprint("no")
	if status.Connected {
		connected = contract.ExcellentColor.Sprint("yes")
	}
	lines := []string{
		fmt.Sprintf("Backend: %s", status.Backend),
		fmt.Sprintf("Connected: %s", connected),
		fmt.Sprintf("Total runs: %d", status.TotalRuns),
		fmt.Sprintf("Total predictions: %d", status.TotalPredictions),
	}
	if status.LastRunID != "" {
		lines = append(lines,
			fmt.Sprintf("Last run: %s (%s)", status.LastRunID, status.LastRunTime.Format(contract.DateTimeFormat)),
			fmt.Sprintf("Oldest run: %s", status.OldestRunTime.Format(contract.DateTimeFormat)),
		)
	}
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		lines = append(lines, fmt.Sprintf("Table %s: %d rows", table, status.TableSizes[table]))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
