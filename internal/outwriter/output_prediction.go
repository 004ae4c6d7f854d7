package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/parquet"
	"github.com/huangsam/rankcast/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var predictionCSVHeader = []string{
	"source",
	"current_rank",
	"tier",
	"tier_known",
	"score",
	"label",
	"predicted_change",
	"confidence",
	"promotion",
	"stable",
	"demotion",
	"kda_diff",
	"win_rate_diff",
	"total_matches",
}

// WritePredictionResults outputs rank predictions, dispatching on the configured format.
func WritePredictionResults(results []schema.PredictionResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, predictionCSVHeader, func(cw *csv.Writer) error {
				return writePredictionCSVRows(cw, results, fmtFloat, intFmt)
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			now := time.Now()
			records := make([]schema.PredictionRecord, len(results))
			for i, r := range results {
				records[i] = schema.NewPredictionRecord("", r.Source, now, r.RankPrediction)
			}
			return parquet.WritePredictionsParquet(parquet.ConvertPredictionRecords(records), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePredictionTable(w, results, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writePredictionCSVRows(w *csv.Writer, results []schema.PredictionResult, fmtFloat func(float64) string, intFmt string) error {
	for _, r := range results {
		rec := []string{
			r.Source,
			r.CurrentRank,
			string(r.Tier),
			strconv.FormatBool(r.TierKnown),
			fmtFloat(r.Score),
			contract.GetPlainLabel(r.Score),
			strconv.Itoa(r.Change),
			fmtFloat(r.Confidence),
			fmtFloat(r.Probabilities.Promotion),
			fmtFloat(r.Probabilities.Stable),
			fmtFloat(r.Probabilities.Demotion),
			strconv.FormatFloat(r.Benchmark.KDADifference, 'f', 2, 64),
			fmtFloat(r.Benchmark.WinRateDifference),
			fmt.Sprintf(intFmt, r.Summary.TotalMatches),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writePredictionTable generates and writes the human-readable prediction table.
func writePredictionTable(w io.Writer, results []schema.PredictionResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Source", "Tier", "Score", "Label", "Change", "Conf", "Promote %", "Stable %", "Demote %"}
	if cfg.Explain {
		headers = append(headers, "KDA Δ", "Win Δ", "Explain")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	sourceWidth := getMaxTableTextWidth(cfg, 90)
	var data [][]string
	for _, r := range results {
		tier := string(r.Tier)
		if !r.TierKnown {
			tier += "*"
		}
		row := []string{
			contract.TruncateName(r.Source, sourceWidth),
			tier,
			fmtFloat(r.Score),
			contract.GetColorLabel(r.Score),
			contract.GetColorChangeLabel(r.Change),
			fmtFloat(r.Confidence),
			fmtFloat(r.Probabilities.Promotion),
			fmtFloat(r.Probabilities.Stable),
			fmtFloat(r.Probabilities.Demotion),
		}
		if cfg.Explain {
			row = append(row,
				signed(func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }, r.Benchmark.KDADifference),
				signed(fmtFloat, r.Benchmark.WinRateDifference),
				formatBreakdown(r.Breakdown, fmtFloat),
			)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	for _, r := range results {
		if !r.TierKnown {
			if _, err := fmt.Fprintf(w, "* rank %q is not a known tier, compared against %s\n", r.CurrentRank, r.Tier); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "Predicted %d sources in %v with %d workers. Window: %d\n", len(results), duration, cfg.Workers, cfg.Window)
	return err
}

// formatBreakdown lists each weighted term of the rank score in display order.
func formatBreakdown(breakdown map[schema.WeightKey]float64, fmtFloat func(float64) string) string {
	parts := make([]string, 0, len(schema.AllWeightKeys))
	for _, key := range schema.AllWeightKeys {
		if v, ok := breakdown[key]; ok {
			parts = append(parts, fmt.Sprintf("%s %s", key, fmtFloat(v)))
		}
	}
	return strings.Join(parts, " | ")
}
