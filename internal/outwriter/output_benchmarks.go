package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/parquet"
	"github.com/huangsam/rankcast/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// benchmarksJSON is the JSON shape of the benchmarks command.
type benchmarksJSON struct {
	*schema.BenchmarksRenderModel
	TierFit []schema.TierFitResult `json:"tierFit,omitempty"`
}

// WriteBenchmarksDefinitions outputs the tier table and formulas, dispatching on the configured format.
// CSV and Parquet carry the tier rows only.
func WriteBenchmarksDefinitions(model *schema.BenchmarksRenderModel, fits []schema.TierFitResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, benchmarksJSON{BenchmarksRenderModel: model, TierFit: fits})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"tier", "expected_kda", "expected_win_rate"}, func(cw *csv.Writer) error {
				for _, row := range model.Tiers {
					rec := []string{
						string(row.Tier),
						strconv.FormatFloat(row.ExpectedKDA, 'f', 2, 64),
						fmtFloat(row.ExpectedWinRate),
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
			return parquet.WriteTiersParquet(parquet.ConvertTiers(model.Tiers), path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBenchmarksText(w, model, fits, fmtFloat)
		}, "Wrote text")
	}
}

func writeBenchmarksText(w io.Writer, model *schema.BenchmarksRenderModel, fits []schema.TierFitResult, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "🏆 %s\n%s\n", model.Title, strings.Repeat("=", len(model.Title)+3)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Tier", "Expected KDA", "Expected Win %"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, row := range model.Tiers {
		data = append(data, []string{
			string(row.Tier),
			strconv.FormatFloat(row.ExpectedKDA, 'f', 2, 64),
			fmtFloat(row.ExpectedWinRate),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for _, f := range model.Formulas {
		if _, err := fmt.Fprintf(w, "%s: %s\n   Formula: %s\n", f.Name, f.Purpose, f.Formula); err != nil {
			return err
		}
	}

	for _, result := range fits {
		if err := writeTierFitTable(w, result, fmtFloat); err != nil {
			return err
		}
	}
	return nil
}

func writeTierFitTable(w io.Writer, result schema.TierFitResult, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "\n📐 Tier fit for %s\n", result.Source); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Tier", "Fit", "KDA Δ", "Win Δ"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, f := range result.Fits {
		label := f.Label
		switch label {
		case "Fit":
			label = contract.ExcellentColor.Sprint(label)
		case "Below":
			label = contract.WeakColor.Sprint(label)
		default:
			label = contract.StrongColor.Sprint(label)
		}
		data = append(data, []string{
			string(f.Tier),
			label,
			signed(func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }, f.KDADifference),
			signed(fmtFloat, f.WinRateDifference),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// BuildBenchmarksRenderModel constructs the render model from the active engine tables.
func BuildBenchmarksRenderModel(rows []schema.TierBenchmarkRow, weights map[schema.WeightKey]float64, params schema.PredictionParams) *schema.BenchmarksRenderModel {
	terms := make([]string, 0, len(schema.AllWeightKeys))
	for _, key := range schema.AllWeightKeys {
		terms = append(terms, fmt.Sprintf("%.2f*%s", weights[key], key))
	}
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	return &schema.BenchmarksRenderModel{
		Title:      "Rank Benchmarks",
		Tiers:      rows,
		Weights:    weights,
		Prediction: params,
		Formulas: []schema.FormulaDefinition{
			{
				Name:    "score",
				Purpose: "Weighted rank score of the recent window",
				Formula: strings.Join(terms, " + "),
			},
			{
				Name:    "change",
				Purpose: "Predicted rank change",
				Formula: fmt.Sprintf("+1 if score > %s, -1 if score < %s, else 0", num(params.PromoteAbove), num(params.DemoteBelow)),
			},
			{
				Name:    "confidence",
				Purpose: "Distance of the score from neutral",
				Formula: "min(100, |score - 50| * 2)",
			},
			{
				Name:    "promotion",
				Purpose: "Chance of moving up a tier",
				Formula: fmt.Sprintf("min(%s, %s * min(2, kda/expected_kda) * min(2, win_rate/expected_win_rate) * consistency)", num(params.PromotionCap), num(params.PromotionBase)),
			},
			{
				Name:    "demotion",
				Purpose: "Chance of moving down a tier",
				Formula: fmt.Sprintf("min(%s, (max(0, 1 - kda/expected_kda) + max(0, 1 - win_rate/expected_win_rate)) * 50)", num(params.DemotionCap)),
			},
			{
				Name:    "stable",
				Purpose: "Chance of staying in the tier",
				Formula: fmt.Sprintf("clamp(100 - promotion - demotion, %s, 100)", num(params.StableFloor)),
			},
			{
				Name:    "consistency",
				Purpose: "Inverse coefficient of variation of KDA",
				Formula: "clamp(100 - stddev(kda)/mean(kda) * 100, 0, 100)",
			},
		},
	}
}
