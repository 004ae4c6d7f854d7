package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/parquet"
	"github.com/huangsam/rankcast/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var summaryCSVHeader = []string{
	"source",
	"total_matches",
	"wins",
	"win_rate",
	"avg_kda",
	"median_kda",
	"kda_stddev",
	"kda_q1",
	"kda_q2",
	"kda_q3",
	"avg_score",
	"consistency",
	"consistency_outcome",
	"trend",
	"trend_slope",
	"trend_r2",
	"trend_confidence",
	"reliability",
}

// WriteSummaryResults outputs performance summaries, dispatching on the configured format.
func WriteSummaryResults(results []schema.SummaryResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, summaryCSVHeader, func(cw *csv.Writer) error {
				return writeSummaryCSVRows(cw, results, fmtFloat, intFmt)
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, func(path string) error {
			rows := make([]parquet.Summary, len(results))
			for i, r := range results {
				rows[i] = parquet.ConvertSummary(r.Source, r.PerformanceSummary)
			}
			return parquet.WriteSummariesParquet(rows, path)
		})
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryText(w, results, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
}

func writeSummaryCSVRows(w *csv.Writer, results []schema.SummaryResult, fmtFloat func(float64) string, intFmt string) error {
	for _, r := range results {
		rec := []string{
			r.Source,
			fmt.Sprintf(intFmt, r.TotalMatches),
			fmt.Sprintf(intFmt, r.Wins),
			fmtFloat(r.WinRate),
			fmtFloat(r.AvgKDA),
			fmtFloat(r.MedianKDA),
			fmtFloat(r.KDAStdDev),
			fmtFloat(r.KDAQuartiles.Q1),
			fmtFloat(r.KDAQuartiles.Q2),
			fmtFloat(r.KDAQuartiles.Q3),
			fmtFloat(r.AvgScore),
			fmtFloat(r.Consistency.Score),
			string(r.Consistency.Outcome),
			string(r.Trend.Kind),
			strconv.FormatFloat(r.Trend.Slope, 'f', 3, 64),
			strconv.FormatFloat(r.Trend.R2, 'f', 3, 64),
			fmtFloat(r.Trend.Confidence),
			fmtFloat(r.Reliability),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeSummaryText renders one metric table and one agent table per source.
func writeSummaryText(w io.Writer, results []schema.SummaryResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	totalMatches := 0
	for _, r := range results {
		totalMatches += r.TotalMatches
		if _, err := fmt.Fprintf(w, "📊 %s (%d matches, reliability %s%%)\n", r.Source, r.TotalMatches, fmtFloat(r.Reliability)); err != nil {
			return err
		}
		if r.IsEmpty() {
			if _, err := fmt.Fprintf(w, "No valid matches.\n\n"); err != nil {
				return err
			}
			continue
		}
		if err := writeSummaryMetricTable(w, r.PerformanceSummary, fmtFloat, intFmt); err != nil {
			return err
		}
		if err := writeAgentTable(w, r.Agents, fmtFloat, intFmt); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Summarized %d sources (%d matches) in %v with %d workers. Window: %d\n",
		len(results), totalMatches, duration, cfg.Workers, cfg.Window)
	return err
}

func writeSummaryMetricTable(w io.Writer, s schema.PerformanceSummary, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value", "Note"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	consistencyNote := string(s.Consistency.Outcome)
	if s.Consistency.Outcome == schema.OkOutcome {
		consistencyNote = contract.GetColorLabel(s.Consistency.Score)
	}
	trendNote := string(s.Trend.Kind)
	if s.Trend.Outcome == schema.OkOutcome {
		trendNote = fmt.Sprintf("%s (r2 %.3f)", s.Trend.Kind, s.Trend.R2)
	}

	data := [][]string{
		{"Matches", fmt.Sprintf(intFmt, s.TotalMatches), ""},
		{"Wins", fmt.Sprintf(intFmt, s.Wins), ""},
		{"Win rate", fmtFloat(s.WinRate) + "%", ""},
		{"Avg KDA", fmtFloat(s.AvgKDA), ""},
		{"Median KDA", fmtFloat(s.MedianKDA), ""},
		{"KDA stddev", fmtFloat(s.KDAStdDev), ""},
		{"KDA Q1 / Q3", fmtFloat(s.KDAQuartiles.Q1) + " / " + fmtFloat(s.KDAQuartiles.Q3), ""},
		{"Avg score", fmtFloat(s.AvgScore), ""},
		{"Consistency", fmtFloat(s.Consistency.Score), consistencyNote},
		{"Trend slope", strconv.FormatFloat(s.Trend.Slope, 'f', 3, 64), trendNote},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeAgentTable(w io.Writer, agents []schema.AgentPerformance, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Agent", "Role", "Matches", "Avg KDA", "Win %", "Efficiency", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, a := range schema.EnrichAgents(agents) {
		data = append(data, []string{
			strconv.Itoa(a.Rank),
			a.AgentID,
			string(a.Role),
			fmt.Sprintf(intFmt, a.Matches),
			fmtFloat(a.AvgKDA),
			fmtFloat(a.WinRate),
			fmtFloat(a.Efficiency),
			contract.GetColorLabel(a.Efficiency),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
