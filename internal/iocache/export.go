package iocache

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/internal/parquet"
)

// ExecuteHistoryExport writes every stored run and prediction to
// <outputFile>.runs.parquet and <outputFile>.predictions.parquet.
func ExecuteHistoryExport(ctx context.Context, store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no history data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total predictions: %d\n", status.TotalPredictions)

	runs, err := store.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	predictions, err := store.ListPredictions(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to retrieve predictions: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runs), runsFile)

	predictionsFile := outputFile + ".predictions.parquet"
	if err := parquet.WritePredictionsParquet(parquet.ConvertPredictionRecords(predictions), predictionsFile); err != nil {
		return fmt.Errorf("failed to write predictions: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d predictions to: %s\n", len(predictions), predictionsFile)
	return nil
}
