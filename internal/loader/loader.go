// Package loader reads match records from JSON and CSV files.
package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// StdinPath names standard input as a match source. Its content must be JSON.
const StdinPath = "-"

// CSV column names.
const (
	colKills     = "kills"
	colDeaths    = "deaths"
	colAssists   = "assists"
	colScore     = "score"
	colAgent     = "agent"
	colMap       = "map"
	colMode      = "mode"
	colResult    = "result"
	colTimestamp = "timestamp"
)

// CSVHeader is the canonical column order for CSV match files.
var CSVHeader = []string{colKills, colDeaths, colAssists, colScore, colAgent, colMap, colMode, colResult, colTimestamp}

// FileSource loads match records from the local filesystem.
type FileSource struct {
	stdin  io.Reader
	logger *zap.SugaredLogger
}

// NewFileSource returns a FileSource that reads "-" from os.Stdin.
// A nil logger discards output.
func NewFileSource(logger *zap.SugaredLogger) *FileSource {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &FileSource{stdin: os.Stdin, logger: logger}
}

var _ contract.MatchSource = (*FileSource)(nil)

// Load reads every record in path. The format is chosen by file extension;
// anything other than .csv is parsed as JSON.
func (s *FileSource) Load(ctx context.Context, path string) ([]schema.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		records []schema.MatchRecord
		skipped int
		err     error
	)
	if path == StdinPath {
		records, skipped, err = ReadJSON(s.stdin)
	} else {
		records, skipped, err = readFile(path)
	}
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		s.logger.Debugw("skipped undecodable match records", "path", path, "skipped", skipped, "kept", len(records))
	}
	return records, nil
}

func readFile(path string) ([]schema.MatchRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open match file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		records []schema.MatchRecord
		skipped int
	)
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		records, skipped, err = ReadCSV(f)
	} else {
		records, skipped, err = ReadJSON(f)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return records, skipped, nil
}

// matchEnvelope is the object form of a JSON match file.
type matchEnvelope struct {
	Matches []json.RawMessage `json:"matches"`
}

// ReadJSON decodes either a JSON array of records or an object with a "matches" array.
// Elements are decoded one by one; an element that does not decode into a record
// is skipped and counted. Only a document that is not a match list is an error.
func ReadJSON(r io.Reader) (records []schema.MatchRecord, skipped int, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, 0, errors.New("empty match input")
	}

	var elements []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &elements); err != nil {
			return nil, 0, fmt.Errorf("invalid match array: %w", err)
		}
	} else {
		var env matchEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, 0, fmt.Errorf("invalid match object: %w", err)
		}
		elements = env.Matches
	}

	records = make([]schema.MatchRecord, 0, len(elements))
	for _, raw := range elements {
		var rec schema.MatchRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// ReadCSV decodes a CSV file with a header row. Columns are matched by name,
// case-insensitively, and unknown columns are ignored. A blank or non-integer
// counter cell yields a nil counter so the record is later dropped as malformed.
// Rows with an unparseable score or timestamp are skipped and counted.
func ReadCSV(r io.Reader) (records []schema.MatchRecord, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, errors.New("empty match input")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("invalid CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("invalid CSV row %d: %w", line, err)
		}
		rec, err := parseCSVRow(row, index)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func parseCSVRow(row []string, index map[string]int) (schema.MatchRecord, error) {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rec := schema.MatchRecord{
		Kills:   parseCounter(cell(colKills)),
		Deaths:  parseCounter(cell(colDeaths)),
		Assists: parseCounter(cell(colAssists)),
	}
	var err error
	if s := cell(colScore); s != "" {
		if rec.Score, err = strconv.ParseFloat(s, 64); err != nil {
			return rec, fmt.Errorf("score: %w", err)
		}
	}
	if s := cell(colTimestamp); s != "" {
		if rec.Timestamp, err = time.Parse(time.RFC3339, s); err != nil {
			return rec, fmt.Errorf("timestamp: %w", err)
		}
	}
	if result, err := schema.ParseMatchResult(cell(colResult)); err == nil {
		rec.Result = result
	}
	rec.AgentID = cell(colAgent)
	rec.MapID = cell(colMap)
	rec.GameMode = cell(colMode)
	return rec, nil
}

// parseCounter returns nil for a blank or non-integer cell.
func parseCounter(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// LoadAll loads every path concurrently with at most workers in flight.
// Results keep the order of paths.
func LoadAll(ctx context.Context, source contract.MatchSource, paths []string, workers int) ([][]schema.MatchRecord, error) {
	results := make([][]schema.MatchRecord, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i, path := range paths {
		g.Go(func() error {
			records, err := source.Load(ctx, path)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
