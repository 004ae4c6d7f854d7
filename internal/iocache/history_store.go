package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/huangsam/rankcast/internal/contract"
	"github.com/huangsam/rankcast/schema"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for run history.
const (
	runsTable        = "rankcast_runs"
	predictionsTable = "rankcast_predictions"
)

// sqliteTimeFormat is fixed width so that stored times sort lexically.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// HistoryStoreImpl implements the HistoryStore interface on database/sql.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// driverName returns the database/sql driver registered for a backend.
func driverName(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// openDB opens and pings a database for a backend. An empty SQLite
// connection string falls back to the default history file.
func openDB(ctx context.Context, backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	name, err := driverName(backend)
	if err != nil {
		return nil, err
	}

	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			connStr = contract.GetHistoryDBFilePath()
		}
	case schema.MySQLBackend:
		// Native DATETIME scanning needs parseTime
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return nil, fmt.Errorf("invalid MySQL connection string: %w. Expected format: user:password@tcp(host:port)/dbname", err)
		}
		cfg.ParseTime = true
		connStr = cfg.FormatDSN()
	}

	db, err := sql.Open(name, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and the connection string is correct", backend, err)
	}
	return db, nil
}

// NewHistoryStore creates a HistoryStore with the specified backend.
// The none backend returns a store that records nothing.
func NewHistoryStore(ctx context.Context, backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend || backend == "" {
		return &HistoryStoreImpl{backend: schema.NoneBackend}, nil
	}

	db, err := openDB(ctx, backend, connStr)
	if err != nil {
		return nil, err
	}
	if err := createHistoryTables(ctx, db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}
	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables applies every embedded up migration. Each one is an
// idempotent CREATE TABLE IF NOT EXISTS statement.
func createHistoryTables(ctx context.Context, db *sql.DB, backend schema.DatabaseBackend) error {
	dir, err := migrationsDir(backend)
	if err != nil {
		return err
	}
	files, err := fs.Glob(migrationsFS, path.Join(dir, "*.up.sql"))
	if err != nil {
		return err
	}
	slices.Sort(files)
	for _, file := range files {
		query, err := migrationsFS.ReadFile(file)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(query)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", path.Base(file), err)
		}
	}
	return nil
}

// quoteTableName quotes a table name for the backend dialect.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// rebind rewrites ? placeholders as $n for PostgreSQL.
func rebind(query string, backend schema.DatabaseBackend) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatTime converts a time.Time to the storage format of the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.UTC().Format(sqliteTimeFormat)
	}
	return t
}

// timeScanner scans a stored time for any backend.
type timeScanner struct {
	backend schema.DatabaseBackend
	str     sql.NullString
	native  sql.NullTime
}

func (ts *timeScanner) dest() any {
	if ts.backend == schema.SQLiteBackend {
		return &ts.str
	}
	return &ts.native
}

func (ts *timeScanner) value() (*time.Time, error) {
	if ts.backend == schema.SQLiteBackend {
		if !ts.str.Valid {
			return nil, nil
		}
		t, err := time.Parse(sqliteTimeFormat, ts.str.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored time %q: %w", ts.str.String, err)
		}
		return &t, nil
	}
	if !ts.native.Valid {
		return nil, nil
	}
	t := ts.native.Time
	return &t, nil
}

func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

func (hs *HistoryStoreImpl) table(name string) string {
	return quoteTableName(name, hs.backend)
}

// BeginRun creates a new run and returns its UUID.
func (hs *HistoryStoreImpl) BeginRun(ctx context.Context, command string, startTime time.Time, configParams map[string]any) (string, error) {
	if hs.disabled() {
		return "", nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config params: %w", err)
	}

	runID := uuid.NewString()
	query := rebind(fmt.Sprintf(`INSERT INTO %s (run_id, command, start_time, total_matches, config_params) VALUES (?, ?, ?, 0, ?)`,
		hs.table(runsTable)), hs.backend)
	if _, err := hs.db.ExecContext(ctx, query, runID, command, formatTime(startTime, hs.backend), string(configJSON)); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(ctx context.Context, runID string, endTime time.Time, totalMatches int) error {
	if hs.disabled() {
		return nil
	}

	query := rebind(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, hs.table(runsTable)), hs.backend)
	start := timeScanner{backend: hs.backend}
	if err := hs.db.QueryRowContext(ctx, query, runID).Scan(start.dest()); err != nil {
		return fmt.Errorf("failed to get start_time for run %s: %w", runID, err)
	}
	startTime, err := start.value()
	if err != nil {
		return err
	}
	if startTime == nil {
		return fmt.Errorf("run %s has no start_time", runID)
	}

	durationMs := endTime.Sub(*startTime).Milliseconds()
	update := rebind(fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_matches = ? WHERE run_id = ?`,
		hs.table(runsTable)), hs.backend)
	if _, err := hs.db.ExecContext(ctx, update, formatTime(endTime, hs.backend), durationMs, totalMatches, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordPrediction stores one rank prediction for a run.
func (hs *HistoryStoreImpl) RecordPrediction(ctx context.Context, runID string, source string, prediction schema.RankPrediction) error {
	if hs.disabled() {
		return nil
	}

	r := schema.NewPredictionRecord(runID, source, time.Now(), prediction)
	query := rebind(fmt.Sprintf(`
		INSERT INTO %s (run_id, source, recorded_at, current_rank, tier, predicted_change,
		                overall_score, confidence, promotion, stable, demotion,
		                total_matches, avg_kda, win_rate, consistency, trend)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, hs.table(predictionsTable)), hs.backend)
	_, err := hs.db.ExecContext(ctx, query,
		r.RunID, r.Source, formatTime(r.RecordedAt, hs.backend), r.CurrentRank, r.Tier, r.PredictedChange,
		r.OverallScore, r.Confidence, r.PromotionChance, r.StableChance, r.DemotionChance,
		r.TotalMatches, r.AvgKDA, r.WinRate, r.ConsistencyScore, r.Trend,
	)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	return nil
}

// ListPredictions returns stored predictions, newest first. A non-positive
// limit returns every prediction.
func (hs *HistoryStoreImpl) ListPredictions(ctx context.Context, limit int) ([]schema.PredictionRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT run_id, source, recorded_at, current_rank, tier, predicted_change,
		       overall_score, confidence, promotion, stable, demotion,
		       total_matches, avg_kda, win_rate, consistency, trend
		FROM %s ORDER BY recorded_at DESC, source ASC`, hs.table(predictionsTable))
	if limit > 0 {
		query += " LIMIT " + strconv.Itoa(limit)
	}

	rows, err := hs.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PredictionRecord
	for rows.Next() {
		var r schema.PredictionRecord
		recorded := timeScanner{backend: hs.backend}
		if err := rows.Scan(&r.RunID, &r.Source, recorded.dest(), &r.CurrentRank, &r.Tier, &r.PredictedChange,
			&r.OverallScore, &r.Confidence, &r.PromotionChance, &r.StableChance, &r.DemotionChance,
			&r.TotalMatches, &r.AvgKDA, &r.WinRate, &r.ConsistencyScore, &r.Trend); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		t, err := recorded.value()
		if err != nil {
			return nil, err
		}
		if t != nil {
			r.RecordedAt = *t
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating predictions: %w", err)
	}
	return results, nil
}

// ListRuns returns every stored run in start order.
func (hs *HistoryStoreImpl) ListRuns(ctx context.Context) ([]schema.RunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, command, start_time, end_time, run_duration_ms, total_matches, config_params
		FROM %s ORDER BY start_time ASC`, hs.table(runsTable))
	rows, err := hs.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var r schema.RunRecord
		start := timeScanner{backend: hs.backend}
		end := timeScanner{backend: hs.backend}
		if err := rows.Scan(&r.RunID, &r.Command, start.dest(), end.dest(), &r.RunDurationMs, &r.TotalMatches, &r.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		startTime, err := start.value()
		if err != nil {
			return nil, err
		}
		if startTime != nil {
			r.StartTime = *startTime
		}
		if r.EndTime, err = end.value(); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus(ctx context.Context) (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.disabled() {
		return status, nil
	}

	for _, table := range []string{runsTable, predictionsTable} {
		var count int64
		if err := hs.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", hs.table(table))).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalRuns = int(status.TableSizes[runsTable])
	status.TotalPredictions = int(status.TableSizes[predictionsTable])

	if status.TotalRuns == 0 {
		return status, nil
	}

	last := timeScanner{backend: hs.backend}
	lastQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY start_time DESC LIMIT 1", hs.table(runsTable))
	if err := hs.db.QueryRowContext(ctx, lastQuery).Scan(&status.LastRunID, last.dest()); err != nil {
		return status, fmt.Errorf("failed to get last run info: %w", err)
	}
	if t, err := last.value(); err != nil {
		return status, err
	} else if t != nil {
		status.LastRunTime = *t
	}

	oldest := timeScanner{backend: hs.backend}
	oldestQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY start_time ASC LIMIT 1", hs.table(runsTable))
	if err := hs.db.QueryRowContext(ctx, oldestQuery).Scan(oldest.dest()); err != nil {
		return status, fmt.Errorf("failed to get oldest run time: %w", err)
	}
	if t, err := oldest.value(); err != nil {
		return status, err
	} else if t != nil {
		status.OldestRunTime = *t
	}

	return status, nil
}

// Clear removes every run and prediction.
func (hs *HistoryStoreImpl) Clear(ctx context.Context) error {
	if hs.disabled() {
		return nil
	}
	for _, table := range []string{predictionsTable, runsTable} {
		if _, err := hs.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", hs.table(table))); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}
