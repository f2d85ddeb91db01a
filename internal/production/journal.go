package production

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/comalice/navperf/internal/primitives"
)

//go:embed schema.sql
var journalSchema string

// Record is one journaled event.
type Record struct {
	Seq        int64
	Generation string
	Kind       primitives.Kind
	Screen     string
	Name       string
	Duration   *float64
	Event      primitives.Event
	RecordedAt time.Time
}

// Journal appends performance events to an SQLite database so runs can be
// compared after the process exits.
type Journal struct {
	sqlDB  *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// OpenJournal opens the journal at path, creating the schema if needed.
// ":memory:" opens a private in-memory journal.
func OpenJournal(path string, logger *slog.Logger) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	dsn := ":memory:"
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// An in-memory database lives and dies with its connection.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(journalSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Journal{sqlDB: sqlDB, logger: logger, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (j *Journal) Close() error {
	if j == nil || j.sqlDB == nil {
		return nil
	}
	return j.sqlDB.Close()
}

// Append stores evt under generation.
func (j *Journal) Append(ctx context.Context, generation string, evt primitives.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if j == nil || j.sqlDB == nil {
		return fmt.Errorf("journal is not configured")
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode %s: %w", evt.Kind(), err)
	}

	var (
		name     string
		duration sql.NullFloat64
	)
	if m, ok := primitives.MeasureOf(evt); ok {
		name = m.Name
		duration = sql.NullFloat64{Float64: m.Duration, Valid: true}
	}
	if nm, ok := evt.(primitives.NativeMark); ok {
		name = nm.Entry.Name
	}

	_, err = j.sqlDB.ExecContext(
		ctx,
		`INSERT INTO perf_events (generation, kind, screen, name, duration_ms, payload, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		generation,
		string(evt.Kind()),
		primitives.Screen(evt),
		name,
		duration,
		string(payload),
		toMillis(j.now()),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Listener returns a listener that appends every event under the generation
// reported at delivery time.
func (j *Journal) Listener(generation func() string) primitives.Listener {
	return func(evt primitives.Event) error {
		return j.Append(context.Background(), generation(), evt)
	}
}

// Query selects journaled events. Zero fields match everything.
type Query struct {
	Generation string
	Kind       primitives.Kind
	Screen     string
	Limit      int
}

// Events returns the records matching q in append order.
func (j *Journal) Events(ctx context.Context, q Query) ([]Record, error) {
	if j == nil || j.sqlDB == nil {
		return nil, fmt.Errorf("journal is not configured")
	}
	var (
		where []string
		args  []any
	)
	if q.Generation != "" {
		where = append(where, "generation = ?")
		args = append(args, q.Generation)
	}
	if q.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(q.Kind))
	}
	if q.Screen != "" {
		where = append(where, "screen = ?")
		args = append(args, q.Screen)
	}
	stmt := `SELECT seq, generation, kind, screen, name, duration_ms, payload, recorded_at FROM perf_events`
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY seq"
	if q.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := j.sqlDB.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec        Record
			kind       string
			duration   sql.NullFloat64
			payload    string
			recordedAt int64
		)
		if err := rows.Scan(&rec.Seq, &rec.Generation, &kind, &rec.Screen, &rec.Name, &duration, &payload, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec.Kind = primitives.Kind(kind)
		rec.RecordedAt = fromMillis(recordedAt)
		if duration.Valid {
			d := duration.Float64
			rec.Duration = &d
		}
		evt, err := primitives.DecodeEvent(rec.Kind, []byte(payload))
		if err != nil {
			if errors.Is(err, primitives.ErrUnknownKind) {
				j.logger.Warn("skipping journaled event", "seq", rec.Seq, "kind", kind)
				continue
			}
			return nil, err
		}
		rec.Event = evt
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// ScreenStats summarises the screen transitions recorded for one screen.
type ScreenStats struct {
	Screen string
	Count  int
	Mean   float64
	Max    float64
}

// TransitionStats aggregates navigationComplete durations per screen.
// An empty generation aggregates across all runs.
func (j *Journal) TransitionStats(ctx context.Context, generation string) ([]ScreenStats, error) {
	if j == nil || j.sqlDB == nil {
		return nil, fmt.Errorf("journal is not configured")
	}
	rows, err := j.sqlDB.QueryContext(
		ctx,
		`SELECT screen, COUNT(*), AVG(duration_ms), MAX(duration_ms)
		   FROM perf_events
		  WHERE kind = ? AND (? = '' OR generation = ?)
		  GROUP BY screen
		  ORDER BY screen`,
		string(primitives.KindNavigationComplete),
		generation,
		generation,
	)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var out []ScreenStats
	for rows.Next() {
		var s ScreenStats
		var mean, maxDur sql.NullFloat64
		if err := rows.Scan(&s.Screen, &s.Count, &mean, &maxDur); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		s.Mean = mean.Float64
		s.Max = maxDur.Float64
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats: %w", err)
	}
	return out, nil
}
