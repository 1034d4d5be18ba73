// Package sqlite stores size charts in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/ukaji3/sizegrid-go/internal/logging"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
)

//go:embed schema/schema.sql
var schemaSQL string

const busyTimeout = 5000 // milliseconds

// ErrNotFound indicates no chart exists with the requested id.
var ErrNotFound = errors.New("size chart not found")

// Summary is a listing entry for a stored chart.
type Summary struct {
	ID        string
	Name      string
	Market    string
	Unit      string
	UpdatedAt time.Time
}

// Store implements sizegrid.Gateway on SQLite.
type Store struct {
	conn *sql.DB
	log  zerolog.Logger
	now  func() time.Time
}

var _ sizegrid.Gateway = (*Store)(nil)

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", path, busyTimeout)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{
		conn: conn,
		log:  logging.Component("store"),
		now:  time.Now,
	}

	ctx := context.Background()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s.log.Debug().Str("path", path).Msg("database opened")
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Load returns the chart stored under id. Returns ErrNotFound if not found.
func (s *Store) Load(ctx context.Context, id string) (models.ChartData, error) {
	var (
		chart  models.ChartData
		tables [4]string
	)

	row := s.conn.QueryRowContext(ctx, `
		SELECT name, market, unit, measurements, grading_rules, tolerance, size_conversion
		FROM size_charts WHERE id = ?`, id)
	err := row.Scan(&chart.Name, &chart.Market, &chart.Unit, &tables[0], &tables[1], &tables[2], &tables[3])
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChartData{}, ErrNotFound
	}
	if err != nil {
		return models.ChartData{}, fmt.Errorf("failed to load chart: %w", err)
	}

	for i, shape := range models.Shapes {
		var t models.Table
		if err := json.Unmarshal([]byte(tables[i]), &t); err != nil {
			return models.ChartData{}, fmt.Errorf("failed to decode %s: %w", shape, err)
		}
		chart.SetTable(shape, t)
	}

	return chart, nil
}

// Save stores payload. An empty id creates a new chart with a fresh id;
// an unknown id returns ErrNotFound.
func (s *Store) Save(ctx context.Context, id string, payload models.ChartData) (string, error) {
	var tables [4]string
	for i, shape := range models.Shapes {
		data, err := json.Marshal(payload.Table(shape))
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", shape, err)
		}
		tables[i] = string(data)
	}
	now := s.now().UnixNano()

	if id == "" {
		id = uuid.NewString()
		_, err := s.conn.ExecContext(ctx, `
			INSERT INTO size_charts
				(id, name, market, unit, measurements, grading_rules, tolerance, size_conversion, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, payload.Name, payload.Market, payload.Unit,
			tables[0], tables[1], tables[2], tables[3], now, now)
		if err != nil {
			return "", fmt.Errorf("failed to create chart: %w", err)
		}
		s.log.Debug().Str("chart", id).Msg("chart created")
		return id, nil
	}

	res, err := s.conn.ExecContext(ctx, `
		UPDATE size_charts
		SET name = ?, market = ?, unit = ?,
			measurements = ?, grading_rules = ?, tolerance = ?, size_conversion = ?,
			updated_at = ?
		WHERE id = ?`,
		payload.Name, payload.Market, payload.Unit,
		tables[0], tables[1], tables[2], tables[3], now, id)
	if err != nil {
		return "", fmt.Errorf("failed to update chart: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to update chart: %w", err)
	}
	if n == 0 {
		return "", ErrNotFound
	}

	s.log.Debug().Str("chart", id).Msg("chart updated")
	return id, nil
}

// List returns all charts, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, name, market, unit, updated_at
		FROM size_charts ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list charts: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			updated int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Market, &sum.Unit, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan chart: %w", err)
		}
		sum.UpdatedAt = time.Unix(0, updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a chart. Returns ErrNotFound if not found.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM size_charts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete chart: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete chart: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
