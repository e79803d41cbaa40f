package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"cloudguide/internal/errors"
	"cloudguide/internal/logging"
)

const analysisColumns = `id, user_id, title, config, estimates, advisory, trends, input_hash, created_at, updated_at`

// PostgresStore keeps analyses in a PostgreSQL table
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects, verifies the connection and ensures the schema exists
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, errors.New(errors.TypeConfig, "postgres storage requires a DSN")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "open database", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s := NewPostgresStoreWithDB(db)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.TypeConfig, "ping database", err)
	}
	if err := s.CreateTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStoreWithDB wraps an existing connection
func NewPostgresStoreWithDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// CreateTables creates the analyses table and its listing index
func (s *PostgresStore) CreateTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			title VARCHAR(255) NOT NULL,
			config JSONB NOT NULL,
			estimates JSONB NOT NULL,
			advisory JSONB,
			trends JSONB,
			input_hash VARCHAR(64) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS analyses_user_created_idx ON analyses (user_id, created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return errors.Internal("create table", err)
		}
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, a *SavedAnalysis) error {
	if err := prepare(a); err != nil {
		return err
	}

	cols, err := encodeColumns(a)
	if err != nil {
		return err
	}

	query := `INSERT INTO analyses (` + analysisColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = s.db.ExecContext(ctx, query,
		a.ID, a.UserID, a.Title,
		cols.config, cols.estimates, cols.advisory, cols.trends,
		a.InputHash, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return errors.Internal("insert analysis", err)
	}

	logging.Debug("saved analysis", zap.String("id", a.ID), zap.String("user_id", a.UserID))
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*SavedAnalysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE id = $1`

	a, err := scanAnalysis(s.db.QueryRowContext(ctx, query, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *PostgresStore) List(ctx context.Context, filter ListFilter) ([]*SavedAnalysis, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}

	query := `SELECT ` + analysisColumns + ` FROM analyses`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Internal("query analyses", err)
	}
	defer rows.Close()

	results := []*SavedAnalysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal("iterate analyses", err)
	}
	return results, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, patch Patch) (*SavedAnalysis, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := patch.apply(a); err != nil {
		return nil, err
	}

	cols, err := encodeColumns(a)
	if err != nil {
		return nil, err
	}

	query := `UPDATE analyses SET title = $2, config = $3, estimates = $4, trends = $5, input_hash = $6, updated_at = $7 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query,
		a.ID, a.Title, cols.config, cols.estimates, cols.trends, a.InputHash, a.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Internal("update analysis", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, notFound(id)
	}
	return a, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id, userID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errors.Internal("delete analysis", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Internal("delete analysis", err)
	}
	if n == 0 {
		return errors.Newf(errors.TypeNotFound, "analysis not found or unauthorized: %s", id)
	}

	logging.Debug("deleted analysis", zap.String("id", id), zap.String("user_id", userID))
	return nil
}

// Ping verifies the database connection
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// encoded holds JSON columns as text; lib/pq sends []byte as bytea
type encoded struct {
	config    string
	estimates string
	advisory  interface{}
	trends    interface{}
}

func encodeColumns(a *SavedAnalysis) (encoded, error) {
	var out encoded

	config, err := json.Marshal(a.Config)
	if err != nil {
		return out, errors.Internal("marshal config", err)
	}
	estimates, err := json.Marshal(a.Estimates)
	if err != nil {
		return out, errors.Internal("marshal estimates", err)
	}
	out.config = string(config)
	out.estimates = string(estimates)

	if a.Advisory != nil {
		adv, err := json.Marshal(a.Advisory)
		if err != nil {
			return out, errors.Internal("marshal advisory", err)
		}
		out.advisory = string(adv)
	}
	if len(a.Trends) > 0 {
		out.trends = string(a.Trends)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row rowScanner) (*SavedAnalysis, error) {
	var (
		a                                  SavedAnalysis
		config, estimates, advisory, trend []byte
	)
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Title,
		&config,
		&estimates,
		&advisory,
		&trend,
		&a.InputHash,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Internal("scan analysis", err)
	}

	if err := json.Unmarshal(config, &a.Config); err != nil {
		return nil, errors.Parsing("decode config column", err)
	}
	if err := json.Unmarshal(estimates, &a.Estimates); err != nil {
		return nil, errors.Parsing("decode estimates column", err)
	}
	if len(advisory) > 0 {
		if err := json.Unmarshal(advisory, &a.Advisory); err != nil {
			return nil, errors.Parsing("decode advisory column", err)
		}
	}
	if len(trend) > 0 {
		a.Trends = append(json.RawMessage(nil), trend...)
	}
	return &a, nil
}
