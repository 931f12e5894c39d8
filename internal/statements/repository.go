package statements

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository provides PostgreSQL backed persistence for processing runs.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// InsertRun stores a run with its serialized result.
func (r *PGRepository) InsertRun(ctx context.Context, run Run) error {
	payload, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("statements: marshal result: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO statement_runs (id, source_file, result, created_at) VALUES ($1, $2, $3, $4)`,
		run.ID, run.SourceFile, payload, run.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("statements: run %s already exists", run.ID)
		}
		return err
	}
	return nil
}

// GetRun fetches a run by id.
func (r *PGRepository) GetRun(ctx context.Context, id uuid.UUID) (Run, error) {
	var (
		run     Run
		payload []byte
		pdfPath *string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT id, source_file, result, pdf_path, created_at FROM statement_runs WHERE id = $1`,
		id).Scan(&run.ID, &run.SourceFile, &payload, &pdfPath, &run.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Run{}, ErrRunNotFound
		}
		return Run{}, err
	}
	if err := json.Unmarshal(payload, &run.Result); err != nil {
		return Run{}, fmt.Errorf("statements: unmarshal result: %w", err)
	}
	if pdfPath != nil {
		run.PDFPath = *pdfPath
	}
	return run, nil
}

// ListRuns returns the most recent runs without their full results.
func (r *PGRepository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, source_file, result, pdf_path, created_at FROM statement_runs ORDER BY created_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			payload []byte
			pdfPath *string
		)
		if err := rows.Scan(&run.ID, &run.SourceFile, &payload, &pdfPath, &run.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, &run.Result); err != nil {
			return nil, fmt.Errorf("statements: unmarshal result: %w", err)
		}
		if pdfPath != nil {
			run.PDFPath = *pdfPath
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// UpdateRunPDF records the rendered report location.
func (r *PGRepository) UpdateRunPDF(ctx context.Context, id uuid.UUID, path string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE statement_runs SET pdf_path = $2 WHERE id = $1`, id, path)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRunNotFound
	}
	return nil
}
