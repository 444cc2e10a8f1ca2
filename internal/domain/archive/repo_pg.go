package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medresus/medresus/internal/domain/caselog"
	"github.com/medresus/medresus/pkg/pagination"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const archCols = `id, case_id, started_at, ended_at, log, created_at`

func (r *repoPG) scanRow(row pgx.Row) (*ArchivedCase, error) {
	var a ArchivedCase
	var logJSON []byte
	if err := row.Scan(&a.ID, &a.CaseID, &a.StartedAt, &a.EndedAt, &logJSON, &a.CreatedAt); err != nil {
		return nil, err
	}
	if len(logJSON) > 0 {
		if err := json.Unmarshal(logJSON, &a.Log); err != nil {
			return nil, fmt.Errorf("decode case log: %w", err)
		}
	}
	if a.Log == nil {
		a.Log = []caselog.Event{}
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *ArchivedCase) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	logJSON, err := json.Marshal(a.Log)
	if err != nil {
		return fmt.Errorf("encode case log: %w", err)
	}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO archived_case (id, case_id, started_at, ended_at, log)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		a.ID, a.CaseID, a.StartedAt, a.EndedAt, logJSON).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert archived case: %w", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id string) (*ArchivedCase, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+archCols+` FROM archived_case WHERE id = $1`, id)
	a, err := r.scanRow(row)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get archived case: %w", err)
	}
	return a, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*ArchivedCase, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM archived_case`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count archived cases: %w", err)
	}

	pg := pagination.Params{Limit: limit, Offset: offset}
	rows, err := r.pool.Query(ctx, `
		SELECT `+archCols+` FROM archived_case
		ORDER BY started_at DESC `+pg.SQL())
	if err != nil {
		return nil, 0, fmt.Errorf("list archived cases: %w", err)
	}
	defer rows.Close()

	var out []*ArchivedCase
	for rows.Next() {
		a, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan archived case: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repoPG) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM archived_case WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete archived case: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
