package leads

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PgxPool is the subset of pgxpool.Pool used by the repository.
// pgxmock satisfies it in tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row. A replayed submission id returns the id of the
// row already stored for it instead of inserting a duplicate.
func (r *PostgresRepository) Create(ctx context.Context, lead *Lead) (string, error) {
	id := uuid.New()
	query := `
		INSERT INTO leads (id, submission_id, name, email, phone, service, message, source, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (submission_id) DO UPDATE SET submission_id = EXCLUDED.submission_id
		RETURNING id
	`
	var storedID string
	if err := r.pool.QueryRow(ctx, query,
		id,
		lead.SubmissionID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Service,
		lead.Message,
		lead.Source,
		lead.Status,
		lead.SubmittedAt,
	).Scan(&storedID); err != nil {
		return "", fmt.Errorf("leads: insert failed: %w", err)
	}

	return storedID, nil
}

// GetByID fetches a lead by its store-assigned id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	query := `
		SELECT id, submission_id, name, email, phone, service, message, source, status, submitted_at
		FROM leads
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	lead, err := scanLead(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return lead, nil
}

// List returns leads newest-first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, submission_id, name, email, phone, service, message, source, status, submitted_at
		FROM leads
		ORDER BY submitted_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

func scanLead(row pgx.Row) (*Lead, error) {
	var lead Lead
	if err := row.Scan(
		&lead.LeadID,
		&lead.SubmissionID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Service,
		&lead.Message,
		&lead.Source,
		&lead.Status,
		&lead.SubmittedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

var _ Repository = (*PostgresRepository)(nil)
