package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/telecom-support/internal/domain"
)

// EngineerRepository encapsulates engineer persistence.
type EngineerRepository interface {
	Create(ctx context.Context, engineer *domain.Engineer) error
	GetByID(ctx context.Context, id string) (*domain.Engineer, error)
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context) ([]domain.Engineer, error)
	// ListActiveWithLoad returns active engineers with their derived
	// open-ticket counts, ordered by load ascending with creation time
	// then id as deterministic tie-breaks.
	ListActiveWithLoad(ctx context.Context) ([]domain.EngineerLoad, error)
	// ActiveTicketCount derives the engineer's current load.
	ActiveTicketCount(ctx context.Context, engineerID string) (int, error)
}

type engineerRepository struct {
	pool *pgxpool.Pool
}

// NewEngineerRepository instantiates repository.
func NewEngineerRepository(pool *pgxpool.Pool) EngineerRepository {
	return &engineerRepository{pool: pool}
}

func (r *engineerRepository) Create(ctx context.Context, engineer *domain.Engineer) error {
	const query = `
        INSERT INTO engineers (full_name, is_active)
        VALUES ($1,$2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		engineer.FullName,
		engineer.IsActive,
	).Scan(&engineer.ID, &engineer.CreatedAt)
}

func (r *engineerRepository) GetByID(ctx context.Context, id string) (*domain.Engineer, error) {
	const query = `SELECT id, full_name, is_active, created_at FROM engineers WHERE id=$1`
	var engineer domain.Engineer
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&engineer.ID,
		&engineer.FullName,
		&engineer.IsActive,
		&engineer.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &engineer, nil
}

func (r *engineerRepository) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE engineers SET is_active=$1 WHERE id=$2`, active, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *engineerRepository) List(ctx context.Context) ([]domain.Engineer, error) {
	const query = `SELECT id, full_name, is_active, created_at FROM engineers ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Engineer
	for rows.Next() {
		var engineer domain.Engineer
		if err := rows.Scan(&engineer.ID, &engineer.FullName, &engineer.IsActive, &engineer.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, engineer)
	}
	return result, rows.Err()
}

func (r *engineerRepository) ListActiveWithLoad(ctx context.Context) ([]domain.EngineerLoad, error) {
	const query = `
        SELECT e.id, e.full_name, e.is_active, e.created_at,
               COUNT(t.id) FILTER (WHERE t.status IN ('new','in_progress')) AS active_tickets
        FROM engineers e
        LEFT JOIN tickets t ON t.engineer_id = e.id
        WHERE e.is_active
        GROUP BY e.id
        ORDER BY active_tickets, e.created_at, e.id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EngineerLoad
	for rows.Next() {
		var load domain.EngineerLoad
		if err := rows.Scan(
			&load.Engineer.ID,
			&load.Engineer.FullName,
			&load.Engineer.IsActive,
			&load.Engineer.CreatedAt,
			&load.ActiveTickets,
		); err != nil {
			return nil, err
		}
		result = append(result, load)
	}
	return result, rows.Err()
}

func (r *engineerRepository) ActiveTicketCount(ctx context.Context, engineerID string) (int, error) {
	const query = `
        SELECT COUNT(*) FROM tickets
        WHERE engineer_id=$1 AND status IN ('new','in_progress')`
	var count int
	if err := r.pool.QueryRow(ctx, query, engineerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
