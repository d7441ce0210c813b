package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/telecom-support/internal/domain"
)

// CatalogRepository encapsulates the service catalog.
type CatalogRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
}

type catalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository instantiates repository.
func NewCatalogRepository(pool *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{pool: pool}
}

func (r *catalogRepository) Create(ctx context.Context, service *domain.Service) error {
	const query = `
        INSERT INTO services (title, service_type, price)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		service.Title,
		service.ServiceType,
		service.Price,
	).Scan(&service.ID, &service.CreatedAt)
}

func (r *catalogRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	const query = `SELECT id, title, service_type, price, created_at FROM services WHERE id=$1`
	var service domain.Service
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.Title,
		&service.ServiceType,
		&service.Price,
		&service.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *catalogRepository) List(ctx context.Context) ([]domain.Service, error) {
	const query = `SELECT id, title, service_type, price, created_at FROM services ORDER BY title`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Service
	for rows.Next() {
		var service domain.Service
		if err := rows.Scan(
			&service.ID,
			&service.Title,
			&service.ServiceType,
			&service.Price,
			&service.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, service)
	}
	return result, rows.Err()
}
