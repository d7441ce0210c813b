package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/telecom-support/internal/domain"
)

// SubscriptionRepository encapsulates client-to-service links.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.ClientService) error
	// ListByClient returns the client's current subscriptions joined with
	// their catalog type and price. Reads live state on every call;
	// valuation must never see stale data.
	ListByClient(ctx context.Context, clientID string) ([]domain.ClientService, error)
	Delete(ctx context.Context, id string) error
}

type subscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository instantiates repository.
func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepository{pool: pool}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.ClientService) error {
	sub.ServiceNumber = generateServiceNumber()
	const query = `
        INSERT INTO client_services (client_id, service_id, service_number)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		sub.ClientID,
		sub.ServiceID,
		sub.ServiceNumber,
	).Scan(&sub.ID, &sub.CreatedAt)
}

func (r *subscriptionRepository) ListByClient(ctx context.Context, clientID string) ([]domain.ClientService, error) {
	const query = `
        SELECT cs.id, cs.client_id, cs.service_id, cs.service_number, cs.created_at,
               s.service_type, s.price
        FROM client_services cs
        JOIN services s ON s.id = cs.service_id
        WHERE cs.client_id = $1
        ORDER BY cs.created_at`
	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ClientService
	for rows.Next() {
		var sub domain.ClientService
		if err := rows.Scan(
			&sub.ID,
			&sub.ClientID,
			&sub.ServiceID,
			&sub.ServiceNumber,
			&sub.CreatedAt,
			&sub.ServiceType,
			&sub.ServicePrice,
		); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}

func (r *subscriptionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM client_services WHERE id=$1`, id)
	return err
}

func generateServiceNumber() string {
	now := time.Now()
	suffix := uuid.NewString()[:6]
	return fmt.Sprintf("SL-%d-%02d-%s", now.Year(), int(now.Month()), suffix)
}
