package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/telecom-support/internal/domain"
)

// ClientSpend pairs a client id with its live subscription total.
type ClientSpend struct {
	ClientID string
	Total    decimal.Decimal
}

// ClientRepository encapsulates client persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Client, error)
	List(ctx context.Context, limit, offset int) ([]domain.Client, error)
	// SpendTotals returns one row per client in the system with the sum of
	// its current subscription prices. Clients without subscriptions are
	// included with a zero total so percentile ranking sees the full
	// population.
	SpendTotals(ctx context.Context) ([]ClientSpend, error)
	// SpendTotal returns the live subscription total for one client.
	SpendTotal(ctx context.Context, clientID string) (decimal.Decimal, error)
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository instantiates repository.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clients (full_name, phone_number, email, service_address, age, is_company)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, account_number, created_at`
	return r.pool.QueryRow(ctx, query,
		client.FullName,
		client.PhoneNumber,
		client.Email,
		client.ServiceAddress,
		client.Age,
		client.IsCompany,
	).Scan(&client.ID, &client.AccountNumber, &client.CreatedAt)
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	const query = `
        SELECT id, full_name, account_number, phone_number, email, service_address, age, is_company, created_at
        FROM clients WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *clientRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Client, error) {
	const query = `
        SELECT id, full_name, account_number, phone_number, email, service_address, age, is_company, created_at
        FROM clients WHERE account_number=$1`
	return r.fetchSingle(ctx, query, accountNumber)
}

func (r *clientRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Client, error) {
	var client domain.Client
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&client.ID,
		&client.FullName,
		&client.AccountNumber,
		&client.PhoneNumber,
		&client.Email,
		&client.ServiceAddress,
		&client.Age,
		&client.IsCompany,
		&client.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, full_name, account_number, phone_number, email, service_address, age, is_company, created_at
        FROM clients ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClients(rows)
}

func (r *clientRepository) SpendTotals(ctx context.Context) ([]ClientSpend, error) {
	const query = `
        SELECT c.id, COALESCE(SUM(s.price), 0)
        FROM clients c
        LEFT JOIN client_services cs ON cs.client_id = c.id
        LEFT JOIN services s ON s.id = cs.service_id
        GROUP BY c.id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ClientSpend
	for rows.Next() {
		var spend ClientSpend
		if err := rows.Scan(&spend.ClientID, &spend.Total); err != nil {
			return nil, err
		}
		result = append(result, spend)
	}
	return result, rows.Err()
}

func (r *clientRepository) SpendTotal(ctx context.Context, clientID string) (decimal.Decimal, error) {
	const query = `
        SELECT COALESCE(SUM(s.price), 0)
        FROM client_services cs
        JOIN services s ON s.id = cs.service_id
        WHERE cs.client_id = $1`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, clientID).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func scanClients(rows pgx.Rows) ([]domain.Client, error) {
	var result []domain.Client
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(
			&client.ID,
			&client.FullName,
			&client.AccountNumber,
			&client.PhoneNumber,
			&client.Email,
			&client.ServiceAddress,
			&client.Age,
			&client.IsCompany,
			&client.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, client)
	}
	return result, rows.Err()
}
