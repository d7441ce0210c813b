package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/telecom-support/internal/domain"
)

// TicketFilter captures staff search parameters.
type TicketFilter struct {
	ClientID    *string
	EngineerID  *string
	Statuses    []domain.TicketStatus
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// ResolutionSample is a past ticket outcome fed to the advisor prompts.
type ResolutionSample struct {
	Description     string
	FinalResolution string
}

// VisitSample pairs a past description with its visit probability.
type VisitSample struct {
	Description      string
	VisitProbability int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByCode(ctx context.Context, code string) (*domain.Ticket, error)
	// ListDashboard returns open tickets first, then by final priority
	// descending, then oldest first.
	ListDashboard(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	// AssignEngineer atomically sets the engineer while the ticket is not
	// done, advancing status new -> in_progress. Returns pgx.ErrNoRows
	// when the ticket is missing or already done, so concurrent
	// assignments cannot race past the guard.
	AssignEngineer(ctx context.Context, ticketID, engineerID string) error
	// UpdateStatus conditionally moves the ticket from expected current
	// status to next.
	UpdateStatus(ctx context.Context, ticketID string, current, next domain.TicketStatus) error
	// Resolve records the final resolution and closes the ticket.
	Resolve(ctx context.Context, ticketID, resolution string) error
	// RecentResolutions reads the latest tickets whose final resolution is
	// set, newest first.
	RecentResolutions(ctx context.Context, limit int) ([]ResolutionSample, error)
	// RecentVisitSamples reads the latest description/visit-probability
	// pairs, newest first.
	RecentVisitSamples(ctx context.Context, limit int) ([]VisitSample, error)
	// RecentResolutionsByEngineer samples an engineer's past resolved
	// work for advisor candidate payloads.
	RecentResolutionsByEngineer(ctx context.Context, engineerID string, limit int) ([]ResolutionSample, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, ticket_code, client_id, engineer_id, description,
               initial_priority, final_priority, engineer_visit_probability, visit_explanation,
               proposed_solution_client, proposed_solution_engineer, final_resolution,
               status, created_at, updated_at, closed_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_code, client_id, engineer_id, description,
            initial_priority, final_priority, engineer_visit_probability, visit_explanation,
            proposed_solution_client, proposed_solution_engineer, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TicketCode,
		ticket.ClientID,
		ticket.EngineerID,
		ticket.Description,
		ticket.InitialPriority,
		ticket.FinalPriority,
		ticket.EngineerVisitProbability,
		ticket.VisitExplanation,
		ticket.ProposedSolutionClient,
		ticket.ProposedSolutionEngineer,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByCode(ctx context.Context, code string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_code=$1`
	return r.fetchSingle(ctx, query, code)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.TicketCode,
		&ticket.ClientID,
		&ticket.EngineerID,
		&ticket.Description,
		&ticket.InitialPriority,
		&ticket.FinalPriority,
		&ticket.EngineerVisitProbability,
		&ticket.VisitExplanation,
		&ticket.ProposedSolutionClient,
		&ticket.ProposedSolutionEngineer,
		&ticket.FinalResolution,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListDashboard(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		clauses = append(clauses, fmt.Sprintf("client_id=$%d", len(args)))
	}
	if filter.EngineerID != nil {
		args = append(args, *filter.EngineerID)
		clauses = append(clauses, fmt.Sprintf("engineer_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		clauses = append(clauses, fmt.Sprintf("LOWER(description) LIKE $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	// Done tickets sink to the bottom regardless of priority.
	query := fmt.Sprintf(`%s WHERE %s
        ORDER BY CASE WHEN status='done' THEN 2 ELSE 1 END, final_priority DESC, created_at
        LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) AssignEngineer(ctx context.Context, ticketID, engineerID string) error {
	const query = `
        UPDATE tickets SET engineer_id=$1,
            status=CASE WHEN status='new' THEN 'in_progress' ELSE status END,
            updated_at=NOW()
        WHERE id=$2 AND status <> 'done'`
	cmd, err := r.pool.Exec(ctx, query, engineerID, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, ticketID string, current, next domain.TicketStatus) error {
	const query = `
        UPDATE tickets SET status=$1,
            closed_at=CASE WHEN $1='done' THEN NOW() ELSE closed_at END,
            updated_at=NOW()
        WHERE id=$2 AND status=$3`
	cmd, err := r.pool.Exec(ctx, query, next, ticketID, current)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Resolve(ctx context.Context, ticketID, resolution string) error {
	const query = `
        UPDATE tickets SET final_resolution=$1, status='done', closed_at=NOW(), updated_at=NOW()
        WHERE id=$2 AND status <> 'done'`
	cmd, err := r.pool.Exec(ctx, query, resolution, ticketID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) RecentResolutions(ctx context.Context, limit int) ([]ResolutionSample, error) {
	if limit <= 0 {
		limit = 30
	}
	const query = `
        SELECT description, final_resolution FROM tickets
        WHERE final_resolution IS NOT NULL AND final_resolution <> ''
        ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ResolutionSample
	for rows.Next() {
		var sample ResolutionSample
		if err := rows.Scan(&sample.Description, &sample.FinalResolution); err != nil {
			return nil, err
		}
		result = append(result, sample)
	}
	return result, rows.Err()
}

func (r *ticketRepository) RecentVisitSamples(ctx context.Context, limit int) ([]VisitSample, error) {
	if limit <= 0 {
		limit = 40
	}
	const query = `
        SELECT description, engineer_visit_probability FROM tickets
        ORDER BY created_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []VisitSample
	for rows.Next() {
		var sample VisitSample
		if err := rows.Scan(&sample.Description, &sample.VisitProbability); err != nil {
			return nil, err
		}
		result = append(result, sample)
	}
	return result, rows.Err()
}

func (r *ticketRepository) RecentResolutionsByEngineer(ctx context.Context, engineerID string, limit int) ([]ResolutionSample, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
        SELECT description, final_resolution FROM tickets
        WHERE engineer_id=$1 AND final_resolution IS NOT NULL AND final_resolution <> ''
        ORDER BY created_at DESC LIMIT $2`
	rows, err := r.pool.Query(ctx, query, engineerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ResolutionSample
	for rows.Next() {
		var sample ResolutionSample
		if err := rows.Scan(&sample.Description, &sample.FinalResolution); err != nil {
			return nil, err
		}
		result = append(result, sample)
	}
	return result, rows.Err()
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TicketCode,
			&ticket.ClientID,
			&ticket.EngineerID,
			&ticket.Description,
			&ticket.InitialPriority,
			&ticket.FinalPriority,
			&ticket.EngineerVisitProbability,
			&ticket.VisitExplanation,
			&ticket.ProposedSolutionClient,
			&ticket.ProposedSolutionEngineer,
			&ticket.FinalResolution,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&ticket.ClosedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
