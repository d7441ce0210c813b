package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/telecom-support/internal/api/dto"
	"github.com/spec-kit/telecom-support/internal/domain"
	"github.com/spec-kit/telecom-support/internal/repository"
	"github.com/spec-kit/telecom-support/internal/service"
	apperrors "github.com/spec-kit/telecom-support/pkg/util"
)

// StaffTicketsHandler serves the staff dashboard and ticket workflow.
type StaffTicketsHandler struct {
	tickets    *service.TicketService
	assignment *service.AssignmentService
}

// NewStaffTicketsHandler constructs handler.
func NewStaffTicketsHandler(tickets *service.TicketService, assignment *service.AssignmentService) *StaffTicketsHandler {
	return &StaffTicketsHandler{tickets: tickets, assignment: assignment}
}

// ListTickets GET /admin/tickets.
func (h *StaffTicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseDashboardQuery(c)
	tickets, err := h.tickets.ListDashboard(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateStatus PATCH /admin/tickets/:id/status.
func (h *StaffTicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	switch req.Status {
	case domain.TicketStatusInProgress, domain.TicketStatusDone:
	default:
		return apperrors.NewValidationError("status must be in_progress or done", nil)
	}

	ticket, err := h.tickets.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// Resolve POST /admin/tickets/:id/resolve.
func (h *StaffTicketsHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.Resolve(c.UserContext(), c.Params("id"), req.Resolution)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// Assign POST /admin/tickets/:id/assign. An explicit engineer_id commits
// that engineer; an empty body picks the most-free one.
func (h *StaffTicketsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignTicketRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	var (
		ticket *domain.Ticket
		err    error
	)
	if strings.TrimSpace(req.EngineerID) != "" {
		ticket, err = h.assignment.AssignEngineer(c.UserContext(), c.Params("id"), req.EngineerID)
	} else {
		ticket, err = h.assignment.AutoAssign(c.UserContext(), c.Params("id"))
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// AssignAdvised POST /admin/tickets/:id/assign/advised asks the AI
// collaborator for a recommendation and commits it after re-validation.
func (h *StaffTicketsHandler) AssignAdvised(c *fiber.Ctx) error {
	ticket, err := h.assignment.AssignWithAdvisor(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

func parseDashboardQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if clientID := c.Query("client_id"); clientID != "" {
		filter.ClientID = &clientID
	}
	if engineerID := c.Query("engineer_id"); engineerID != "" {
		filter.EngineerID = &engineerID
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:               ticket.ID,
		TicketCode:       ticket.TicketCode,
		ClientID:         ticket.ClientID,
		EngineerID:       ticket.EngineerID,
		Status:           ticket.Status,
		InitialPriority:  ticket.InitialPriority,
		FinalPriority:    ticket.FinalPriority,
		VisitProbability: ticket.EngineerVisitProbability,
		CreatedAt:        ticket.CreatedAt,
		UpdatedAt:        ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket) dto.TicketDetailResponse {
	return dto.TicketDetailResponse{
		ID:                       ticket.ID,
		TicketCode:               ticket.TicketCode,
		ClientID:                 ticket.ClientID,
		EngineerID:               ticket.EngineerID,
		Description:              ticket.Description,
		InitialPriority:          ticket.InitialPriority,
		FinalPriority:            ticket.FinalPriority,
		VisitProbability:         ticket.EngineerVisitProbability,
		VisitExplanation:         ticket.VisitExplanation,
		ProposedSolutionClient:   ticket.ProposedSolutionClient,
		ProposedSolutionEngineer: ticket.ProposedSolutionEngineer,
		FinalResolution:          ticket.FinalResolution,
		Status:                   ticket.Status,
		CreatedAt:                ticket.CreatedAt,
		UpdatedAt:                ticket.UpdatedAt,
		ClosedAt:                 ticket.ClosedAt,
	}
}
