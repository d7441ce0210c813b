package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/telecom-support/internal/api/dto"
	"github.com/spec-kit/telecom-support/internal/service"
	apperrors "github.com/spec-kit/telecom-support/pkg/util"
)

// TicketsHandler manages the public ticket endpoints. No authentication:
// clients submit with their account number and track with the ticket
// code alone.
type TicketsHandler struct {
	tickets    *service.TicketService
	assignment *service.AssignmentService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, assignment *service.AssignmentService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, assignment: assignment}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.AccountNumber) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("account_number and description required", nil)
	}

	ticket, err := h.tickets.CreateTicket(c.UserContext(), service.TicketCreateInput{
		AccountNumber: req.AccountNumber,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}

	// Best-effort auto assignment; the ticket stands even when no
	// engineer is available.
	if assigned, err := h.assignment.AutoAssign(c.UserContext(), ticket.ID); err == nil {
		ticket = assigned
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreatedTicketResponse{
		TicketCode:       ticket.TicketCode,
		Status:           ticket.Status,
		FinalPriority:    ticket.FinalPriority,
		VisitProbability: ticket.EngineerVisitProbability,
		ClientAdvice:     ticket.ProposedSolutionClient,
		CreatedAt:        ticket.CreatedAt,
	}})
}

// CheckStatus GET /tickets/:code.
func (h *TicketsHandler) CheckStatus(c *fiber.Ctx) error {
	check, err := h.tickets.CheckStatus(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatusCheckResponse{
		TicketCode:   check.TicketCode,
		Status:       check.Status,
		Description:  check.Description,
		EngineerName: check.EngineerName,
		CreatedAt:    check.CreatedAt,
		ClosedAt:     check.ClosedAt,
	}})
}
