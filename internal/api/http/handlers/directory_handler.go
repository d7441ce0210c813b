package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/telecom-support/internal/api/dto"
	"github.com/spec-kit/telecom-support/internal/domain"
	"github.com/spec-kit/telecom-support/internal/service"
	apperrors "github.com/spec-kit/telecom-support/pkg/util"
)

// DirectoryHandler serves client, catalog, subscription and engineer
// management for staff.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// CreateClient POST /admin/clients.
func (h *DirectoryHandler) CreateClient(c *fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	client, err := h.directory.RegisterClient(c.UserContext(), &domain.Client{
		FullName:       req.FullName,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		ServiceAddress: req.ServiceAddress,
		Age:            req.Age,
		IsCompany:      req.IsCompany,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": clientResponse(client)})
}

// ListClients GET /admin/clients.
func (h *DirectoryHandler) ListClients(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	clients, err := h.directory.ListClients(c.UserContext(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, clientResponse(&clients[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetClient GET /admin/clients/:id.
func (h *DirectoryHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.directory.GetClient(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clientResponse(client)})
}

// CreateService POST /admin/services.
func (h *DirectoryHandler) CreateService(c *fiber.Ctx) error {
	var req dto.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return apperrors.NewValidationError("invalid price", map[string]any{"price": req.Price})
	}
	created, err := h.directory.CreateService(c.UserContext(), &domain.Service{
		Title:       req.Title,
		ServiceType: req.ServiceType,
		Price:       price,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": serviceResponse(created)})
}

// ListServices GET /admin/services.
func (h *DirectoryHandler) ListServices(c *fiber.Ctx) error {
	services, err := h.directory.ListServices(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		items = append(items, serviceResponse(&services[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Subscribe POST /admin/clients/:id/subscriptions.
func (h *DirectoryHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.ServiceID) == "" {
		return apperrors.NewValidationError("service_id required", nil)
	}
	sub, err := h.directory.Subscribe(c.UserContext(), c.Params("id"), req.ServiceID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": subscriptionResponse(sub)})
}

// ListSubscriptions GET /admin/clients/:id/subscriptions.
func (h *DirectoryHandler) ListSubscriptions(c *fiber.Ctx) error {
	subs, err := h.directory.ListSubscriptions(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		items = append(items, subscriptionResponse(&subs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Unsubscribe DELETE /admin/subscriptions/:id.
func (h *DirectoryHandler) Unsubscribe(c *fiber.Ctx) error {
	if err := h.directory.Unsubscribe(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Estimate GET /admin/clients/:id/estimate?service_type=networks.
func (h *DirectoryHandler) Estimate(c *fiber.Ctx) error {
	serviceType := domain.ServiceType(c.Query("service_type"))
	if serviceType == "" {
		return apperrors.NewValidationError("service_type required", nil)
	}
	score, err := h.directory.EstimateServiceScore(c.UserContext(), c.Params("id"), serviceType)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.EstimateResponse{
		ClientID:    c.Params("id"),
		ServiceType: serviceType,
		Score:       score,
	}})
}

// CreateEngineer POST /admin/engineers.
func (h *DirectoryHandler) CreateEngineer(c *fiber.Ctx) error {
	var req dto.CreateEngineerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	engineer, err := h.directory.CreateEngineer(c.UserContext(), req.FullName)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": engineerResponse(engineer)})
}

// ListEngineers GET /admin/engineers.
func (h *DirectoryHandler) ListEngineers(c *fiber.Ctx) error {
	engineers, err := h.directory.ListEngineers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EngineerResponse, 0, len(engineers))
	for i := range engineers {
		items = append(items, engineerResponse(&engineers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// EngineerLoads GET /admin/engineers/loads.
func (h *DirectoryHandler) EngineerLoads(c *fiber.Ctx) error {
	loads, err := h.directory.EngineerLoads(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.EngineerLoadResponse, 0, len(loads))
	for _, load := range loads {
		items = append(items, dto.EngineerLoadResponse{
			EngineerResponse: engineerResponse(&load.Engineer),
			ActiveTickets:    load.ActiveTickets,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// SetEngineerActive PATCH /admin/engineers/:id/active.
func (h *DirectoryHandler) SetEngineerActive(c *fiber.Ctx) error {
	var req dto.SetEngineerActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.directory.SetEngineerActive(c.UserContext(), c.Params("id"), req.Active); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func clientResponse(client *domain.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:             client.ID,
		FullName:       client.FullName,
		AccountNumber:  client.AccountNumber,
		PhoneNumber:    client.PhoneNumber,
		Email:          client.Email,
		ServiceAddress: client.ServiceAddress,
		Age:            client.Age,
		IsCompany:      client.IsCompany,
		CreatedAt:      client.CreatedAt,
	}
}

func serviceResponse(service *domain.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:          service.ID,
		Title:       service.Title,
		ServiceType: service.ServiceType,
		Price:       service.Price.StringFixed(2),
		CreatedAt:   service.CreatedAt,
	}
}

func subscriptionResponse(sub *domain.ClientService) dto.SubscriptionResponse {
	return dto.SubscriptionResponse{
		ID:            sub.ID,
		ClientID:      sub.ClientID,
		ServiceID:     sub.ServiceID,
		ServiceNumber: sub.ServiceNumber,
		ServiceType:   sub.ServiceType,
		ServicePrice:  sub.ServicePrice.StringFixed(2),
		CreatedAt:     sub.CreatedAt,
	}
}

func engineerResponse(engineer *domain.Engineer) dto.EngineerResponse {
	return dto.EngineerResponse{
		ID:        engineer.ID,
		FullName:  engineer.FullName,
		IsActive:  engineer.IsActive,
		CreatedAt: engineer.CreatedAt,
	}
}
