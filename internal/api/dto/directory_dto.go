package dto

import (
	"time"

	"github.com/spec-kit/telecom-support/internal/domain"
)

// CreateClientRequest registers a subscriber.
type CreateClientRequest struct {
	FullName       string `json:"full_name"`
	PhoneNumber    string `json:"phone_number"`
	Email          string `json:"email"`
	ServiceAddress string `json:"service_address"`
	Age            int    `json:"age"`
	IsCompany      bool   `json:"is_company"`
}

// ClientResponse is the client directory view.
type ClientResponse struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	AccountNumber  string    `json:"account_number"`
	PhoneNumber    string    `json:"phone_number"`
	Email          string    `json:"email"`
	ServiceAddress string    `json:"service_address"`
	Age            int       `json:"age"`
	IsCompany      bool      `json:"is_company"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateServiceRequest adds a catalog entry. Price travels as a string
// to avoid float rounding on money.
type CreateServiceRequest struct {
	Title       string             `json:"title"`
	ServiceType domain.ServiceType `json:"service_type"`
	Price       string             `json:"price"`
}

// ServiceResponse is the catalog entry view.
type ServiceResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	ServiceType domain.ServiceType `json:"service_type"`
	Price       string             `json:"price"`
	CreatedAt   time.Time          `json:"created_at"`
}

// SubscribeRequest links a client to a service.
type SubscribeRequest struct {
	ServiceID string `json:"service_id"`
}

// SubscriptionResponse is the client-service link view.
type SubscriptionResponse struct {
	ID            string             `json:"id"`
	ClientID      string             `json:"client_id"`
	ServiceID     string             `json:"service_id"`
	ServiceNumber string             `json:"service_number"`
	ServiceType   domain.ServiceType `json:"service_type"`
	ServicePrice  string             `json:"service_price"`
	CreatedAt     time.Time          `json:"created_at"`
}

// CreateEngineerRequest adds a field engineer.
type CreateEngineerRequest struct {
	FullName string `json:"full_name"`
}

// SetEngineerActiveRequest toggles assignment eligibility.
type SetEngineerActiveRequest struct {
	Active bool `json:"active"`
}

// EngineerResponse is the engineer view.
type EngineerResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// EngineerLoadResponse adds the derived open-ticket count.
type EngineerLoadResponse struct {
	EngineerResponse
	ActiveTickets int `json:"active_tickets"`
}

// EstimateResponse carries the standalone service-score estimate.
type EstimateResponse struct {
	ClientID    string             `json:"client_id"`
	ServiceType domain.ServiceType `json:"service_type"`
	Score       float64            `json:"score"`
}
