package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType enumerates the telecom service categories.
type ServiceType string

const (
	ServiceTypeNetwork       ServiceType = "networks"
	ServiceTypeExternalCalls ServiceType = "external_calls"
	ServiceTypeITServices    ServiceType = "it_services"
	ServiceTypeLocalPhone    ServiceType = "local_phone"
	ServiceTypeIPTV          ServiceType = "ip_tv"
)

// Client is a subscriber, either a person or a company.
type Client struct {
	ID             string
	FullName       string
	AccountNumber  string
	PhoneNumber    string
	Email          string
	ServiceAddress string
	Age            int
	IsCompany      bool
	CreatedAt      time.Time
}

// Service is a catalog entry clients can subscribe to.
type Service struct {
	ID          string
	Title       string
	ServiceType ServiceType
	Price       decimal.Decimal
	CreatedAt   time.Time
}

// ClientService links a client to a catalog service. ServiceType and
// ServicePrice are denormalized from the catalog on read, never stored.
type ClientService struct {
	ID            string
	ClientID      string
	ServiceID     string
	ServiceNumber string
	ServiceType   ServiceType
	ServicePrice  decimal.Decimal
	CreatedAt     time.Time
}
