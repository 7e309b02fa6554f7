package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
)

// ClientStatus represents the status of a client
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

var deadlinePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Client represents a counterparty a sales representative sells to,
// typically a store or a franchise branch. The optional order deadline
// is a time of day (HH:MM) after which same-day orders are not accepted;
// it is snapshotted onto orders at submission for downstream scheduling.
type Client struct {
	shared.BaseAggregateRoot
	Code          string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string       `gorm:"type:varchar(200);not null"`
	ContactPhone  string       `gorm:"type:varchar(50)"`
	Address       string       `gorm:"type:varchar(500)"`
	OrderDeadline *string      `gorm:"type:varchar(5)"` // HH:MM, nil = no deadline
	Status        ClientStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client
func NewClient(code, name string) (*Client, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_CODE", "Client code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}

	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            ClientStatusActive,
	}, nil
}

// SetOrderDeadline sets the daily order cutoff time (HH:MM)
func (c *Client) SetOrderDeadline(deadline string) error {
	if !deadlinePattern.MatchString(deadline) {
		return shared.NewDomainError("INVALID_DEADLINE", "Order deadline must be in HH:MM format")
	}
	c.OrderDeadline = &deadline
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// ClearOrderDeadline removes the daily order cutoff
func (c *Client) ClearOrderDeadline() {
	c.OrderDeadline = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate sets the client status to inactive
func (c *Client) Deactivate() {
	c.Status = ClientStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsActive returns true if orders can be placed for this client
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}
