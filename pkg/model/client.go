package model

import (
	"errors"
	"fmt"
	"strings"
)

// Model construction errors.
var (
	ErrMissingClient  = errors.New("missing Client field")
	ErrMissingService = errors.New("missing Service field")
	ErrInvalidMessage = errors.New("invalid message")
	ErrDuplicate      = errors.New("duplicate message")
)

// ControlService is the bootstrap service used to allocate client ids.
// Its client source carries no SECTION: documentation block.
const ControlService = "CTL"

// Service is a QMI service definition.
type Service struct {
	// ID is the short service code, e.g. "DMS" or "NAS".
	ID string
}

// IsControl reports whether s is the bootstrap/control service.
func (s Service) IsControl() bool {
	return s.ID == ControlService
}

// Client is the service-specific client type to generate.
type Client struct {
	// Name is the logical client name, e.g. "QMI Client DMS".
	Name string

	// Service is the single service this client talks to.
	Service Service

	// Since is the version tag the client first appeared in. May be empty.
	Since string
}

// NewClient validates and returns a Client. Both the name and the service
// reference are required.
func NewClient(name string, service Service, since string) (Client, error) {
	if strings.TrimSpace(name) == "" {
		return Client{}, ErrMissingClient
	}
	if strings.TrimSpace(service.ID) == "" {
		return Client{}, fmt.Errorf("client %q: %w", name, ErrMissingService)
	}
	return Client{Name: name, Service: service, Since: since}, nil
}

// Validate checks the same invariants as NewClient on an already built value.
func (c Client) Validate() error {
	_, err := NewClient(c.Name, c.Service, c.Since)
	return err
}
