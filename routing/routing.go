package routing

import (
	"strings"

	"github.com/Qalifah/freightbooking/location"
)

// UnknownDistance labels a port the system has no data for.
const UnknownDistance = "Unknown"

// Service resolves gateway ports for inland legs.
type Service interface {
	// Gateways returns the system default gateways for a facility, in
	// catalog order. An unknown facility has none.
	Gateways(facility string) []location.Connection

	// Resolve turns a manually entered port into a connection. It always
	// succeeds; a port without data becomes an optimistic unknown.
	Resolve(query string) location.Connection
}

type service struct {
	locations location.Repository
}

// NewService creates a routing service backed by the given location data.
func NewService(locations location.Repository) Service {
	return &service{locations: locations}
}

func (s *service) Gateways(facility string) []location.Connection {
	return s.locations.Defaults(facility)
}

func (s *service) Resolve(query string) location.Connection {
	name := strings.TrimSpace(query)

	conn, err := s.locations.Find(name)
	if err != nil {
		conn, err = s.locations.Find(name + " Port")
	}
	if err != nil {
		conn = location.Connection{
			Distance:        UnknownDistance,
			HasTruckService: true,
		}
	}

	conn.PortName = location.PortName(name)
	conn.IsDefault = false
	return conn
}
