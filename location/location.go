package location

import (
	"errors"
	"strings"
)

// Kind tells whether a leg ends at a port or at a door (inland address)
type Kind string

// valid location kinds
const (
	Port Kind = "PORT"
	Door Kind = "DOOR"
)

// Valid reports whether k is a known location kind
func (k Kind) Valid() bool {
	return k == Port || k == Door
}

// Connection describes how a facility reaches a gateway port
type Connection struct {
	PortName        string `json:"port_name"`
	Distance        string `json:"distance"`
	HasTruckService bool   `json:"has_truck_service"`
	TruckingCost    int    `json:"trucking_cost"`
	TransitHours    int    `json:"transit_hours"`
	IsDefault       bool   `json:"is_default"`
}

// ErrUnknown is used when a location can't be found
var ErrUnknown = errors.New("unknown location")

// Repository provides access to gateway port data
type Repository interface {
	// Defaults returns the connections the system knows for a facility.
	Defaults(facility string) []Connection
	// Find looks up a port that is only known on manual query.
	Find(name string) (Connection, error)
}

// PortName normalizes a port name, adding the " Port" suffix when the name
// doesn't mention it.
func PortName(name string) string {
	if strings.Contains(name, "Port") {
		return name
	}
	return name + " Port"
}
