// Package tracking provides the use-case of tracking a shipment. Used by
// customers following up on a booking.
package tracking

import (
	"errors"
	"strings"
	"unicode/utf16"

	"github.com/Qalifah/freightbooking/cargo"
	"github.com/Qalifah/freightbooking/location"
)

// ErrInvalidArgument is returned when one or more arguments are invalid.
var ErrInvalidArgument = errors.New("invalid argument")

// Status summarizes where a shipment is
type Status string

// shipment statuses
const (
	Booked    Status = "Booked"
	InTransit Status = "In Transit"
	Delivered Status = "Delivered"
)

// EventStatus tells whether a milestone happened yet
type EventStatus string

// milestone statuses
const (
	Completed EventStatus = "Completed"
	Active    EventStatus = "Active"
	Pending   EventStatus = "Pending"
)

// Icon hints how a milestone is pictured
type Icon string

// milestone icons
const (
	ShipIcon  Icon = "ship"
	TruckIcon Icon = "truck"
	CheckIcon Icon = "check"
)

// Service is the interface that provides the basic Track method.
type Service interface {
	// Track returns a shipment matching a tracking number.
	Track(id string) (Shipment, error)
}

type service struct {
	bookings cargo.Repository
}

// NewService returns a new instance of the default Service. References of
// bookings found in the repository are reported as booked.
func NewService(bookings cargo.Repository) Service {
	return &service{bookings: bookings}
}

func (s *service) Track(id string) (Shipment, error) {
	ref := strings.TrimSpace(id)
	if ref == "" {
		return Shipment{}, ErrInvalidArgument
	}

	if b, err := s.bookings.Find(cargo.Reference(strings.ToUpper(ref))); err == nil {
		return booked(b), nil
	}
	return sample(id), nil
}

// Shipment is a read model for tracking views.
type Shipment struct {
	ID          string  `json:"id"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	ETA         string  `json:"eta"`
	Status      Status  `json:"status"`
	Progress    int     `json:"progress"`
	Events      []Event `json:"events"`
}

// Event is a read model for shipment milestones.
type Event struct {
	Date        string      `json:"date"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Status      EventStatus `json:"status"`
	Icon        Icon        `json:"icon"`
}

const (
	dateLayout     = "Jan 02, 2006"
	dateTimeLayout = "Jan 02, 2006 15:04"
)

func booked(b *cargo.Booking) Shipment {
	pol, pod := b.Schedule.PortOfLoading, b.Schedule.PortOfDischarge
	sh := Shipment{
		ID:          string(b.Reference),
		Origin:      b.Request.Origin,
		Destination: b.Request.Destination,
		ETA:         b.Schedule.Arrival.Format(dateLayout),
		Status:      Booked,
		Progress:    0,
		Events: []Event{
			{Date: b.ConfirmedAt.Format(dateTimeLayout), Location: b.Request.Origin, Description: "Booking Confirmed", Status: Completed, Icon: CheckIcon},
			{Date: "Est. " + b.Schedule.Departure.Format(dateLayout), Location: pol, Description: "Vessel Departure", Status: Pending, Icon: ShipIcon},
			{Date: "Est. " + b.Schedule.Arrival.Format(dateLayout), Location: pod, Description: "Vessel Arrival", Status: Pending, Icon: CheckIcon},
		},
	}
	if b.Request.OriginKind == location.Door {
		pickup := Event{Date: "Before " + b.Schedule.Departure.Format(dateLayout), Location: b.Request.Origin, Description: "Truck Pickup", Status: Pending, Icon: TruckIcon}
		sh.Events = append(sh.Events[:1], append([]Event{pickup}, sh.Events[1:]...)...)
	}
	if b.Request.DestinationKind == location.Door {
		sh.Events = append(sh.Events, Event{Date: "After " + b.Schedule.Arrival.Format(dateLayout), Location: b.Request.Destination, Description: "Door Delivery", Status: Pending, Icon: TruckIcon})
	}
	return sh
}

// sample fabricates a shipment for unknown tracking numbers. The sum of the
// number's UTF-16 code units, surrounding whitespace included, decides
// whether it is delivered.
func sample(id string) Shipment {
	hash := 0
	for _, c := range utf16.Encode([]rune(id)) {
		hash += int(c)
	}
	delivered := hash%2 == 0

	s := Shipment{
		ID:          strings.ToUpper(id),
		Origin:      "Shanghai, CN",
		Destination: "Rotterdam, NL",
		ETA:         "Oct 24, 2024",
		Status:      InTransit,
		Progress:    65,
		Events: []Event{
			{Date: "Oct 02, 2024 08:30", Location: "Shanghai, CN", Description: "Gate In Full", Status: Completed, Icon: CheckIcon},
			{Date: "Oct 04, 2024 14:15", Location: "Shanghai Port", Description: "Vessel Departed", Status: Completed, Icon: ShipIcon},
			{Date: "Oct 12, 2024 09:00", Location: "Singapore", Description: "Transshipment arrived", Status: Completed, Icon: CheckIcon},
			{Date: "Oct 15, 2024", Location: "Indian Ocean", Description: "En route to Suez", Status: Active, Icon: ShipIcon},
			{Date: "Est. Oct 24, 2024", Location: "Rotterdam, NL", Description: "Vessel Arrival", Status: Pending, Icon: CheckIcon},
		},
	}
	if delivered {
		s.ETA = string(Delivered)
		s.Status = Delivered
		s.Progress = 100
	}
	return s
}
