package cargo

import (
	"strings"
	"time"

	"github.com/Qalifah/freightbooking/location"
)

// Commodity describes what is being shipped
type Commodity string

// Supported commodities.
const (
	GeneralCargo Commodity = "General Cargo"
	Electronics  Commodity = "Electronics"
	Textiles     Commodity = "Textiles"
)

// Valid reports whether c is a supported commodity
func (c Commodity) Valid() bool {
	switch c {
	case GeneralCargo, Electronics, Textiles:
		return true
	}
	return false
}

// ContainerType describes the equipment requested
type ContainerType string

// Supported container types.
const (
	Dry20 ContainerType = "20 Dry Standard"
	Dry40 ContainerType = "40 Dry Standard"
)

// Valid reports whether t is a supported container type
func (t ContainerType) Valid() bool {
	return t == Dry20 || t == Dry40
}

// Request is what the customer asks a quote for
type Request struct {
	Origin          string        `json:"origin"`
	Destination     string        `json:"destination"`
	ReadyDate       time.Time     `json:"ready_date"`
	Commodity       Commodity     `json:"commodity"`
	Container       ContainerType `json:"container_type"`
	OriginKind      location.Kind `json:"origin_type"`
	DestinationKind location.Kind `json:"destination_type"`
}

// DefaultRequest returns the request a new booking starts from.
func DefaultRequest() Request {
	return Request{
		Origin:          location.ShanghaiFactory,
		Destination:     location.HamburgFactory,
		Commodity:       GeneralCargo,
		Container:       Dry40,
		OriginKind:      location.Door,
		DestinationKind: location.Door,
	}
}

// Complete reports whether the request has everything a schedule search
// needs.
func (r Request) Complete() bool {
	return strings.TrimSpace(r.Origin) != "" &&
		strings.TrimSpace(r.Destination) != "" &&
		!r.ReadyDate.IsZero() &&
		r.Commodity.Valid() &&
		r.Container.Valid() &&
		r.OriginKind.Valid() &&
		r.DestinationKind.Valid()
}

// NeedsInlandHaulage reports whether either leg ends at a door.
func (r Request) NeedsInlandHaulage() bool {
	return r.OriginKind == location.Door || r.DestinationKind == location.Door
}

// Parties are the contacts on a booking
type Parties struct {
	ShipperName   string `json:"shipper_name"`
	ShipperEmail  string `json:"shipper_email"`
	ConsigneeName string `json:"consignee_name"`
}

// HasContact reports whether the shipper can be reached.
func (p Parties) HasContact() bool {
	return p.ShipperName != "" && p.ShipperEmail != ""
}
