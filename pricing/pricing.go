// Package pricing computes quote totals. Confirmed and Preview answer
// different questions and are kept apart on purpose: Preview is a rough
// estimate shown while browsing schedules, Confirmed is what gets booked.
package pricing

import (
	"github.com/Qalifah/freightbooking/addon"
	"github.com/Qalifah/freightbooking/location"
	"github.com/Qalifah/freightbooking/voyage"
)

// Flat surcharges used by the schedule preview. They mirror catalog prices
// but are not read from the catalog.
const (
	OriginDoorSurcharge      = 450
	DestinationDoorSurcharge = 550
	ExportCustomsSurcharge   = 120
	ImportCustomsSurcharge   = 150
)

// Scenario is a door/port and customs combination previewed before a
// schedule is chosen.
type Scenario struct {
	Origin         location.Kind `json:"origin_type"`
	Destination    location.Kind `json:"destination_type"`
	IncludeCustoms bool          `json:"include_customs"`
}

// Confirmed returns the schedule price plus the catalog price of every
// selected service. A nil schedule counts as zero.
func Confirmed(s *voyage.Schedule, selection addon.Selection) int {
	total := 0
	if s != nil {
		total = s.BasePrice
	}
	for _, a := range addon.Catalog() {
		if selection.Has(a.ID) {
			total += a.Price
		}
	}
	return total
}

// Preview estimates the price of a schedule under a scenario.
func Preview(basePrice int, sc Scenario) int {
	total := basePrice
	if sc.Origin == location.Door {
		total += OriginDoorSurcharge
	}
	if sc.Destination == location.Door {
		total += DestinationDoorSurcharge
	}
	if sc.IncludeCustoms {
		total += ExportCustomsSurcharge + ImportCustomsSurcharge
	}
	return total
}
