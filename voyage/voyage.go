package voyage

import (
	"errors"
	"time"
)

// Number identifies a voyage of a vessel
type Number string

// CO2Rating grades the emissions of a sailing
type CO2Rating string

// valid CO2 ratings
const (
	LowCO2    CO2Rating = "Low"
	NormalCO2 CO2Rating = "Normal"
)

// Schedule is a priced sailing between a port of loading and a port of
// discharge
type Schedule struct {
	ID              string    `json:"id"`
	Vessel          string    `json:"vessel"`
	Voyage          Number    `json:"voyage"`
	PortOfLoading   string    `json:"pol"`
	PortOfDischarge string    `json:"pod"`
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
	TransitDays     int       `json:"transit_days"`
	BasePrice       int       `json:"base_price"`
	CO2             CO2Rating `json:"co2"`
	ServiceType     string    `json:"service_type"`
	Tags            []string  `json:"tags"`
}

// ErrUnknown is used when a schedule can't be found
var ErrUnknown = errors.New("unknown schedule")

// Find returns the schedule with the given id.
func Find(schedules []Schedule, id string) (Schedule, error) {
	for _, s := range schedules {
		if s.ID == id {
			return s, nil
		}
	}
	return Schedule{}, ErrUnknown
}
