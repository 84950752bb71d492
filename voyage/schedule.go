package voyage

import (
	"fmt"
	"strings"
	"time"

	"github.com/Qalifah/freightbooking/location"
)

// Ports used when no gateway has been chosen for a leg.
const (
	DefaultPortOfLoading   = "Shanghai Port"
	DefaultPortOfDischarge = "Hamburger Port"
)

// Departure is the sailing date offered for every generated schedule.
var Departure = time.Date(2024, time.November, 5, 0, 0, 0, 0, time.UTC)

const firstScheduleID = 100

// Generate derives the schedules for every port of loading x port of
// discharge pair, ports of loading in the outer loop. It is a pure function
// of its arguments.
func Generate(pols, pods []string) []Schedule {
	if len(pols) == 0 {
		pols = []string{DefaultPortOfLoading}
	}
	if len(pods) == 0 {
		pods = []string{DefaultPortOfDischarge}
	}

	schedules := make([]Schedule, 0, len(pols)*len(pods))
	id := firstScheduleID
	for _, pol := range pols {
		for _, pod := range pods {
			s := sailing(pol, pod)
			s.ID = fmt.Sprintf("SCH-%d", id)
			id++
			schedules = append(schedules, s)
		}
	}
	return schedules
}

func sailing(pol, pod string) Schedule {
	from := strings.Replace(pol, " Port", "", 1)
	to := strings.Replace(pod, " Port", "", 1)

	s := Schedule{
		Vessel:      "Nordic Queen",
		Voyage:      "243E",
		BasePrice:   1800,
		TransitDays: 24,
		ServiceType: "Direct",
		Tags:        []string{},
	}

	// feeder from Nanjing
	if from == "Nanjing" {
		s.Vessel = "Nordic Feeder 2"
		s.BasePrice = 1650
		s.TransitDays = 28
		s.Tags = append(s.Tags, "Transshipment via Shanghai")
		s.ServiceType = "Combined Transport"
	}

	if to == "Cheese" {
		s.BasePrice += 100
		s.TransitDays += 2
	}

	switch {
	case from == "Shanghai" && to == "Hamburger":
		s.Vessel = "Nordic Copenhagen"
		s.BasePrice = 1850
		s.TransitDays = 23
		s.Tags = append(s.Tags, "Fastest")
	case from == "Nanjing" && to == "Hamburger":
		s.Vessel = "Yangtze Spirit"
		s.BasePrice = 1720
		s.TransitDays = 27
		s.Tags = append(s.Tags, "Eco Saver")
	case from == "Nanjing" && to == "Cheese":
		s.Vessel = "Yangtze Spirit"
		s.Voyage = "998A"
		s.BasePrice = 1950
		s.TransitDays = 30
		s.Tags = append(s.Tags, "Max Coverage")
	case from == "Shanghai" && to == "Cheese":
		s.Vessel = "Nordic Copenhagen"
		s.BasePrice = 2100
		s.TransitDays = 26
	}

	s.PortOfLoading = location.PortName(pol)
	s.PortOfDischarge = location.PortName(pod)
	s.Departure = Departure
	s.Arrival = Departure.AddDate(0, 0, s.TransitDays)
	s.CO2 = NormalCO2
	if s.TransitDays < 25 {
		s.CO2 = LowCO2
	}
	return s
}
