package pricing

import (
	"testing"

	"github.com/Qalifah/freightbooking/addon"
	"github.com/Qalifah/freightbooking/location"
	"github.com/Qalifah/freightbooking/voyage"
)

func TestConfirmed(t *testing.T) {
	s := &voyage.Schedule{BasePrice: 1850}

	for _, tt := range []struct {
		name      string
		schedule  *voyage.Schedule
		selection addon.Selection
		want      int
	}{
		{"insurance and eco", s, addon.Selection{addon.Insurance, addon.Eco}, 2145},
		{"nothing selected", s, nil, 1850},
		{"door to door trucking", s, addon.Selection{addon.TruckingOrigin, addon.TruckingDest}, 2850},
		{"rail and customs", s, addon.Selection{addon.RailOrigin, addon.CustomsExport, addon.CustomsImport}, 2420},
		{"no schedule", nil, addon.Selection{addon.Eco}, 250},
		{"unknown id ignored", s, addon.Selection{"valet"}, 1850},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confirmed(tt.schedule, tt.selection); got != tt.want {
				t.Errorf("Confirmed = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	for _, tt := range []struct {
		name string
		sc   Scenario
		want int
	}{
		{"port to port", Scenario{Origin: location.Port, Destination: location.Port}, 1850},
		{"door to door", Scenario{Origin: location.Door, Destination: location.Door}, 2850},
		{"door to port with customs", Scenario{Origin: location.Door, Destination: location.Port, IncludeCustoms: true}, 2570},
		{"customs only", Scenario{Origin: location.Port, Destination: location.Port, IncludeCustoms: true}, 2120},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(1850, tt.sc); got != tt.want {
				t.Errorf("Preview = %d, want %d", got, tt.want)
			}
		})
	}
}

// Rail is cheaper than trucking in the catalog, the preview doesn't care.
func TestPreviewIgnoresTransportMode(t *testing.T) {
	s := &voyage.Schedule{BasePrice: 1800}
	sc := Scenario{Origin: location.Door, Destination: location.Port}

	confirmed := Confirmed(s, addon.Selection{addon.RailOrigin})
	preview := Preview(s.BasePrice, sc)

	if confirmed != 2100 || preview != 2250 {
		t.Errorf("confirmed = %d, preview = %d; want 2100, 2250", confirmed, preview)
	}
}
