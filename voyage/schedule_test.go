package voyage

import (
	"reflect"
	"testing"
	"time"
)

func TestGenerateKnownRoutes(t *testing.T) {
	for _, tt := range []struct {
		pol, pod    string
		vessel      string
		voyage      Number
		price       int
		transitDays int
		tags        []string
		co2         CO2Rating
	}{
		{"Shanghai Port", "Hamburger Port", "Nordic Copenhagen", "243E", 1850, 23, []string{"Fastest"}, LowCO2},
		{"Nanjing Port", "Hamburger Port", "Yangtze Spirit", "243E", 1720, 27, []string{"Transshipment via Shanghai", "Eco Saver"}, NormalCO2},
		{"Nanjing Port", "Cheese Port", "Yangtze Spirit", "998A", 1950, 30, []string{"Transshipment via Shanghai", "Max Coverage"}, NormalCO2},
		{"Shanghai Port", "Cheese Port", "Nordic Copenhagen", "243E", 2100, 26, []string{}, NormalCO2},
		{"Fish Port", "Hamburger Port", "Nordic Queen", "243E", 1800, 24, []string{}, LowCO2},
		{"Fish Port", "Cheese Port", "Nordic Queen", "243E", 1900, 26, []string{}, NormalCO2},
		{"Nanjing Port", "Atlantis Port", "Nordic Feeder 2", "243E", 1650, 28, []string{"Transshipment via Shanghai"}, NormalCO2},
	} {
		t.Run(tt.pol+"->"+tt.pod, func(t *testing.T) {
			got := Generate([]string{tt.pol}, []string{tt.pod})
			if len(got) != 1 {
				t.Fatalf("len = %d, want 1", len(got))
			}
			s := got[0]
			if s.Vessel != tt.vessel {
				t.Errorf("Vessel = %q, want %q", s.Vessel, tt.vessel)
			}
			if s.Voyage != tt.voyage {
				t.Errorf("Voyage = %q, want %q", s.Voyage, tt.voyage)
			}
			if s.BasePrice != tt.price {
				t.Errorf("BasePrice = %d, want %d", s.BasePrice, tt.price)
			}
			if s.TransitDays != tt.transitDays {
				t.Errorf("TransitDays = %d, want %d", s.TransitDays, tt.transitDays)
			}
			if !reflect.DeepEqual(s.Tags, tt.tags) {
				t.Errorf("Tags = %v, want %v", s.Tags, tt.tags)
			}
			if s.CO2 != tt.co2 {
				t.Errorf("CO2 = %q, want %q", s.CO2, tt.co2)
			}
			if want := Departure.AddDate(0, 0, tt.transitDays); !s.Arrival.Equal(want) {
				t.Errorf("Arrival = %v, want %v", s.Arrival, want)
			}
		})
	}
}

func TestGenerateDefaultsWhenEmpty(t *testing.T) {
	got := Generate(nil, []string{})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].PortOfLoading != DefaultPortOfLoading || got[0].PortOfDischarge != DefaultPortOfDischarge {
		t.Errorf("unexpected ports %q -> %q", got[0].PortOfLoading, got[0].PortOfDischarge)
	}
	if got[0].Vessel != "Nordic Copenhagen" {
		t.Errorf("Vessel = %q", got[0].Vessel)
	}
}

func TestGenerateOrderAndIDs(t *testing.T) {
	pols := []string{"Shanghai Port", "Nanjing Port"}
	pods := []string{"Hamburger Port", "Cheese Port"}

	got := Generate(pols, pods)

	want := []struct{ id, pol, pod string }{
		{"SCH-100", "Shanghai Port", "Hamburger Port"},
		{"SCH-101", "Shanghai Port", "Cheese Port"},
		{"SCH-102", "Nanjing Port", "Hamburger Port"},
		{"SCH-103", "Nanjing Port", "Cheese Port"},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].ID != w.id || got[i].PortOfLoading != w.pol || got[i].PortOfDischarge != w.pod {
			t.Errorf("schedule %d = %s %s->%s, want %s %s->%s", i, got[i].ID, got[i].PortOfLoading, got[i].PortOfDischarge, w.id, w.pol, w.pod)
		}
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	pols := []string{"Shanghai Port", "Nanjing Port", "Nanjing Port"}
	pods := []string{"Cheese Port", "Hamburger Port"}

	if a, b := Generate(pols, pods), Generate(pols, pods); !reflect.DeepEqual(a, b) {
		t.Errorf("Generate is not idempotent:\n%v\n%v", a, b)
	}
}

func TestGenerateAddsPortSuffix(t *testing.T) {
	got := Generate([]string{"Nanjing"}, []string{"Cheese"})[0]
	if got.PortOfLoading != "Nanjing Port" || got.PortOfDischarge != "Cheese Port" {
		t.Errorf("ports = %q -> %q", got.PortOfLoading, got.PortOfDischarge)
	}
	if got.Voyage != "998A" {
		t.Errorf("Voyage = %q, want 998A", got.Voyage)
	}
}

func TestFind(t *testing.T) {
	schedules := Generate(nil, nil)

	s, err := Find(schedules, "SCH-100")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Departure.Equal(time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Departure = %v", s.Departure)
	}

	if _, err := Find(schedules, "SCH-999"); err != ErrUnknown {
		t.Errorf("err = %v, want %v", err, ErrUnknown)
	}
}
