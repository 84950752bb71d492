package booking

import (
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/Qalifah/freightbooking/addon"
	"github.com/Qalifah/freightbooking/cargo"
	"github.com/Qalifah/freightbooking/pricing"
)

type instrumentingService struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	bookingValue   metrics.Histogram
	Service
}

// NewInstrumentingService returns an instance of an instrumenting Service.
// bookingValue observes the total price of every confirmed booking.
func NewInstrumentingService(counter metrics.Counter, latency metrics.Histogram, bookingValue metrics.Histogram, s Service) Service {
	return &instrumentingService{
		requestCount:   counter,
		requestLatency: latency,
		bookingValue:   bookingValue,
		Service:        s,
	}
}

func (s *instrumentingService) observe(method string, begin time.Time) {
	s.requestCount.With("method", method).Add(1)
	s.requestLatency.With("method", method).Observe(time.Since(begin).Seconds())
}

func (s *instrumentingService) NewSession() (Session, error) {
	defer s.observe("new_session", time.Now())
	return s.Service.NewSession()
}

func (s *instrumentingService) LoadSession(id SessionID) (Session, error) {
	defer s.observe("load_session", time.Now())
	return s.Service.LoadSession(id)
}

func (s *instrumentingService) Search(id SessionID, r cargo.Request) (Session, error) {
	defer s.observe("search", time.Now())
	return s.Service.Search(id, r)
}

func (s *instrumentingService) AddPort(id SessionID, leg Leg, query string) (Session, error) {
	defer s.observe("add_port", time.Now())
	return s.Service.AddPort(id, leg, query)
}

func (s *instrumentingService) ToggleGateway(id SessionID, leg Leg, port string) (Session, error) {
	defer s.observe("toggle_gateway", time.Now())
	return s.Service.ToggleGateway(id, leg, port)
}

func (s *instrumentingService) SetScenario(id SessionID, sc pricing.Scenario) (Session, error) {
	defer s.observe("set_scenario", time.Now())
	return s.Service.SetScenario(id, sc)
}

func (s *instrumentingService) SelectSchedule(id SessionID, scheduleID string) (Session, error) {
	defer s.observe("select_schedule", time.Now())
	return s.Service.SelectSchedule(id, scheduleID)
}

func (s *instrumentingService) ToggleAddon(id SessionID, a addon.ID) (Session, error) {
	defer s.observe("toggle_addon", time.Now())
	return s.Service.ToggleAddon(id, a)
}

func (s *instrumentingService) UpdateParties(id SessionID, p cargo.Parties) (Session, error) {
	defer s.observe("update_parties", time.Now())
	return s.Service.UpdateParties(id, p)
}

func (s *instrumentingService) Proceed(id SessionID) (Session, error) {
	defer s.observe("proceed", time.Now())
	sess, err := s.Service.Proceed(id)
	if err == nil && sess.Reference != "" && sess.Step == StepConfirmation.String() {
		s.bookingValue.Observe(float64(sess.Total))
	}
	return sess, err
}

func (s *instrumentingService) Back(id SessionID) (Session, error) {
	defer s.observe("back", time.Now())
	return s.Service.Back(id)
}

func (s *instrumentingService) Confirm(id SessionID) (cargo.Booking, error) {
	defer s.observe("confirm", time.Now())
	b, err := s.Service.Confirm(id)
	if err == nil {
		s.bookingValue.Observe(float64(b.TotalPrice))
	}
	return b, err
}

func (s *instrumentingService) LoadBooking(ref cargo.Reference) (cargo.Booking, error) {
	defer s.observe("load_booking", time.Now())
	return s.Service.LoadBooking(ref)
}

func (s *instrumentingService) Bookings() []cargo.Booking {
	defer s.observe("list_bookings", time.Now())
	return s.Service.Bookings()
}

func (s *instrumentingService) Addons() []addon.Addon {
	defer s.observe("list_addons", time.Now())
	return s.Service.Addons()
}
