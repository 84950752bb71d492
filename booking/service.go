// Package booking provides the use-case of quoting and booking freight
// through a step by step wizard. Used by customers placing bookings.
package booking

import (
	"errors"
	"sync"

	"github.com/pborman/uuid"

	"github.com/Qalifah/freightbooking/addon"
	"github.com/Qalifah/freightbooking/cargo"
	"github.com/Qalifah/freightbooking/location"
	"github.com/Qalifah/freightbooking/pricing"
	"github.com/Qalifah/freightbooking/routing"
	"github.com/Qalifah/freightbooking/voyage"
)

// ErrInvalidArgument is returned when one or more arguments are invalid.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrUnknownSession is used when a booking session can't be found
var ErrUnknownSession = errors.New("unknown booking session")

// SessionID identifies a booking wizard session
type SessionID string

// SessionRepository provides access to the wizard session store
type SessionRepository interface {
	Store(id SessionID, w *Wizard) error
	Find(id SessionID) (*Wizard, error)
}

// Service is the interface that provides booking methods.
type Service interface {
	// NewSession starts a booking wizard.
	NewSession() (Session, error)

	// LoadSession returns the current state of a session.
	LoadSession(id SessionID) (Session, error)

	// Search submits the quote request.
	Search(id SessionID, r cargo.Request) (Session, error)

	// AddPort adds a manually entered gateway port to a leg.
	AddPort(id SessionID, leg Leg, query string) (Session, error)

	// ToggleGateway activates or deactivates a listed gateway port.
	ToggleGateway(id SessionID, leg Leg, port string) (Session, error)

	// SetScenario changes the door/port and customs preview.
	SetScenario(id SessionID, sc pricing.Scenario) (Session, error)

	// SelectSchedule chooses a schedule and moves on to services.
	SelectSchedule(id SessionID, scheduleID string) (Session, error)

	// ToggleAddon switches an additional service on or off.
	ToggleAddon(id SessionID, a addon.ID) (Session, error)

	// UpdateParties records the booking contacts.
	UpdateParties(id SessionID, p cargo.Parties) (Session, error)

	// Proceed moves the wizard one step forward. At review it confirms the
	// booking, exactly like Confirm.
	Proceed(id SessionID) (Session, error)

	// Back moves the wizard one step back.
	Back(id SessionID) (Session, error)

	// Confirm books the reviewed quote.
	Confirm(id SessionID) (cargo.Booking, error)

	// LoadBooking returns a confirmed booking.
	LoadBooking(ref cargo.Reference) (cargo.Booking, error)

	// Bookings returns all confirmed bookings.
	Bookings() []cargo.Booking

	// Addons returns the additional service catalog.
	Addons() []addon.Addon
}

type service struct {
	mtx        sync.Mutex
	sessions   SessionRepository
	bookings   cargo.Repository
	gateways   routing.Service
	onComplete func(cargo.Reference)
}

// maxReferenceAttempts bounds the search for a reference not yet booked.
const maxReferenceAttempts = 10

// NewService creates a booking service. onComplete, when not nil, is called
// with the reference of every confirmed booking after it is stored.
func NewService(sessions SessionRepository, bookings cargo.Repository, gateways routing.Service, onComplete func(cargo.Reference)) Service {
	return &service{
		sessions:   sessions,
		bookings:   bookings,
		gateways:   gateways,
		onComplete: onComplete,
	}
}

func (s *service) NewSession() (Session, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	id := SessionID(uuid.New())
	w := NewWizard(s.gateways, WithReferences(s.nextReference))
	if err := s.sessions.Store(id, w); err != nil {
		return Session{}, err
	}
	return assemble(id, w), nil
}

func (s *service) LoadSession(id SessionID) (Session, error) {
	return s.update(id, func(*Wizard) error { return nil })
}

func (s *service) Search(id SessionID, r cargo.Request) (Session, error) {
	return s.update(id, func(w *Wizard) error { return w.Search(r) })
}

func (s *service) AddPort(id SessionID, leg Leg, query string) (Session, error) {
	return s.update(id, func(w *Wizard) error {
		_, err := w.AddPort(leg, query)
		return err
	})
}

func (s *service) ToggleGateway(id SessionID, leg Leg, port string) (Session, error) {
	return s.update(id, func(w *Wizard) error { return w.ToggleGateway(leg, port) })
}

func (s *service) SetScenario(id SessionID, sc pricing.Scenario) (Session, error) {
	return s.update(id, func(w *Wizard) error { return w.SetScenario(sc) })
}

func (s *service) SelectSchedule(id SessionID, scheduleID string) (Session, error) {
	if scheduleID == "" {
		return Session{}, ErrInvalidArgument
	}
	return s.update(id, func(w *Wizard) error { return w.SelectSchedule(scheduleID) })
}

func (s *service) ToggleAddon(id SessionID, a addon.ID) (Session, error) {
	return s.update(id, func(w *Wizard) error { return w.ToggleAddon(a) })
}

func (s *service) UpdateParties(id SessionID, p cargo.Parties) (Session, error) {
	return s.update(id, func(w *Wizard) error { return w.SetParties(p) })
}

func (s *service) Proceed(id SessionID) (Session, error) {
	return s.update(id, func(w *Wizard) error {
		if w.Step() == StepReview {
			_, err := s.confirm(w)
			return err
		}
		return w.Next()
	})
}

func (s *service) Back(id SessionID) (Session, error) {
	return s.update(id, (*Wizard).Back)
}

func (s *service) Confirm(id SessionID) (cargo.Booking, error) {
	if id == "" {
		return cargo.Booking{}, ErrInvalidArgument
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	w, err := s.sessions.Find(id)
	if err != nil {
		return cargo.Booking{}, err
	}
	return s.confirm(w)
}

// confirm books the wizard's quote, stores the booking and reports it.
// Every way into the confirmation step goes through here.
func (s *service) confirm(w *Wizard) (cargo.Booking, error) {
	b, err := w.Confirm()
	if err != nil {
		return cargo.Booking{}, err
	}
	if err := s.bookings.Store(&b); err != nil {
		return cargo.Booking{}, err
	}
	if s.onComplete != nil {
		s.onComplete(b.Reference)
	}
	return b, nil
}

// nextReference returns a reference no stored booking uses yet. Callers
// hold s.mtx, so two sessions can't pick the same free reference.
func (s *service) nextReference() cargo.Reference {
	var ref cargo.Reference
	for i := 0; i < maxReferenceAttempts; i++ {
		ref = cargo.NextReference()
		if _, err := s.bookings.Find(ref); err == cargo.ErrUnknown {
			return ref
		}
	}
	return ref
}

func (s *service) LoadBooking(ref cargo.Reference) (cargo.Booking, error) {
	if ref == "" {
		return cargo.Booking{}, ErrInvalidArgument
	}
	b, err := s.bookings.Find(ref)
	if err != nil {
		return cargo.Booking{}, err
	}
	return *b, nil
}

func (s *service) Bookings() []cargo.Booking {
	var result []cargo.Booking
	for _, b := range s.bookings.FindAll() {
		result = append(result, *b)
	}
	return result
}

func (s *service) Addons() []addon.Addon {
	return addon.Catalog()
}

// update runs op against the session's wizard and returns the resulting
// state, or the error op failed with.
func (s *service) update(id SessionID, op func(*Wizard) error) (Session, error) {
	if id == "" {
		return Session{}, ErrInvalidArgument
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	w, err := s.sessions.Find(id)
	if err != nil {
		return Session{}, err
	}
	if err := op(w); err != nil {
		return Session{}, err
	}
	return assemble(id, w), nil
}

// Session is a read model of a booking wizard.
type Session struct {
	ID                     SessionID             `json:"id"`
	Step                   string                `json:"step"`
	Request                cargo.Request         `json:"request"`
	OriginConnections      []location.Connection `json:"origin_connections"`
	DestinationConnections []location.Connection `json:"destination_connections"`
	ActivePOLs             []string              `json:"active_pols"`
	ActivePODs             []string              `json:"active_pods"`
	Scenario               pricing.Scenario      `json:"scenario"`
	Schedules              []Quote               `json:"schedules,omitempty"`
	SelectedSchedule       *voyage.Schedule      `json:"selected_schedule,omitempty"`
	Services               addon.Selection       `json:"services"`
	Total                  int                   `json:"total_price"`
	Parties                cargo.Parties         `json:"parties"`
	Reference              cargo.Reference       `json:"reference,omitempty"`
}

// Quote is a schedule priced under the previewed scenario.
type Quote struct {
	voyage.Schedule
	PreviewPrice int `json:"preview_price"`
}

func assemble(id SessionID, w *Wizard) Session {
	s := Session{
		ID:                     id,
		Step:                   w.Step().String(),
		Request:                w.Request(),
		OriginConnections:      w.Connections(OriginLeg),
		DestinationConnections: w.Connections(DestinationLeg),
		ActivePOLs:             w.ActiveGateways(OriginLeg),
		ActivePODs:             w.ActiveGateways(DestinationLeg),
		Scenario:               w.Scenario(),
		Services:               w.Selection(),
		Total:                  w.Total(),
		Parties:                w.Parties(),
	}

	if w.Step() == StepSchedule {
		for _, sch := range w.Schedules() {
			s.Schedules = append(s.Schedules, Quote{Schedule: sch, PreviewPrice: w.PreviewPrice(sch)})
		}
	}
	if sch, ok := w.SelectedSchedule(); ok {
		s.SelectedSchedule = &sch
	}
	if b, ok := w.Booking(); ok {
		s.Reference = b.Reference
	}
	return s
}
