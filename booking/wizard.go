package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/Qalifah/freightbooking/addon"
	"github.com/Qalifah/freightbooking/cargo"
	"github.com/Qalifah/freightbooking/location"
	"github.com/Qalifah/freightbooking/pricing"
	"github.com/Qalifah/freightbooking/routing"
	"github.com/Qalifah/freightbooking/voyage"
)

// Step is a stage of the booking wizard
type Step int

// wizard steps, in flow order
const (
	StepSearch Step = iota + 1
	StepRouteOptimization
	StepSchedule
	StepServices
	StepDetails
	StepReview
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepSearch:
		return "Search"
	case StepRouteOptimization:
		return "Route Optimization"
	case StepSchedule:
		return "Schedule"
	case StepServices:
		return "Services"
	case StepDetails:
		return "Details"
	case StepReview:
		return "Review"
	case StepConfirmation:
		return "Confirmation"
	}
	return ""
}

// Leg selects the origin or destination side of a shipment
type Leg string

// valid legs
const (
	OriginLeg      Leg = "ORIGIN"
	DestinationLeg Leg = "DESTINATION"
)

// Wizard errors.
var (
	ErrWrongStep          = errors.New("operation not allowed at this step")
	ErrNoNextStep         = errors.New("no next step")
	ErrNoPreviousStep     = errors.New("no previous step")
	ErrIncompleteSearch   = errors.New("origin, destination, ready date, commodity and container are required")
	ErrEmptyPortQuery     = errors.New("port name is required")
	ErrInvalidLeg         = errors.New("leg must be ORIGIN or DESTINATION")
	ErrGatewayUnavailable = errors.New("gateway has no trucking service")
	ErrInvalidScenario    = errors.New("scenario types must be PORT or DOOR")
	ErrScheduleRequired   = errors.New("a schedule must be selected")
	ErrContactRequired    = errors.New("shipper name and email are required")
)

type edge struct {
	to     Step
	when   func(*Wizard) bool
	action func(*Wizard)
}

// forward lists the candidate edges out of each step; the first edge whose
// condition holds is taken.
var forward = map[Step][]edge{
	StepSearch: {
		{to: StepRouteOptimization, when: needsInlandHaulage, action: (*Wizard).seedGateways},
		{to: StepSchedule},
	},
	StepRouteOptimization: {{to: StepSchedule}},
	StepSchedule:          {{to: StepServices}},
	StepServices:          {{to: StepDetails}},
	StepDetails:           {{to: StepReview}},
	StepReview:            {{to: StepConfirmation, action: (*Wizard).book}},
}

// backward allows returning from Schedule to Route Optimization even when
// the search skipped it.
var backward = map[Step]Step{
	StepRouteOptimization: StepSearch,
	StepSchedule:          StepRouteOptimization,
	StepServices:          StepSchedule,
	StepDetails:           StepServices,
	StepReview:            StepDetails,
}

// gates must pass before leaving a step forward.
var gates = map[Step]func(*Wizard) error{
	StepSearch: func(w *Wizard) error {
		if !w.request.Complete() {
			return ErrIncompleteSearch
		}
		return nil
	},
	StepSchedule: func(w *Wizard) error {
		if w.schedule == nil {
			return ErrScheduleRequired
		}
		return nil
	},
	StepDetails: func(w *Wizard) error {
		if !w.parties.HasContact() {
			return ErrContactRequired
		}
		return nil
	},
}

func needsInlandHaulage(w *Wizard) bool {
	return w.request.NeedsInlandHaulage()
}

// Wizard is a single customer's booking flow. It is not safe for
// concurrent use. Failed operations leave it unchanged.
type Wizard struct {
	step    Step
	request cargo.Request
	parties cargo.Parties

	origins      []location.Connection
	destinations []location.Connection
	pols         []string
	pods         []string

	scenario  pricing.Scenario
	schedules []voyage.Schedule
	schedule  *voyage.Schedule
	services  addon.Selection
	booking   *cargo.Booking

	gateways   routing.Service
	references func() cargo.Reference
	now        func() time.Time
	onComplete func(cargo.Reference)
}

// Option configures a Wizard
type Option func(*Wizard)

// OnComplete registers a callback invoked once with the booking reference
// when the booking is confirmed.
func OnComplete(f func(cargo.Reference)) Option {
	return func(w *Wizard) { w.onComplete = f }
}

// WithReferences replaces the booking reference generator.
func WithReferences(f func() cargo.Reference) Option {
	return func(w *Wizard) { w.references = f }
}

// WithClock replaces the clock used to stamp bookings.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// NewWizard starts a booking flow at the search step.
func NewWizard(gateways routing.Service, opts ...Option) *Wizard {
	w := &Wizard{
		step:       StepSearch,
		request:    cargo.DefaultRequest(),
		scenario:   pricing.Scenario{Origin: location.Port, Destination: location.Port},
		gateways:   gateways,
		references: cargo.NextReference,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.deriveServices()
	return w
}

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// Request returns the current booking request.
func (w *Wizard) Request() cargo.Request { return w.request }

// Parties returns the contacts entered so far.
func (w *Wizard) Parties() cargo.Parties { return w.parties }

// Scenario returns the door/port and customs combination being previewed.
func (w *Wizard) Scenario() pricing.Scenario { return w.scenario }

// Connections returns the gateway candidates listed for a leg.
func (w *Wizard) Connections(leg Leg) []location.Connection {
	switch leg {
	case OriginLeg:
		return append([]location.Connection(nil), w.origins...)
	case DestinationLeg:
		return append([]location.Connection(nil), w.destinations...)
	}
	return nil
}

// ActiveGateways returns the ports selected as POL (origin) or POD
// (destination).
func (w *Wizard) ActiveGateways(leg Leg) []string {
	switch leg {
	case OriginLeg:
		return append([]string(nil), w.pols...)
	case DestinationLeg:
		return append([]string(nil), w.pods...)
	}
	return nil
}

// Schedules returns the schedules generated when the schedule step was
// last entered.
func (w *Wizard) Schedules() []voyage.Schedule {
	return append([]voyage.Schedule(nil), w.schedules...)
}

// PreviewPrice estimates a schedule's price under the current scenario.
func (w *Wizard) PreviewPrice(s voyage.Schedule) int {
	return pricing.Preview(s.BasePrice, w.scenario)
}

// SelectedSchedule returns the chosen schedule, if any.
func (w *Wizard) SelectedSchedule() (voyage.Schedule, bool) {
	if w.schedule == nil {
		return voyage.Schedule{}, false
	}
	return *w.schedule, true
}

// Selection returns the selected additional services.
func (w *Wizard) Selection() addon.Selection {
	return append(addon.Selection(nil), w.services...)
}

// Total returns the confirmed price of the chosen schedule and services.
func (w *Wizard) Total() int {
	return pricing.Confirmed(w.schedule, w.services)
}

// Booking returns the confirmed booking once the flow is complete.
func (w *Wizard) Booking() (cargo.Booking, bool) {
	if w.booking == nil {
		return cargo.Booking{}, false
	}
	return *w.booking, true
}

// Search records the request and moves on, through route optimization
// when a leg ends at a door.
func (w *Wizard) Search(r cargo.Request) error {
	if w.step != StepSearch {
		return ErrWrongStep
	}
	if !r.Complete() {
		return ErrIncompleteSearch
	}
	w.request = r
	return w.Next()
}

// AddPort adds a manually entered gateway for a leg. Ports without data
// are still added, as optimistic unknowns. The same port can be added
// more than once.
func (w *Wizard) AddPort(leg Leg, query string) (location.Connection, error) {
	if w.step != StepRouteOptimization {
		return location.Connection{}, ErrWrongStep
	}
	if leg != OriginLeg && leg != DestinationLeg {
		return location.Connection{}, ErrInvalidLeg
	}
	if strings.TrimSpace(query) == "" {
		return location.Connection{}, ErrEmptyPortQuery
	}

	conn := w.gateways.Resolve(query)
	switch leg {
	case OriginLeg:
		w.origins = append(w.origins, conn)
		if conn.HasTruckService {
			w.pols = append(w.pols, conn.PortName)
		}
	case DestinationLeg:
		w.destinations = append(w.destinations, conn)
		if conn.HasTruckService {
			w.pods = append(w.pods, conn.PortName)
		}
	}
	return conn, nil
}

// ToggleGateway switches a listed, trucking capable port in or out of the
// active gateways of a leg.
func (w *Wizard) ToggleGateway(leg Leg, port string) error {
	if w.step != StepRouteOptimization {
		return ErrWrongStep
	}

	var conns []location.Connection
	var active *[]string
	switch leg {
	case OriginLeg:
		conns, active = w.origins, &w.pols
	case DestinationLeg:
		conns, active = w.destinations, &w.pods
	default:
		return ErrInvalidLeg
	}

	if !truckable(conns, port) {
		return ErrGatewayUnavailable
	}
	*active = toggle(*active, port)
	return nil
}

// SetScenario changes the combination previewed on the schedule step.
func (w *Wizard) SetScenario(sc pricing.Scenario) error {
	if w.step != StepSchedule {
		return ErrWrongStep
	}
	if !sc.Origin.Valid() || !sc.Destination.Valid() {
		return ErrInvalidScenario
	}
	w.scenario = sc
	return nil
}

// SelectSchedule commits the previewed scenario, locks in the schedule and
// moves on to services.
func (w *Wizard) SelectSchedule(id string) error {
	if w.step != StepSchedule {
		return ErrWrongStep
	}
	s, err := voyage.Find(w.schedules, id)
	if err != nil {
		return err
	}

	w.request.OriginKind = w.scenario.Origin
	w.request.DestinationKind = w.scenario.Destination
	if w.scenario.IncludeCustoms {
		w.services = w.services.With(addon.CustomsExport, addon.CustomsImport)
	}
	w.schedule = &s
	return w.Next()
}

// ToggleAddon switches an additional service on or off.
func (w *Wizard) ToggleAddon(id addon.ID) error {
	if w.step != StepServices {
		return ErrWrongStep
	}
	services, err := w.services.Toggle(id)
	if err != nil {
		return err
	}
	w.services = services
	return nil
}

// SetParties records the booking contacts.
func (w *Wizard) SetParties(p cargo.Parties) error {
	if w.step != StepDetails {
		return ErrWrongStep
	}
	w.parties = p
	return nil
}

// Confirm books the reviewed quote and completes the flow.
func (w *Wizard) Confirm() (cargo.Booking, error) {
	if w.step != StepReview {
		return cargo.Booking{}, ErrWrongStep
	}
	if err := w.Next(); err != nil {
		return cargo.Booking{}, err
	}
	return *w.booking, nil
}

// Next moves forward along the first allowed edge of the current step.
func (w *Wizard) Next() error {
	edges, ok := forward[w.step]
	if !ok {
		return ErrNoNextStep
	}
	if gate, ok := gates[w.step]; ok {
		if err := gate(w); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if e.when != nil && !e.when(w) {
			continue
		}
		if e.action != nil {
			e.action(w)
		}
		w.enter(e.to)
		return nil
	}
	return ErrNoNextStep
}

// Back returns to the previous step.
func (w *Wizard) Back() error {
	prev, ok := backward[w.step]
	if !ok {
		return ErrNoPreviousStep
	}
	w.enter(prev)
	return nil
}

func (w *Wizard) enter(s Step) {
	w.step = s
	switch s {
	case StepSchedule:
		w.scenario.Origin = w.request.OriginKind
		w.scenario.Destination = w.request.DestinationKind
		w.schedules = voyage.Generate(w.pols, w.pods)
		w.schedule = nil
	case StepConfirmation:
		if w.onComplete != nil {
			w.onComplete(w.booking.Reference)
		}
	}
	w.deriveServices()
}

func (w *Wizard) deriveServices() {
	w.services = addon.DeriveDefaults(w.services, w.request.OriginKind, w.request.DestinationKind)
}

// seedGateways lists the system default gateways of both facilities and
// activates the trucking capable ones.
func (w *Wizard) seedGateways() {
	w.origins = w.gateways.Gateways(w.request.Origin)
	w.destinations = w.gateways.Gateways(w.request.Destination)
	w.pols = truckablePorts(w.origins)
	w.pods = truckablePorts(w.destinations)
}

func (w *Wizard) book() {
	w.booking = cargo.New(w.references(), w.request, *w.schedule, w.services, w.parties, w.Total(), w.now())
}

func truckable(conns []location.Connection, port string) bool {
	for _, c := range conns {
		if c.PortName == port && c.HasTruckService {
			return true
		}
	}
	return false
}

func truckablePorts(conns []location.Connection) []string {
	var ports []string
	for _, c := range conns {
		if c.HasTruckService {
			ports = append(ports, c.PortName)
		}
	}
	return ports
}

// toggle removes every occurrence of port, or appends it when absent.
func toggle(ports []string, port string) []string {
	out := make([]string, 0, len(ports)+1)
	found := false
	for _, p := range ports {
		if p == port {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		out = append(out, port)
	}
	return out
}
