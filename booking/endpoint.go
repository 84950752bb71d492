package booking

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/Qalifah/freightbooking/addon"
	"github.com/Qalifah/freightbooking/cargo"
	"github.com/Qalifah/freightbooking/pricing"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"

	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"
)

// sessionResponse is returned by every endpoint that changes a session.
type sessionResponse struct {
	Session *Session `json:"session,omitempty"`
	Err     error    `json:"error,omitempty"`
}

func (r sessionResponse) error() error { return r.Err }

func newSessionResponse(s Session, err error) sessionResponse {
	if err != nil {
		return sessionResponse{Err: err}
	}
	return sessionResponse{Session: &s}
}

type newSessionRequest struct{}

func makeNewSessionEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		_ = request.(newSessionRequest)
		return newSessionResponse(s.NewSession()), nil
	}
}

type loadSessionRequest struct {
	ID SessionID
}

func makeLoadSessionEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(loadSessionRequest)
		return newSessionResponse(s.LoadSession(req.ID)), nil
	}
}

type searchRequest struct {
	ID      SessionID
	Request cargo.Request
}

func makeSearchEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(searchRequest)
		return newSessionResponse(s.Search(req.ID, req.Request)), nil
	}
}

type addPortRequest struct {
	ID    SessionID
	Leg   Leg
	Query string
}

func makeAddPortEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(addPortRequest)
		return newSessionResponse(s.AddPort(req.ID, req.Leg, req.Query)), nil
	}
}

type toggleGatewayRequest struct {
	ID   SessionID
	Leg  Leg
	Port string
}

func makeToggleGatewayEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(toggleGatewayRequest)
		return newSessionResponse(s.ToggleGateway(req.ID, req.Leg, req.Port)), nil
	}
}

type setScenarioRequest struct {
	ID       SessionID
	Scenario pricing.Scenario
}

func makeSetScenarioEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(setScenarioRequest)
		return newSessionResponse(s.SetScenario(req.ID, req.Scenario)), nil
	}
}

type selectScheduleRequest struct {
	ID         SessionID
	ScheduleID string
}

func makeSelectScheduleEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(selectScheduleRequest)
		return newSessionResponse(s.SelectSchedule(req.ID, req.ScheduleID)), nil
	}
}

type toggleAddonRequest struct {
	ID    SessionID
	Addon addon.ID
}

func makeToggleAddonEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(toggleAddonRequest)
		return newSessionResponse(s.ToggleAddon(req.ID, req.Addon)), nil
	}
}

type updatePartiesRequest struct {
	ID      SessionID
	Parties cargo.Parties
}

func makeUpdatePartiesEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(updatePartiesRequest)
		return newSessionResponse(s.UpdateParties(req.ID, req.Parties)), nil
	}
}

type proceedRequest struct {
	ID SessionID
}

func makeProceedEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(proceedRequest)
		return newSessionResponse(s.Proceed(req.ID)), nil
	}
}

type backRequest struct {
	ID SessionID
}

func makeBackEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(backRequest)
		return newSessionResponse(s.Back(req.ID)), nil
	}
}

type confirmRequest struct {
	ID SessionID
}

type bookingResponse struct {
	Booking *cargo.Booking `json:"booking,omitempty"`
	Err     error          `json:"error,omitempty"`
}

func (r bookingResponse) error() error { return r.Err }

func makeConfirmEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(confirmRequest)
		b, err := s.Confirm(req.ID)
		if err != nil {
			return bookingResponse{Err: err}, nil
		}
		return bookingResponse{Booking: &b}, nil
	}
}

type loadBookingRequest struct {
	Reference cargo.Reference
}

func makeLoadBookingEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(loadBookingRequest)
		b, err := s.LoadBooking(req.Reference)
		if err != nil {
			return bookingResponse{Err: err}, nil
		}
		return bookingResponse{Booking: &b}, nil
	}
}

type listBookingsRequest struct{}

type listBookingsResponse struct {
	Bookings []cargo.Booking `json:"bookings"`
	Err      error           `json:"error,omitempty"`
}

func (r listBookingsResponse) error() error { return r.Err }

func makeListBookingsEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		_ = request.(listBookingsRequest)
		return listBookingsResponse{Bookings: s.Bookings(), Err: nil}, nil
	}
}

type listAddonsRequest struct{}

type listAddonsResponse struct {
	Addons []addon.Addon `json:"addons"`
	Err    error         `json:"error,omitempty"`
}

func (r listAddonsResponse) error() error { return r.Err }

func makeListAddonsEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		_ = request.(listAddonsRequest)
		return listAddonsResponse{Addons: s.Addons(), Err: nil}, nil
	}
}

// Set collects all of the endpoints that compose a booking service.
type Set struct {
	NewSessionEndpoint     endpoint.Endpoint
	LoadSessionEndpoint    endpoint.Endpoint
	SearchEndpoint         endpoint.Endpoint
	AddPortEndpoint        endpoint.Endpoint
	ToggleGatewayEndpoint  endpoint.Endpoint
	SetScenarioEndpoint    endpoint.Endpoint
	SelectScheduleEndpoint endpoint.Endpoint
	ToggleAddonEndpoint    endpoint.Endpoint
	UpdatePartiesEndpoint  endpoint.Endpoint
	ProceedEndpoint        endpoint.Endpoint
	BackEndpoint           endpoint.Endpoint
	ConfirmEndpoint        endpoint.Endpoint
	LoadBookingEndpoint    endpoint.Endpoint
	ListBookingsEndpoint   endpoint.Endpoint
	ListAddonsEndpoint     endpoint.Endpoint
}

// NewSet returns a Set that wraps the provided server, and wires in all of the
// expected endpoint middlewares via the various parameters. limit and burst
// configure one token bucket per endpoint.
func NewSet(svc Service, logger log.Logger, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, limit rate.Limit, burst int) Set {
	wrap := func(name string, e endpoint.Endpoint) endpoint.Endpoint {
		e = ratelimit.NewErroringLimiter(rate.NewLimiter(limit, burst))(e)
		e = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: name}))(e)
		e = opentracing.TraceServer(otTracer, name)(e)
		if zipkinTracer != nil {
			e = zipkin.TraceEndpoint(zipkinTracer, name)(e)
		}
		return e
	}

	logger.Log("msg", "booking endpoints ready", "rate", float64(limit), "burst", burst)

	return Set{
		NewSessionEndpoint:     wrap("NewSession", makeNewSessionEndpoint(svc)),
		LoadSessionEndpoint:    wrap("LoadSession", makeLoadSessionEndpoint(svc)),
		SearchEndpoint:         wrap("Search", makeSearchEndpoint(svc)),
		AddPortEndpoint:        wrap("AddPort", makeAddPortEndpoint(svc)),
		ToggleGatewayEndpoint:  wrap("ToggleGateway", makeToggleGatewayEndpoint(svc)),
		SetScenarioEndpoint:    wrap("SetScenario", makeSetScenarioEndpoint(svc)),
		SelectScheduleEndpoint: wrap("SelectSchedule", makeSelectScheduleEndpoint(svc)),
		ToggleAddonEndpoint:    wrap("ToggleAddon", makeToggleAddonEndpoint(svc)),
		UpdatePartiesEndpoint:  wrap("UpdateParties", makeUpdatePartiesEndpoint(svc)),
		ProceedEndpoint:        wrap("Proceed", makeProceedEndpoint(svc)),
		BackEndpoint:           wrap("Back", makeBackEndpoint(svc)),
		ConfirmEndpoint:        wrap("Confirm", makeConfirmEndpoint(svc)),
		LoadBookingEndpoint:    wrap("LoadBooking", makeLoadBookingEndpoint(svc)),
		ListBookingsEndpoint:   wrap("ListBookings", makeListBookingsEndpoint(svc)),
		ListAddonsEndpoint:     wrap("ListAddons", makeListAddonsEndpoint(svc)),
	}
}

func callSession(e endpoint.Endpoint, request interface{}) (Session, error) {
	resp, err := e(context.Background(), request)
	if err != nil {
		return Session{}, err
	}
	response := resp.(sessionResponse)
	if response.Err != nil {
		return Session{}, response.Err
	}
	return *response.Session, nil
}

func callBooking(e endpoint.Endpoint, request interface{}) (cargo.Booking, error) {
	resp, err := e(context.Background(), request)
	if err != nil {
		return cargo.Booking{}, err
	}
	response := resp.(bookingResponse)
	if response.Err != nil {
		return cargo.Booking{}, response.Err
	}
	return *response.Booking, nil
}

// NewSession implements the service interface so Set can be used as a service
func (s Set) NewSession() (Session, error) {
	return callSession(s.NewSessionEndpoint, newSessionRequest{})
}

// LoadSession implements the service interface so Set can be used as a service
func (s Set) LoadSession(id SessionID) (Session, error) {
	return callSession(s.LoadSessionEndpoint, loadSessionRequest{ID: id})
}

// Search implements the service interface so Set can be used as a service
func (s Set) Search(id SessionID, r cargo.Request) (Session, error) {
	return callSession(s.SearchEndpoint, searchRequest{ID: id, Request: r})
}

// AddPort implements the service interface so Set can be used as a service
func (s Set) AddPort(id SessionID, leg Leg, query string) (Session, error) {
	return callSession(s.AddPortEndpoint, addPortRequest{ID: id, Leg: leg, Query: query})
}

// ToggleGateway implements the service interface so Set can be used as a service
func (s Set) ToggleGateway(id SessionID, leg Leg, port string) (Session, error) {
	return callSession(s.ToggleGatewayEndpoint, toggleGatewayRequest{ID: id, Leg: leg, Port: port})
}

// SetScenario implements the service interface so Set can be used as a service
func (s Set) SetScenario(id SessionID, sc pricing.Scenario) (Session, error) {
	return callSession(s.SetScenarioEndpoint, setScenarioRequest{ID: id, Scenario: sc})
}

// SelectSchedule implements the service interface so Set can be used as a service
func (s Set) SelectSchedule(id SessionID, scheduleID string) (Session, error) {
	return callSession(s.SelectScheduleEndpoint, selectScheduleRequest{ID: id, ScheduleID: scheduleID})
}

// ToggleAddon implements the service interface so Set can be used as a service
func (s Set) ToggleAddon(id SessionID, a addon.ID) (Session, error) {
	return callSession(s.ToggleAddonEndpoint, toggleAddonRequest{ID: id, Addon: a})
}

// UpdateParties implements the service interface so Set can be used as a service
func (s Set) UpdateParties(id SessionID, p cargo.Parties) (Session, error) {
	return callSession(s.UpdatePartiesEndpoint, updatePartiesRequest{ID: id, Parties: p})
}

// Proceed implements the service interface so Set can be used as a service
func (s Set) Proceed(id SessionID) (Session, error) {
	return callSession(s.ProceedEndpoint, proceedRequest{ID: id})
}

// Back implements the service interface so Set can be used as a service
func (s Set) Back(id SessionID) (Session, error) {
	return callSession(s.BackEndpoint, backRequest{ID: id})
}

// Confirm implements the service interface so Set can be used as a service
func (s Set) Confirm(id SessionID) (cargo.Booking, error) {
	return callBooking(s.ConfirmEndpoint, confirmRequest{ID: id})
}

// LoadBooking implements the service interface so Set can be used as a service
func (s Set) LoadBooking(ref cargo.Reference) (cargo.Booking, error) {
	return callBooking(s.LoadBookingEndpoint, loadBookingRequest{Reference: ref})
}

// Bookings implements the service interface so Set can be used as a service
func (s Set) Bookings() []cargo.Booking {
	resp, err := s.ListBookingsEndpoint(context.Background(), listBookingsRequest{})
	if err != nil {
		return []cargo.Booking{}
	}
	response := resp.(listBookingsResponse)
	return response.Bookings
}

// Addons implements the service interface so Set can be used as a service
func (s Set) Addons() []addon.Addon {
	resp, err := s.ListAddonsEndpoint(context.Background(), listAddonsRequest{})
	if err != nil {
		return []addon.Addon{}
	}
	response := resp.(listAddonsResponse)
	return response.Addons
}
