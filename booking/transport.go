package booking

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"

	"github.com/go-kit/kit/endpoint"
	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"
	"github.com/go-kit/kit/transport"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/Qalifah/freightbooking/addon"
	"github.com/Qalifah/freightbooking/cargo"
	"github.com/Qalifah/freightbooking/location"
	"github.com/Qalifah/freightbooking/pricing"
	"github.com/Qalifah/freightbooking/voyage"
)

// ReadyDateLayout is the wire format of a request's ready date.
const ReadyDateLayout = "2006-01-02"

var errBadRoute = errors.New("bad route")

// MakeHandler returns a handler for the booking service.
func MakeHandler(endpoints Set, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger kitlog.Logger) http.Handler {
	r := mux.NewRouter()

	opts := []kithttp.ServerOption{
		kithttp.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
		kithttp.ServerErrorEncoder(encodeError),
	}
	if zipkinTracer != nil {
		opts = append(opts, zipkin.HTTPServerTrace(zipkinTracer))
	}

	handle := func(method, path, name string, e endpoint.Endpoint, dec kithttp.DecodeRequestFunc) {
		r.Handle(path, kithttp.NewServer(
			e,
			dec,
			encodeResponse,
			append(opts, kithttp.ServerBefore(opentracing.HTTPToContext(otTracer, name, logger)))...,
		)).Methods(method)
	}

	handle("POST", "/booking/v1/sessions", "NewSession", endpoints.NewSessionEndpoint, decodeNewSessionRequest)
	handle("GET", "/booking/v1/sessions/{id}", "LoadSession", endpoints.LoadSessionEndpoint, decodeLoadSessionRequest)
	handle("POST", "/booking/v1/sessions/{id}/search", "Search", endpoints.SearchEndpoint, decodeSearchRequest)
	handle("POST", "/booking/v1/sessions/{id}/ports", "AddPort", endpoints.AddPortEndpoint, decodeAddPortRequest)
	handle("POST", "/booking/v1/sessions/{id}/gateways", "ToggleGateway", endpoints.ToggleGatewayEndpoint, decodeToggleGatewayRequest)
	handle("PUT", "/booking/v1/sessions/{id}/scenario", "SetScenario", endpoints.SetScenarioEndpoint, decodeSetScenarioRequest)
	handle("POST", "/booking/v1/sessions/{id}/schedule", "SelectSchedule", endpoints.SelectScheduleEndpoint, decodeSelectScheduleRequest)
	handle("POST", "/booking/v1/sessions/{id}/addons/{addon}", "ToggleAddon", endpoints.ToggleAddonEndpoint, decodeToggleAddonRequest)
	handle("PUT", "/booking/v1/sessions/{id}/parties", "UpdateParties", endpoints.UpdatePartiesEndpoint, decodeUpdatePartiesRequest)
	handle("POST", "/booking/v1/sessions/{id}/next", "Proceed", endpoints.ProceedEndpoint, decodeProceedRequest)
	handle("POST", "/booking/v1/sessions/{id}/back", "Back", endpoints.BackEndpoint, decodeBackRequest)
	handle("POST", "/booking/v1/sessions/{id}/confirm", "Confirm", endpoints.ConfirmEndpoint, decodeConfirmRequest)
	handle("GET", "/booking/v1/bookings", "ListBookings", endpoints.ListBookingsEndpoint, decodeListBookingsRequest)
	handle("GET", "/booking/v1/bookings/{reference}", "LoadBooking", endpoints.LoadBookingEndpoint, decodeLoadBookingRequest)
	handle("GET", "/booking/v1/addons", "ListAddons", endpoints.ListAddonsEndpoint, decodeListAddonsRequest)

	return r
}

func sessionID(r *http.Request) (SessionID, error) {
	id, ok := mux.Vars(r)["id"]
	if !ok {
		return "", errBadRoute
	}
	return SessionID(id), nil
}

func decodeNewSessionRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return newSessionRequest{}, nil
}

func decodeLoadSessionRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}
	return loadSessionRequest{ID: id}, nil
}

func decodeSearchRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}

	var body struct {
		Origin          string `json:"origin"`
		Destination     string `json:"destination"`
		ReadyDate       string `json:"ready_date"`
		Commodity       string `json:"commodity"`
		ContainerType   string `json:"container_type"`
		OriginType      string `json:"origin_type"`
		DestinationType string `json:"destination_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	var ready time.Time
	if body.ReadyDate != "" {
		ready, err = time.Parse(ReadyDateLayout, body.ReadyDate)
		if err != nil {
			return nil, ErrInvalidArgument
		}
	}

	return searchRequest{
		ID: id,
		Request: cargo.Request{
			Origin:          body.Origin,
			Destination:     body.Destination,
			ReadyDate:       ready,
			Commodity:       cargo.Commodity(body.Commodity),
			Container:       cargo.ContainerType(body.ContainerType),
			OriginKind:      location.Kind(body.OriginType),
			DestinationKind: location.Kind(body.DestinationType),
		},
	}, nil
}

func decodeAddPortRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}

	var body struct {
		Leg  string `json:"leg"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	return addPortRequest{ID: id, Leg: Leg(body.Leg), Query: body.Name}, nil
}

func decodeToggleGatewayRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}

	var body struct {
		Leg  string `json:"leg"`
		Port string `json:"port"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	return toggleGatewayRequest{ID: id, Leg: Leg(body.Leg), Port: body.Port}, nil
}

func decodeSetScenarioRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}

	var sc pricing.Scenario
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		return nil, err
	}

	return setScenarioRequest{ID: id, Scenario: sc}, nil
}

func decodeSelectScheduleRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}

	var body struct {
		ScheduleID string `json:"schedule_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	return selectScheduleRequest{ID: id, ScheduleID: body.ScheduleID}, nil
}

func decodeToggleAddonRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}
	a, ok := mux.Vars(r)["addon"]
	if !ok {
		return nil, errBadRoute
	}
	return toggleAddonRequest{ID: id, Addon: addon.ID(a)}, nil
}

func decodeUpdatePartiesRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}

	var p cargo.Parties
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return nil, err
	}

	return updatePartiesRequest{ID: id, Parties: p}, nil
}

func decodeProceedRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}
	return proceedRequest{ID: id}, nil
}

func decodeBackRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}
	return backRequest{ID: id}, nil
}

func decodeConfirmRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}
	return confirmRequest{ID: id}, nil
}

func decodeLoadBookingRequest(_ context.Context, r *http.Request) (interface{}, error) {
	ref, ok := mux.Vars(r)["reference"]
	if !ok {
		return nil, errBadRoute
	}
	return loadBookingRequest{Reference: cargo.Reference(ref)}, nil
}

func decodeListBookingsRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return listBookingsRequest{}, nil
}

func decodeListAddonsRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return listAddonsRequest{}, nil
}

func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if e, ok := response.(errorer); ok && e.error() != nil {
		encodeError(ctx, e.error(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}

type errorer interface {
	error() error
}

// encode errors from business-logic
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode(err))
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

func statusCode(err error) int {
	switch err {
	case ErrUnknownSession, cargo.ErrUnknown, voyage.ErrUnknown, addon.ErrUnknown:
		return http.StatusNotFound
	case ErrWrongStep, ErrNoNextStep, ErrNoPreviousStep, ErrScheduleRequired:
		return http.StatusConflict
	case ErrIncompleteSearch, ErrContactRequired, ErrEmptyPortQuery,
		ErrInvalidLeg, ErrGatewayUnavailable, ErrInvalidScenario:
		return http.StatusUnprocessableEntity
	case ErrInvalidArgument, errBadRoute, io.EOF, io.ErrUnexpectedEOF:
		return http.StatusBadRequest
	case ratelimit.ErrLimited:
		return http.StatusTooManyRequests
	case gobreaker.ErrOpenState, gobreaker.ErrTooManyRequests:
		return http.StatusServiceUnavailable
	}
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	if errors.As(err, &syntax) || errors.As(err, &typ) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
