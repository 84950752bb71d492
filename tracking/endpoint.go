package tracking

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"

	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"
)

type trackShipmentRequest struct {
	ID string
}

type trackShipmentResponse struct {
	Shipment *Shipment `json:"shipment,omitempty"`
	Err      error     `json:"error,omitempty"`
}

func (r trackShipmentResponse) error() error { return r.Err }

func makeTrackShipmentEndpoint(ts Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(trackShipmentRequest)
		s, err := ts.Track(req.ID)
		if err != nil {
			return trackShipmentResponse{Err: err}, nil
		}
		return trackShipmentResponse{Shipment: &s}, nil
	}
}

// Set collects all of the endpoints that compose a tracking service.
type Set struct {
	TrackShipmentEndpoint endpoint.Endpoint
}

// NewSet returns a Set that wraps the provided server, and wires in all of the
// expected endpoint middlewares via the various parameters.
func NewSet(svc Service, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, limit rate.Limit, burst int) Set {
	var trackShipmentEndpoint endpoint.Endpoint
	{
		trackShipmentEndpoint = makeTrackShipmentEndpoint(svc)
		trackShipmentEndpoint = ratelimit.NewErroringLimiter(rate.NewLimiter(limit, burst))(trackShipmentEndpoint)
		trackShipmentEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "TrackShipment"}))(trackShipmentEndpoint)
		trackShipmentEndpoint = opentracing.TraceServer(otTracer, "TrackShipment")(trackShipmentEndpoint)
		if zipkinTracer != nil {
			trackShipmentEndpoint = zipkin.TraceEndpoint(zipkinTracer, "TrackShipment")(trackShipmentEndpoint)
		}
	}
	return Set{
		TrackShipmentEndpoint: trackShipmentEndpoint,
	}
}

// Track implements the service interface so Set can be used as a service
func (s Set) Track(id string) (Shipment, error) {
	resp, err := s.TrackShipmentEndpoint(context.Background(), trackShipmentRequest{ID: id})
	if err != nil {
		return Shipment{}, err
	}
	response := resp.(trackShipmentResponse)
	if response.Err != nil {
		return Shipment{}, response.Err
	}
	return *response.Shipment, nil
}
