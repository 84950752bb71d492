package assistant

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"

	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
)

type conversationResponse struct {
	Conversation *Conversation `json:"conversation,omitempty"`
	Err          error         `json:"error,omitempty"`
}

func (r conversationResponse) error() error { return r.Err }

func newConversationResponse(c Conversation, err error) conversationResponse {
	if err != nil {
		return conversationResponse{Err: err}
	}
	return conversationResponse{Conversation: &c}
}

type startConversationRequest struct{}

func makeStartConversationEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		_ = request.(startConversationRequest)
		return newConversationResponse(s.StartConversation()), nil
	}
}

type loadConversationRequest struct {
	ID ConversationID
}

func makeLoadConversationEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(loadConversationRequest)
		return newConversationResponse(s.LoadConversation(req.ID)), nil
	}
}

type sendRequest struct {
	ID   ConversationID
	Text string
}

func makeSendEndpoint(s Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(sendRequest)
		return newConversationResponse(s.Send(ctx, req.ID, req.Text)), nil
	}
}

// Set collects all of the endpoints that compose an assistant service.
// The model call has its own circuit breaker inside the service, so the
// set only rate limits and traces.
type Set struct {
	StartConversationEndpoint endpoint.Endpoint
	LoadConversationEndpoint  endpoint.Endpoint
	SendEndpoint              endpoint.Endpoint
}

// NewSet returns a Set that wraps the provided server, and wires in all of the
// expected endpoint middlewares via the various parameters.
func NewSet(svc Service, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, limit rate.Limit, burst int) Set {
	wrap := func(name string, e endpoint.Endpoint) endpoint.Endpoint {
		e = ratelimit.NewErroringLimiter(rate.NewLimiter(limit, burst))(e)
		e = opentracing.TraceServer(otTracer, name)(e)
		if zipkinTracer != nil {
			e = zipkin.TraceEndpoint(zipkinTracer, name)(e)
		}
		return e
	}

	return Set{
		StartConversationEndpoint: wrap("StartConversation", makeStartConversationEndpoint(svc)),
		LoadConversationEndpoint:  wrap("LoadConversation", makeLoadConversationEndpoint(svc)),
		SendEndpoint:              wrap("Send", makeSendEndpoint(svc)),
	}
}
