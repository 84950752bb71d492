package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"
	"github.com/go-kit/kit/transport"
	kithttp "github.com/go-kit/kit/transport/http"
)

var errBadRoute = errors.New("bad route")

// MakeHandler returns a handler for the assistant service.
func MakeHandler(endpoints Set, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger kitlog.Logger) http.Handler {
	r := mux.NewRouter()

	opts := []kithttp.ServerOption{
		kithttp.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
		kithttp.ServerErrorEncoder(encodeError),
	}
	if zipkinTracer != nil {
		opts = append(opts, zipkin.HTTPServerTrace(zipkinTracer))
	}

	startConversationHandler := kithttp.NewServer(
		endpoints.StartConversationEndpoint,
		decodeStartConversationRequest,
		encodeResponse,
		append(opts, kithttp.ServerBefore(opentracing.HTTPToContext(otTracer, "StartConversation", logger)))...,
	)
	loadConversationHandler := kithttp.NewServer(
		endpoints.LoadConversationEndpoint,
		decodeLoadConversationRequest,
		encodeResponse,
		append(opts, kithttp.ServerBefore(opentracing.HTTPToContext(otTracer, "LoadConversation", logger)))...,
	)
	sendHandler := kithttp.NewServer(
		endpoints.SendEndpoint,
		decodeSendRequest,
		encodeResponse,
		append(opts, kithttp.ServerBefore(opentracing.HTTPToContext(otTracer, "Send", logger)))...,
	)

	r.Handle("/assistant/v1/conversations", startConversationHandler).Methods("POST")
	r.Handle("/assistant/v1/conversations/{id}", loadConversationHandler).Methods("GET")
	r.Handle("/assistant/v1/conversations/{id}/messages", sendHandler).Methods("POST")

	return r
}

func decodeStartConversationRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return startConversationRequest{}, nil
}

func decodeLoadConversationRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, ok := mux.Vars(r)["id"]
	if !ok {
		return nil, errBadRoute
	}
	return loadConversationRequest{ID: ConversationID(id)}, nil
}

func decodeSendRequest(_ context.Context, r *http.Request) (interface{}, error) {
	id, ok := mux.Vars(r)["id"]
	if !ok {
		return nil, errBadRoute
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}

	return sendRequest{ID: ConversationID(id), Text: body.Text}, nil
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
	switch err {
	case ErrUnknown:
		w.WriteHeader(http.StatusNotFound)
	case ErrPending:
		w.WriteHeader(http.StatusConflict)
	case ErrEmptyMessage:
		w.WriteHeader(http.StatusUnprocessableEntity)
	case ErrInvalidArgument, errBadRoute, io.EOF, io.ErrUnexpectedEOF:
		w.WriteHeader(http.StatusBadRequest)
	case ratelimit.ErrLimited:
		w.WriteHeader(http.StatusTooManyRequests)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
