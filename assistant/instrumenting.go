package assistant

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"
)

type instrumentingService struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	fallbackCount  metrics.Counter
	Service
}

// NewInstrumentingService returns an instance of an instrumenting Service.
// fallbacks counts answers that did not come from the model.
func NewInstrumentingService(counter metrics.Counter, latency metrics.Histogram, fallbacks metrics.Counter, s Service) Service {
	return &instrumentingService{
		requestCount:   counter,
		requestLatency: latency,
		fallbackCount:  fallbacks,
		Service:        s,
	}
}

func (s *instrumentingService) observe(method string, begin time.Time) {
	s.requestCount.With("method", method).Add(1)
	s.requestLatency.With("method", method).Observe(time.Since(begin).Seconds())
}

func (s *instrumentingService) Ask(ctx context.Context, message string, history []Turn) string {
	defer s.observe("ask", time.Now())
	reply := s.Service.Ask(ctx, message, history)
	if reply == FallbackBusy || reply == FallbackEmpty {
		s.fallbackCount.Add(1)
	}
	return reply
}

func (s *instrumentingService) StartConversation() (Conversation, error) {
	defer s.observe("start_conversation", time.Now())
	return s.Service.StartConversation()
}

func (s *instrumentingService) LoadConversation(id ConversationID) (Conversation, error) {
	defer s.observe("load_conversation", time.Now())
	return s.Service.LoadConversation(id)
}

func (s *instrumentingService) Send(ctx context.Context, id ConversationID, text string) (Conversation, error) {
	defer s.observe("send", time.Now())
	return s.Service.Send(ctx, id, text)
}
