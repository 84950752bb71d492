package assistant_test

import (
	"context"
	"testing"

	"github.com/go-kit/kit/metrics"

	"github.com/Qalifah/freightbooking/assistant"
	"github.com/Qalifah/freightbooking/inmem"
)

type counter struct{ n float64 }

func (c *counter) With(...string) metrics.Counter { return c }
func (c *counter) Add(delta float64)              { c.n += delta }

type histogram struct{ n int }

func (h *histogram) With(...string) metrics.Histogram { return h }
func (h *histogram) Observe(float64)                  { h.n++ }

func TestInstrumentingService(t *testing.T) {
	var (
		count     = &counter{}
		latency   = &histogram{}
		fallbacks = &counter{}
	)

	var s assistant.Service
	s = assistant.NewService(inmem.NewConversationRepository(), assistant.Unavailable)
	s = assistant.NewInstrumentingService(count, latency, fallbacks, s)

	c, err := s.StartConversation()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Send(context.Background(), c.ID, "Hi"); err != nil {
		t.Fatal(err)
	}
	if got := s.Ask(context.Background(), "Hi", nil); got != assistant.FallbackBusy {
		t.Fatalf("Ask = %q", got)
	}

	if count.n != 3 || latency.n != 3 {
		t.Errorf("count = %v, latency observations = %d, want 3 each", count.n, latency.n)
	}
	// Send answers through the inner service, so only the direct Ask is
	// seen as a fallback here.
	if fallbacks.n != 1 {
		t.Errorf("fallback count = %v, want 1", fallbacks.n)
	}
}
