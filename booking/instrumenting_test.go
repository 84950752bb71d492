package booking_test

import (
	"testing"

	"github.com/go-kit/kit/metrics"

	"github.com/Qalifah/freightbooking/booking"
)

type counter struct{ n float64 }

func (c *counter) With(...string) metrics.Counter { return c }
func (c *counter) Add(delta float64)              { c.n += delta }

type histogram struct{ values []float64 }

func (h *histogram) With(...string) metrics.Histogram { return h }
func (h *histogram) Observe(v float64)                { h.values = append(h.values, v) }

func TestInstrumentingBookingValue(t *testing.T) {
	for _, name := range []string{"proceed", "confirm"} {
		t.Run(name, func(t *testing.T) {
			value := &histogram{}
			s := booking.NewInstrumentingService(&counter{}, &histogram{}, value, newService(nil))
			id := walkToReview(t, s)

			var total int
			if name == "proceed" {
				sess, err := s.Proceed(id)
				if err != nil {
					t.Fatal(err)
				}
				total = sess.Total
			} else {
				b, err := s.Confirm(id)
				if err != nil {
					t.Fatal(err)
				}
				total = b.TotalPrice
			}

			if len(value.values) != 1 || value.values[0] != float64(total) {
				t.Errorf("booking values = %v, want [%d]", value.values, total)
			}
		})
	}
}
