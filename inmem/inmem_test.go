package inmem

import (
	"testing"
	"time"

	"github.com/Qalifah/freightbooking/assistant"
	"github.com/Qalifah/freightbooking/booking"
	"github.com/Qalifah/freightbooking/cargo"
	"github.com/Qalifah/freightbooking/location"
	"github.com/Qalifah/freightbooking/routing"
)

func TestSessionRepository(t *testing.T) {
	r := NewSessionRepository()

	if _, err := r.Find("missing"); err != booking.ErrUnknownSession {
		t.Fatalf("err = %v, want %v", err, booking.ErrUnknownSession)
	}

	w := booking.NewWizard(routing.NewService(location.NewCatalog()))
	if err := r.Store("s1", w); err != nil {
		t.Fatal(err)
	}
	got, err := r.Find("s1")
	if err != nil {
		t.Fatal(err)
	}
	if got != w {
		t.Error("Find returned a different wizard")
	}
}

func TestBookingRepository(t *testing.T) {
	r := NewBookingRepository()

	if _, err := r.Find("NLG-1"); err != cargo.ErrUnknown {
		t.Fatalf("err = %v, want %v", err, cargo.ErrUnknown)
	}

	t0 := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	r.Store(&cargo.Booking{Reference: "NLG-2", ConfirmedAt: t0.Add(time.Hour)})
	r.Store(&cargo.Booking{Reference: "NLG-1", ConfirmedAt: t0})
	r.Store(&cargo.Booking{Reference: "NLG-3", ConfirmedAt: t0.Add(time.Hour)})

	all := r.FindAll()
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	for i, want := range []cargo.Reference{"NLG-1", "NLG-2", "NLG-3"} {
		if all[i].Reference != want {
			t.Errorf("all[%d] = %s, want %s", i, all[i].Reference, want)
		}
	}

	if err := r.Store(&cargo.Booking{Reference: "NLG-1", ConfirmedAt: t0.Add(2 * time.Hour)}); err != cargo.ErrDuplicate {
		t.Errorf("duplicate Store err = %v, want %v", err, cargo.ErrDuplicate)
	}
	if b, _ := r.Find("NLG-1"); !b.ConfirmedAt.Equal(t0) {
		t.Errorf("duplicate replaced the stored booking: %+v", b)
	}

	b, err := r.Find("NLG-3")
	if err != nil {
		t.Fatal(err)
	}
	if b.Reference != "NLG-3" {
		t.Errorf("Find = %+v", b)
	}
}

func TestConversationRepository(t *testing.T) {
	r := NewConversationRepository()

	if _, err := r.Find("c1"); err != assistant.ErrUnknown {
		t.Fatalf("err = %v, want %v", err, assistant.ErrUnknown)
	}

	c := &assistant.Conversation{ID: "c1"}
	if err := r.Store(c); err != nil {
		t.Fatal(err)
	}
	got, err := r.Find("c1")
	if err != nil {
		t.Fatal(err)
	}
	if got != c {
		t.Error("Find returned a different conversation")
	}
}
