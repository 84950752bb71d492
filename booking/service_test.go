package booking_test

import (
	"testing"
	"time"

	"github.com/Qalifah/freightbooking/addon"
	"github.com/Qalifah/freightbooking/booking"
	"github.com/Qalifah/freightbooking/cargo"
	"github.com/Qalifah/freightbooking/inmem"
	"github.com/Qalifah/freightbooking/location"
	"github.com/Qalifah/freightbooking/routing"
)

func newService(onComplete func(cargo.Reference)) booking.Service {
	return booking.NewService(
		inmem.NewSessionRepository(),
		inmem.NewBookingRepository(),
		routing.NewService(location.NewCatalog()),
		onComplete,
	)
}

func doorToDoor() cargo.Request {
	r := cargo.DefaultRequest()
	r.ReadyDate = time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	return r
}

// walkToReview drives a fresh session up to the review step.
func walkToReview(t *testing.T, s booking.Service) booking.SessionID {
	t.Helper()

	sess, err := s.NewSession()
	if err != nil {
		t.Fatal(err)
	}
	id := sess.ID

	steps := []struct {
		name string
		op   func() (booking.Session, error)
		want string
	}{
		{"search", func() (booking.Session, error) { return s.Search(id, doorToDoor()) }, "Route Optimization"},
		{"next", func() (booking.Session, error) { return s.Proceed(id) }, "Schedule"},
		{"select", func() (booking.Session, error) { return s.SelectSchedule(id, "SCH-100") }, "Services"},
		{"next", func() (booking.Session, error) { return s.Proceed(id) }, "Details"},
		{"parties", func() (booking.Session, error) {
			return s.UpdateParties(id, cargo.Parties{ShipperName: "Ada", ShipperEmail: "ada@example.com"})
		}, "Details"},
		{"next", func() (booking.Session, error) { return s.Proceed(id) }, "Review"},
	}
	for _, st := range steps {
		got, err := st.op()
		if err != nil {
			t.Fatalf("%s: %v", st.name, err)
		}
		if got.Step != st.want {
			t.Fatalf("%s: step = %q, want %q", st.name, got.Step, st.want)
		}
	}
	return id
}

func TestNewSession(t *testing.T) {
	s := newService(nil)

	sess, err := s.NewSession()
	if err != nil {
		t.Fatal(err)
	}
	if sess.ID == "" {
		t.Fatal("empty session id")
	}
	if sess.Step != "Search" {
		t.Errorf("step = %q, want Search", sess.Step)
	}
	if !sess.Services.Has(addon.TruckingOrigin) || !sess.Services.Has(addon.TruckingDest) {
		t.Errorf("services = %v, want both trucking legs", sess.Services)
	}

	other, err := s.NewSession()
	if err != nil {
		t.Fatal(err)
	}
	if other.ID == sess.ID {
		t.Error("sessions share an id")
	}
}

func TestUnknownSession(t *testing.T) {
	s := newService(nil)

	if _, err := s.LoadSession("nope"); err != booking.ErrUnknownSession {
		t.Errorf("LoadSession err = %v, want %v", err, booking.ErrUnknownSession)
	}
	if _, err := s.Proceed("nope"); err != booking.ErrUnknownSession {
		t.Errorf("Proceed err = %v, want %v", err, booking.ErrUnknownSession)
	}
	if _, err := s.Confirm("nope"); err != booking.ErrUnknownSession {
		t.Errorf("Confirm err = %v, want %v", err, booking.ErrUnknownSession)
	}
}

func TestInvalidArguments(t *testing.T) {
	s := newService(nil)

	if _, err := s.LoadSession(""); err != booking.ErrInvalidArgument {
		t.Errorf("LoadSession err = %v, want %v", err, booking.ErrInvalidArgument)
	}
	if _, err := s.Confirm(""); err != booking.ErrInvalidArgument {
		t.Errorf("Confirm err = %v, want %v", err, booking.ErrInvalidArgument)
	}
	if _, err := s.LoadBooking(""); err != booking.ErrInvalidArgument {
		t.Errorf("LoadBooking err = %v, want %v", err, booking.ErrInvalidArgument)
	}

	sess, _ := s.NewSession()
	if _, err := s.SelectSchedule(sess.ID, ""); err != booking.ErrInvalidArgument {
		t.Errorf("SelectSchedule err = %v, want %v", err, booking.ErrInvalidArgument)
	}
}

func TestSchedulesOnlyListedAtScheduleStep(t *testing.T) {
	s := newService(nil)

	sess, _ := s.NewSession()
	sess, err := s.Search(sess.ID, doorToDoor())
	if err != nil {
		t.Fatal(err)
	}
	if len(sess.Schedules) != 0 {
		t.Errorf("route optimization lists %d schedules", len(sess.Schedules))
	}

	sess, err = s.Proceed(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sess.Schedules) == 0 {
		t.Fatal("no schedules at the schedule step")
	}
	for _, q := range sess.Schedules {
		if q.PreviewPrice < q.BasePrice {
			t.Errorf("%s preview %d below base %d", q.ID, q.PreviewPrice, q.BasePrice)
		}
	}
}

func TestConfirm(t *testing.T) {
	var completed []cargo.Reference
	s := newService(func(ref cargo.Reference) { completed = append(completed, ref) })

	id := walkToReview(t, s)

	b, err := s.Confirm(id)
	if err != nil {
		t.Fatal(err)
	}
	if b.Reference == "" {
		t.Fatal("empty booking reference")
	}
	if len(completed) != 1 || completed[0] != b.Reference {
		t.Errorf("completed = %v, want [%s]", completed, b.Reference)
	}

	sess, err := s.LoadSession(id)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Step != "Confirmation" {
		t.Errorf("step = %q, want Confirmation", sess.Step)
	}
	if sess.Reference != b.Reference {
		t.Errorf("session reference = %s, want %s", sess.Reference, b.Reference)
	}
	if sess.Total != b.TotalPrice {
		t.Errorf("session total = %d, booking total = %d", sess.Total, b.TotalPrice)
	}

	got, err := s.LoadBooking(b.Reference)
	if err != nil {
		t.Fatal(err)
	}
	if got.Schedule.ID != "SCH-100" {
		t.Errorf("booked schedule = %s, want SCH-100", got.Schedule.ID)
	}

	if all := s.Bookings(); len(all) != 1 {
		t.Errorf("len(Bookings) = %d, want 1", len(all))
	}

	if _, err := s.Confirm(id); err != booking.ErrWrongStep {
		t.Errorf("second Confirm err = %v, want %v", err, booking.ErrWrongStep)
	}
	if len(completed) != 1 {
		t.Errorf("onComplete called %d times", len(completed))
	}
}

func TestFailedOperationKeepsSession(t *testing.T) {
	s := newService(nil)

	sess, _ := s.NewSession()
	if _, err := s.Search(sess.ID, cargo.Request{}); err != booking.ErrIncompleteSearch {
		t.Fatalf("err = %v, want %v", err, booking.ErrIncompleteSearch)
	}
	got, err := s.LoadSession(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Step != "Search" {
		t.Errorf("step = %q, want Search", got.Step)
	}
	if got.Request.Origin != location.ShanghaiFactory {
		t.Errorf("origin = %q, want default", got.Request.Origin)
	}
}

func TestAddons(t *testing.T) {
	s := newService(nil)
	if got, want := len(s.Addons()), len(addon.Catalog()); got != want {
		t.Errorf("len(Addons) = %d, want %d", got, want)
	}
}

func TestAdvanceFromReview(t *testing.T) {
	tests := []struct {
		name    string
		advance func(s booking.Service, id booking.SessionID) (cargo.Reference, error)
	}{
		{"proceed", func(s booking.Service, id booking.SessionID) (cargo.Reference, error) {
			sess, err := s.Proceed(id)
			return sess.Reference, err
		}},
		{"confirm", func(s booking.Service, id booking.SessionID) (cargo.Reference, error) {
			b, err := s.Confirm(id)
			return b.Reference, err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var completed []cargo.Reference
			s := newService(func(ref cargo.Reference) { completed = append(completed, ref) })
			id := walkToReview(t, s)

			ref, err := tt.advance(s, id)
			if err != nil {
				t.Fatal(err)
			}
			if ref == "" {
				t.Fatal("empty reference")
			}

			sess, _ := s.LoadSession(id)
			if sess.Step != "Confirmation" || sess.Reference != ref {
				t.Errorf("session = %s/%s, want Confirmation/%s", sess.Step, sess.Reference, ref)
			}
			if _, err := s.LoadBooking(ref); err != nil {
				t.Errorf("LoadBooking(%s): %v", ref, err)
			}
			if n := len(s.Bookings()); n != 1 {
				t.Errorf("len(Bookings) = %d, want 1", n)
			}
			if len(completed) != 1 || completed[0] != ref {
				t.Errorf("completed = %v, want [%s]", completed, ref)
			}

			// nothing advances past confirmation
			if _, err := s.Proceed(id); err != booking.ErrNoNextStep {
				t.Errorf("Proceed at confirmation err = %v, want %v", err, booking.ErrNoNextStep)
			}
			if _, err := s.Confirm(id); err != booking.ErrWrongStep {
				t.Errorf("Confirm at confirmation err = %v, want %v", err, booking.ErrWrongStep)
			}
			if len(completed) != 1 || len(s.Bookings()) != 1 {
				t.Errorf("completed %d times, %d bookings, want 1 each", len(completed), len(s.Bookings()))
			}
		})
	}
}

// takenBookings reports the first taken references it is asked about as
// already booked.
type takenBookings struct {
	cargo.Repository
	taken   int
	queried []cargo.Reference
}

func (r *takenBookings) Find(ref cargo.Reference) (*cargo.Booking, error) {
	r.queried = append(r.queried, ref)
	if len(r.queried) <= r.taken {
		return &cargo.Booking{Reference: ref}, nil
	}
	return r.Repository.Find(ref)
}

func TestConfirmSkipsTakenReferences(t *testing.T) {
	bookings := &takenBookings{Repository: inmem.NewBookingRepository(), taken: 2}
	s := booking.NewService(
		inmem.NewSessionRepository(),
		bookings,
		routing.NewService(location.NewCatalog()),
		nil,
	)
	id := walkToReview(t, s)

	b, err := s.Confirm(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings.queried) != 3 {
		t.Fatalf("looked up %d references, want 3", len(bookings.queried))
	}
	if b.Reference != bookings.queried[2] {
		t.Errorf("reference = %s, want the first free one %s", b.Reference, bookings.queried[2])
	}
}
