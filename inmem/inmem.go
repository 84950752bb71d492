// Package inmem provides in-memory implementations of all the domain
// repositories. Nothing outlives the process.
package inmem

import (
	"sort"
	"sync"

	"github.com/Qalifah/freightbooking/assistant"
	"github.com/Qalifah/freightbooking/booking"
	"github.com/Qalifah/freightbooking/cargo"
)

type sessionRepository struct {
	mtx      sync.RWMutex
	sessions map[booking.SessionID]*booking.Wizard
}

func (r *sessionRepository) Store(id booking.SessionID, w *booking.Wizard) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.sessions[id] = w
	return nil
}

func (r *sessionRepository) Find(id booking.SessionID) (*booking.Wizard, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if w, ok := r.sessions[id]; ok {
		return w, nil
	}
	return nil, booking.ErrUnknownSession
}

// NewSessionRepository returns a new instance of an in-memory session repository.
func NewSessionRepository() booking.SessionRepository {
	return &sessionRepository{
		sessions: make(map[booking.SessionID]*booking.Wizard),
	}
}

type bookingRepository struct {
	mtx      sync.RWMutex
	bookings map[cargo.Reference]*cargo.Booking
}

// Store never replaces a booking; a taken reference is cargo.ErrDuplicate.
func (r *bookingRepository) Store(b *cargo.Booking) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if _, ok := r.bookings[b.Reference]; ok {
		return cargo.ErrDuplicate
	}
	r.bookings[b.Reference] = b
	return nil
}

func (r *bookingRepository) Find(ref cargo.Reference) (*cargo.Booking, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if b, ok := r.bookings[ref]; ok {
		return b, nil
	}
	return nil, cargo.ErrUnknown
}

// FindAll returns bookings in confirmation order.
func (r *bookingRepository) FindAll() []*cargo.Booking {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	bs := make([]*cargo.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		bs = append(bs, b)
	}
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].ConfirmedAt.Equal(bs[j].ConfirmedAt) {
			return bs[i].Reference < bs[j].Reference
		}
		return bs[i].ConfirmedAt.Before(bs[j].ConfirmedAt)
	})
	return bs
}

// NewBookingRepository returns a new instance of an in-memory booking repository.
func NewBookingRepository() cargo.Repository {
	return &bookingRepository{
		bookings: make(map[cargo.Reference]*cargo.Booking),
	}
}

type conversationRepository struct {
	mtx           sync.RWMutex
	conversations map[assistant.ConversationID]*assistant.Conversation
}

func (r *conversationRepository) Store(c *assistant.Conversation) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.conversations[c.ID] = c
	return nil
}

func (r *conversationRepository) Find(id assistant.ConversationID) (*assistant.Conversation, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if c, ok := r.conversations[id]; ok {
		return c, nil
	}
	return nil, assistant.ErrUnknown
}

// NewConversationRepository returns a new instance of an in-memory conversation repository.
func NewConversationRepository() assistant.Repository {
	return &conversationRepository{
		conversations: make(map[assistant.ConversationID]*assistant.Conversation),
	}
}
