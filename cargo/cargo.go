package cargo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/pborman/uuid"

	"github.com/Qalifah/freightbooking/addon"
	"github.com/Qalifah/freightbooking/voyage"
)

// Reference uniquely identifies a confirmed booking
type Reference string

// Booking is the confirmed outcome of a booking session. It is never
// changed after creation.
type Booking struct {
	Reference   Reference       `json:"reference"`
	Request     Request         `json:"request"`
	Schedule    voyage.Schedule `json:"schedule"`
	Services    addon.Selection `json:"services"`
	Parties     Parties         `json:"parties"`
	TotalPrice  int             `json:"total_price"`
	ConfirmedAt time.Time       `json:"confirmed_at"`
}

// New creates a booking, copying the selection so later changes to the
// caller's slice don't leak in.
func New(ref Reference, req Request, s voyage.Schedule, services addon.Selection, parties Parties, total int, at time.Time) *Booking {
	s.Tags = append([]string(nil), s.Tags...)
	return &Booking{
		Reference:   ref,
		Request:     req,
		Schedule:    s,
		Services:    append(addon.Selection(nil), services...),
		Parties:     parties,
		TotalPrice:  total,
		ConfirmedAt: at,
	}
}

// Repository provides access to the booking store
type Repository interface {
	Store(b *Booking) error
	Find(ref Reference) (*Booking, error)
	FindAll() []*Booking
}

// ErrUnknown is used when a booking can't be found
var ErrUnknown = errors.New("unknown booking")

// ErrDuplicate is returned when storing a booking under a taken reference.
var ErrDuplicate = errors.New("booking reference already taken")

// NextReference generates a new booking reference.
func NextReference() Reference {
	n := binary.BigEndian.Uint32(uuid.NewRandom()[:4]) % 1000000
	return Reference(fmt.Sprintf("NLG-%d", n))
}
