package addon

import "github.com/Qalifah/freightbooking/location"

// Selection is an ordered set of chosen additional services. Methods never
// modify the receiver.
type Selection []ID

// exclusive pairs services that can't both serve the same inland leg.
var exclusive = map[ID]ID{
	RailOrigin:     TruckingOrigin,
	TruckingOrigin: RailOrigin,
	RailDest:       TruckingDest,
	TruckingDest:   RailDest,
}

// Has reports whether id is selected.
func (s Selection) Has(id ID) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// With returns s plus every id not already selected.
func (s Selection) With(ids ...ID) Selection {
	out := append(Selection(nil), s...)
	for _, id := range ids {
		if !out.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Without returns s minus id.
func (s Selection) Without(id ID) Selection {
	out := make(Selection, 0, len(s))
	for _, v := range s {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Toggle flips id in or out of the selection. Selecting a rail or trucking
// service drops the other mode for the same leg.
func (s Selection) Toggle(id ID) (Selection, error) {
	if _, err := Find(id); err != nil {
		return s, err
	}

	var out Selection
	if s.Has(id) {
		out = s.Without(id)
	} else {
		out = s.With(id)
	}

	if other, ok := exclusive[id]; ok && out.Has(id) {
		out = out.Without(other)
	}
	return out, nil
}

// DeriveDefaults adds trucking to every door leg that has no inland
// transport mode yet. It only ever adds, so an explicit rail choice stays.
func DeriveDefaults(s Selection, origin, destination location.Kind) Selection {
	out := append(Selection(nil), s...)
	if origin == location.Door && !out.Has(TruckingOrigin) && !out.Has(RailOrigin) {
		out = append(out, TruckingOrigin)
	}
	if destination == location.Door && !out.Has(TruckingDest) && !out.Has(RailDest) {
		out = append(out, TruckingDest)
	}
	return out
}
