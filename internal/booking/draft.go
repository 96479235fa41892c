package booking

import (
	"math"
	"time"

	"staymate/internal/shared/upstream"
)

// Builder applies selection and date changes to a draft against the rooms
// currently available for its window, recomputing the total after every
// change.
type Builder struct {
	draft     Draft
	available []upstream.Room
}

// NewBuilder wraps a draft with the available-room list its selections are
// resolved against. The list order must be the inventory fetch order; room
// selection depends on it being stable.
func NewBuilder(draft Draft, available []upstream.Room) *Builder {
	return &Builder{draft: draft, available: available}
}

// Draft returns the current draft state.
func (b *Builder) Draft() Draft {
	return b.draft
}

// SetDates replaces the stay window and recomputes the total.
func (b *Builder) SetDates(checkIn, checkOut string) {
	b.draft.CheckInDate = checkIn
	b.draft.CheckOutDate = checkOut
	b.recompute()
}

// SetRoomCount selects the first count available rooms of roomType, keeping
// selections of other types. Calling with a lower count shrinks the
// selection from the tail: the first rooms of the type stay selected.
func (b *Builder) SetRoomCount(roomType string, count int) {
	if count < 0 {
		count = 0
	}

	types := make(map[int64]string, len(b.available))
	for _, room := range b.available {
		types[room.ID.RoomID] = room.RoomType
	}

	// Keep ids of other (or unknown) types.
	kept := make([]int64, 0, len(b.draft.RoomIDs))
	for _, id := range b.draft.RoomIDs {
		if types[id] != roomType {
			kept = append(kept, id)
		}
	}

	// First-N of the requested type, in inventory order.
	for _, room := range b.available {
		if count == 0 {
			break
		}
		if room.RoomType == roomType {
			kept = append(kept, room.ID.RoomID)
			count--
		}
	}

	b.draft.RoomIDs = kept
	b.recompute()
}

// Nights is the stay length: at least one night, rounded up. Zero when the
// date range is missing or inverted.
func (b *Builder) Nights() int {
	nights, ok := nightsBetween(b.draft.CheckInDate, b.draft.CheckOutDate)
	if !ok {
		return 0
	}
	return nights
}

// DatesValid reports whether the draft has a usable date range. Room
// selection stays disabled until it does.
func (b *Builder) DatesValid() bool {
	_, ok := nightsBetween(b.draft.CheckInDate, b.draft.CheckOutDate)
	return ok
}

// recompute rederives TotalAmount from the selection and window. An invalid
// window forces the total to zero.
func (b *Builder) recompute() {
	nights, ok := nightsBetween(b.draft.CheckInDate, b.draft.CheckOutDate)
	if !ok {
		b.draft.TotalAmount = 0
		return
	}

	prices := make(map[int64]float64, len(b.available))
	for _, room := range b.available {
		prices[room.ID.RoomID] = room.PricePerNight
	}

	var total float64
	for _, id := range b.draft.RoomIDs {
		total += prices[id] * float64(nights)
	}
	b.draft.TotalAmount = total
}

// Validate checks the draft for submission.
func (b *Builder) Validate() []FieldError {
	return b.draft.Validate()
}

// Validate returns every field error of the draft.
func (d Draft) Validate() []FieldError {
	var errs []FieldError

	if len(d.RoomIDs) == 0 {
		errs = append(errs, FieldError{Field: "roomIds", Message: "At least one room must be selected."})
	}
	if d.CheckInDate == "" {
		errs = append(errs, FieldError{Field: "checkInDate", Message: "Check-in date is required."})
	}
	if d.CheckOutDate == "" {
		errs = append(errs, FieldError{Field: "checkOutDate", Message: "Check-out date is required."})
	}
	if d.CheckInDate != "" && d.CheckOutDate != "" {
		if _, ok := nightsBetween(d.CheckInDate, d.CheckOutDate); !ok {
			errs = append(errs, FieldError{Field: "checkOutDate", Message: "Check-out must be after check-in."})
		}
	}

	return errs
}

// nightsBetween parses the window and returns max(1, ceil(days)). ok is
// false when either date is missing, unparsable, or checkOut <= checkIn.
func nightsBetween(checkIn, checkOut string) (int, bool) {
	if checkIn == "" || checkOut == "" {
		return 0, false
	}

	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return 0, false
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return 0, false
	}
	if !out.After(in) {
		return 0, false
	}

	days := math.Ceil(out.Sub(in).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return int(days), true
}
