package booking

import (
	"fmt"
	"strings"

	"staymate/internal/shared/upstream"
)

// DateLayout is the wire format for stay dates.
const DateLayout = "2006-01-02"

// Draft is an in-progress, unsubmitted booking selection. It lives in Redis
// under the owning user and hotel until submitted or expired; nothing reaches
// the booking service before Submit.
type Draft struct {
	UserID         int64   `json:"userId"`
	HotelID        int64   `json:"hotelId"`
	RoomIDs        []int64 `json:"roomIds"`
	CheckInDate    string  `json:"checkInDate"`
	CheckOutDate   string  `json:"checkOutDate"`
	TotalAmount    float64 `json:"totalAmount"`
	IdempotencyKey string  `json:"idempotencyKey"`
}

// FieldError is a client-side validation failure tied to one draft field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the field errors of an invalid draft. The
// request never reaches the booking service when validation fails.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field.Field, field.Message))
	}
	return "invalid booking draft: " + strings.Join(parts, "; ")
}

// DraftView is the draft plus everything the booking page needs to render
// it: the rooms still available for the chosen window and the computed stay
// length.
type DraftView struct {
	Draft          Draft           `json:"draft"`
	AvailableRooms []upstream.Room `json:"availableRooms"`
	Nights         int             `json:"nights"`
	// RoomSelectionEnabled is false until the draft has a valid date range;
	// no total is better than a guessed one.
	RoomSelectionEnabled bool `json:"roomSelectionEnabled"`
}

// SubmitResult is returned after the booking service accepted the draft.
type SubmitResult struct {
	Bookings []upstream.Booking `json:"bookings"`
	Message  string             `json:"message"`
}

// EnrichedBooking is a booking row joined with guest and hotel context for
// list views. Enrichment failures degrade to placeholder values, never to a
// failed page.
type EnrichedBooking struct {
	upstream.Booking
	UserFirstName     string `json:"userFirstName"`
	UserLastName      string `json:"userLastName"`
	HotelName         string `json:"hotelName"`
	HotelCheckInTime  string `json:"hotelCheckInTime"`
	HotelCheckOutTime string `json:"hotelCheckOutTime"`
}
