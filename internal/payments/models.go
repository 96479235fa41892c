package payments

import "staymate/internal/shared/upstream"

// Group is the per-booking payment summary shown on the "my payments" page.
// TotalAmount comes from the booking record; TotalPaid only counts SUCCESS
// payments. Money counts once confirmed, nothing earlier.
type Group struct {
	BookingID       int64              `json:"bookingId"`
	Payments        []upstream.Payment `json:"payments"`
	TotalAmount     float64            `json:"totalAmount"`
	TotalPaid       float64            `json:"totalPaid"`
	RemainingAmount float64            `json:"remainingAmount"`
	IsFullyPaid     bool               `json:"isFullyPaid"`
}

// MethodSummary is the per-method rollup inside a group. Status is a display
// heuristic: SUCCESS only when every payment under the method succeeded,
// PENDING otherwise. It is not ledger truth.
type MethodSummary struct {
	Method string  `json:"paymentMethod"`
	Amount float64 `json:"amount"`
	Status string  `json:"status"`
}

// AdminGroup is the admin console view of one booking's payments: the group
// status follows the latest transaction, and the group is enriched with
// booking, guest and hotel context fetched per group.
type AdminGroup struct {
	BookingID             int64              `json:"bookingId"`
	TotalAmount           float64            `json:"totalAmount"`
	Status                string             `json:"status"`
	LatestTransactionDate string             `json:"latestTransactionDate"`
	Payments              []upstream.Payment `json:"payments"`

	Booking        *upstream.Booking `json:"booking,omitempty"`
	GuestFirstName string            `json:"guestFirstName"`
	GuestLastName  string            `json:"guestLastName"`
	HotelName      string            `json:"hotelName"`
}

// State is the payment-page snapshot for a single booking.
type State struct {
	Booking         *upstream.Booking `json:"booking"`
	Hotel           *upstream.Hotel   `json:"hotel,omitempty"`
	TotalAmount     float64           `json:"totalAmount"`
	AmountPaid      float64           `json:"amountPaid"`
	RemainingAmount float64           `json:"remainingAmount"`
}
