package upstream

// Wire types as served by the backend services. Dates and timestamps stay in
// their wire form (ISO strings); parsing happens where a value is computed on.

// Hotel is the hotel-service representation of a property.
type Hotel struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	Description   string  `json:"description"`
	Contact       string  `json:"contact"`
	AverageRating float64 `json:"averageRating"`
	PricePerNight float64 `json:"pricePerNight"`
	Image         string  `json:"image,omitempty"`
	CheckIn       string  `json:"checkIn"`  // daily check-in time, "14:00"
	CheckOut      string  `json:"checkOut"` // daily check-out time, "11:00"
}

// RoomID is the composite room key used by the hotel service.
type RoomID struct {
	HotelID int64 `json:"hotelId"`
	RoomID  int64 `json:"roomId"`
}

// Room statuses as reported by the hotel service.
const (
	RoomStatusAvailable   = "AVAILABLE"
	RoomStatusBooked      = "BOOKED"
	RoomStatusMaintenance = "UNDER_MAINTENANCE"
)

type Room struct {
	ID            RoomID  `json:"id"`
	RoomType      string  `json:"roomType"`
	PricePerNight float64 `json:"pricePerNight"`
	MaxOccupancy  int     `json:"maxOccupancy"`
	Status        string  `json:"status"`
}

type Review struct {
	ID      int64   `json:"id"`
	HotelID int64   `json:"hotelId"`
	UserID  int64   `json:"userId"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
	Date    string  `json:"date"`
}

// Booking statuses as reported by the booking service.
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Booking is one room-night reservation row. The booking service creates one
// row per selected room.
type Booking struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"userId"`
	HotelID      int64   `json:"hotelId"`
	RoomID       int64   `json:"roomId"`
	RoomType     string  `json:"roomType"`
	BookingDate  string  `json:"bookingDate"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	Status       string  `json:"status"`
	TotalAmount  float64 `json:"totalAmount"`
}

// Payment statuses as reported by the payment service.
const (
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailure = "FAILURE"
	PaymentStatusPending = "PENDING"
)

// Payment methods accepted by the payment service.
const (
	PaymentMethodCreditCard = "CREDIT_CARD"
	PaymentMethodPayPal     = "PAYPAL"
	PaymentMethodStripe     = "STRIPE"
)

type Payment struct {
	PaymentID       int64   `json:"paymentId"`
	BookingID       int64   `json:"bookingId"`
	AmountPaid      float64 `json:"amountPaid"`
	PaymentStatus   string  `json:"paymentStatus"`
	PaymentMethod   string  `json:"paymentMethod"`
	PaymentDateTime string  `json:"paymentDateTime"`
}

type User struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type Notification struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}
