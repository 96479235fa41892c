package upstream

import (
	"context"
	"fmt"
	"net/url"
)

// BookingClient wraps the booking service REST API.
type BookingClient struct {
	*caller
}

// CreateBookingRequest is the payload for POST /bookings. The service creates
// one booking row per room id.
type CreateBookingRequest struct {
	UserID         int64   `json:"userId"`
	HotelID        int64   `json:"hotelId"`
	RoomIDs        []int64 `json:"roomIds"`
	CheckInDate    string  `json:"checkInDate"`
	CheckOutDate   string  `json:"checkOutDate"`
	TotalAmount    float64 `json:"totalAmount"`
	IdempotencyKey string  `json:"idempotencyKey,omitempty"`
}

func (c *BookingClient) Create(ctx context.Context, req CreateBookingRequest) ([]Booking, error) {
	var created []Booking
	if err := c.post(ctx, "/bookings", nil, req, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *BookingClient) ByID(ctx context.Context, id int64) (*Booking, error) {
	var booking Booking
	if err := c.get(ctx, fmt.Sprintf("/bookings/%d", id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *BookingClient) All(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.get(ctx, "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingClient) ByUser(ctx context.Context, userID int64) ([]Booking, error) {
	var bookings []Booking
	if err := c.get(ctx, fmt.Sprintf("/bookings/user/%d", userID), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingClient) ByHotel(ctx context.Context, hotelID int64) ([]Booking, error) {
	var bookings []Booking
	if err := c.get(ctx, fmt.Sprintf("/bookings/hotel/%d", hotelID), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// SearchByDate returns every booking whose stay intersects [startDate,
// endDate]. Dates are "2006-01-02" strings.
func (c *BookingClient) SearchByDate(ctx context.Context, startDate, endDate string) ([]Booking, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)

	var bookings []Booking
	if err := c.get(ctx, "/bookings/search/date", query, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *BookingClient) Cancel(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/bookings/%d", id), nil)
}

func (c *BookingClient) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := url.Values{}
	query.Set("status", status)
	return c.post(ctx, fmt.Sprintf("/bookings/%d/status", id), query, nil, nil)
}
