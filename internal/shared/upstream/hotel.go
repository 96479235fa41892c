package upstream

import (
	"context"
	"fmt"
)

// HotelClient wraps the hotel service REST API, including the room and
// review sub-resources.
type HotelClient struct {
	*caller
}

// HotelRequest is the admin create/update payload.
type HotelRequest struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	Description   string  `json:"description"`
	Contact       string  `json:"contact"`
	PricePerNight float64 `json:"pricePerNight"`
	Image         string  `json:"image,omitempty"`
	CheckIn       string  `json:"checkIn"`
	CheckOut      string  `json:"checkOut"`
}

// ReviewRequest is the review submission payload.
type ReviewRequest struct {
	HotelID int64   `json:"hotelId"`
	UserID  int64   `json:"userId"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

func (c *HotelClient) List(ctx context.Context) ([]Hotel, error) {
	var hotels []Hotel
	if err := c.get(ctx, "/hotels", nil, &hotels); err != nil {
		return nil, err
	}
	return hotels, nil
}

func (c *HotelClient) ByID(ctx context.Context, id int64) (*Hotel, error) {
	var hotel Hotel
	if err := c.get(ctx, fmt.Sprintf("/hotels/%d", id), nil, &hotel); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (c *HotelClient) Create(ctx context.Context, req HotelRequest) (*Hotel, error) {
	var hotel Hotel
	if err := c.post(ctx, "/hotels", nil, req, &hotel); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (c *HotelClient) Update(ctx context.Context, id int64, req HotelRequest) (*Hotel, error) {
	var hotel Hotel
	if err := c.put(ctx, fmt.Sprintf("/hotels/%d", id), nil, req, &hotel); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (c *HotelClient) Delete(ctx context.Context, id int64) error {
	return c.del(ctx, fmt.Sprintf("/hotels/%d", id), nil)
}

// Rooms returns the full room inventory of a hotel.
func (c *HotelClient) Rooms(ctx context.Context, hotelID int64) ([]Room, error) {
	var rooms []Room
	if err := c.get(ctx, fmt.Sprintf("/rooms/%d", hotelID), nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *HotelClient) ReviewsByHotel(ctx context.Context, hotelID int64) ([]Review, error) {
	var reviews []Review
	if err := c.get(ctx, fmt.Sprintf("/reviews/hotel/%d", hotelID), nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *HotelClient) CreateReview(ctx context.Context, req ReviewRequest) (*Review, error) {
	var review Review
	if err := c.post(ctx, "/reviews", nil, req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
