package hotels

// SubmitReviewRequest is the guest review payload.
type SubmitReviewRequest struct {
	Rating  float64 `json:"rating" binding:"required,min=1,max=5"`
	Comment string  `json:"comment" binding:"max=2000"`
}

// UpsertHotelRequest is the admin create/update payload.
type UpsertHotelRequest struct {
	Name          string  `json:"name" binding:"required"`
	Address       string  `json:"address" binding:"required"`
	City          string  `json:"city" binding:"required"`
	Country       string  `json:"country" binding:"required"`
	Description   string  `json:"description"`
	Contact       string  `json:"contact"`
	PricePerNight float64 `json:"pricePerNight" binding:"required,gt=0"`
	Image         string  `json:"image"`
	CheckIn       string  `json:"checkIn" binding:"required"`
	CheckOut      string  `json:"checkOut" binding:"required"`
}
