package hotels

import "staymate/internal/shared/upstream"

// Detail joins one hotel with its rooms and reviews for the detail page.
type Detail struct {
	upstream.Hotel
	Rooms   []upstream.Room   `json:"rooms"`
	Reviews []upstream.Review `json:"reviews"`
}

// Destination is a browsable city derived from the hotel list.
type Destination struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Count   int    `json:"hotelCount"`
	Image   string `json:"image,omitempty"`
}
