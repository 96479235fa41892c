package booking

// SetDatesRequest updates the draft's stay window.
type SetDatesRequest struct {
	CheckInDate  string `json:"checkInDate" binding:"required,staydate"`
	CheckOutDate string `json:"checkOutDate" binding:"required,staydate"`
}

// SetRoomsRequest selects how many rooms of one type the draft should hold.
type SetRoomsRequest struct {
	RoomType string `json:"roomType" binding:"required"`
	Count    int    `json:"count" binding:"min=0"`
}
