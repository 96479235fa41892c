package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"staymate/internal/shared/middleware"
	"staymate/internal/shared/pagination"
	"staymate/internal/shared/upstream"
	"staymate/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetDraft handles GET /bookings/draft/:hotelId
func (ctl *Controller) GetDraft(c *gin.Context) {
	session, hotelID, ok := sessionAndHotel(c)
	if !ok {
		return
	}

	view, err := ctl.service.GetDraft(c.Request.Context(), session.UserID, hotelID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Draft retrieved successfully", view)
}

// SetDates handles PUT /bookings/draft/:hotelId/dates
func (ctl *Controller) SetDates(c *gin.Context) {
	session, hotelID, ok := sessionAndHotel(c)
	if !ok {
		return
	}

	var req SetDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	view, err := ctl.service.SetDates(c.Request.Context(), session.UserID, hotelID, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Dates updated", view)
}

// SetRooms handles PUT /bookings/draft/:hotelId/rooms
func (ctl *Controller) SetRooms(c *gin.Context) {
	session, hotelID, ok := sessionAndHotel(c)
	if !ok {
		return
	}

	var req SetRoomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	view, err := ctl.service.SetRooms(c.Request.Context(), session.UserID, hotelID, req.RoomType, req.Count)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Room selection updated", view)
}

// Submit handles POST /bookings/draft/:hotelId/submit
func (ctl *Controller) Submit(c *gin.Context) {
	session, hotelID, ok := sessionAndHotel(c)
	if !ok {
		return
	}

	result, err := ctl.service.Submit(c.Request.Context(), session.UserID, hotelID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result.Message, result.Bookings)
}

// AvailableRooms handles GET /bookings/availability
func (ctl *Controller) AvailableRooms(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Query("hotelId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid hotel ID", nil)
		return
	}

	rooms, err := ctl.service.AvailableRooms(c.Request.Context(),
		hotelID, c.Query("checkInDate"), c.Query("checkOutDate"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Available rooms retrieved", rooms)
}

// MyBookings handles GET /bookings/me
func (ctl *Controller) MyBookings(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	bookings, err := ctl.service.UserBookings(c.Request.Context(), session.UserID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// UserBookings handles GET /bookings/user/:id (owner or admin)
func (ctl *Controller) UserBookings(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user ID", nil)
		return
	}
	if !session.IsAdmin() && session.UserID != userID {
		response.Error(c, http.StatusForbidden, "Access denied", nil)
		return
	}

	bookings, err := ctl.service.UserBookings(c.Request.Context(), userID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// Cancel handles DELETE /bookings/:id
func (ctl *Controller) Cancel(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid booking ID", nil)
		return
	}

	if err := ctl.service.Cancel(c.Request.Context(), session.UserID, bookingID, session.IsAdmin()); err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Booking cancelled", gin.H{
		"bookingId": bookingID,
		"status":    upstream.BookingStatusCancelled,
	})
}

// UpdateStatus handles POST /admin/bookings/:id/status?status=
func (ctl *Controller) UpdateStatus(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid booking ID", nil)
		return
	}

	status := c.Query("status")
	if err := ctl.service.UpdateStatus(c.Request.Context(), bookingID, status); err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Booking status updated", gin.H{
		"bookingId": bookingID,
		"status":    status,
	})
}

// AllBookings handles GET /admin/bookings?page=&perPage=
func (ctl *Controller) AllBookings(c *gin.Context) {
	bookings, err := ctl.service.AllBookings(c.Request.Context())
	if err != nil {
		respondBookingError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))
	response.Success(c, http.StatusOK, "Bookings retrieved successfully",
		pagination.Paginate(bookings, page, perPage))
}

// HotelBookings handles GET /admin/bookings/hotel/:hotelId
func (ctl *Controller) HotelBookings(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("hotelId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid hotel ID", nil)
		return
	}

	bookings, err := ctl.service.HotelBookings(c.Request.Context(), hotelID)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func sessionAndHotel(c *gin.Context) (middleware.Session, int64, bool) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return middleware.Session{}, 0, false
	}

	hotelID, err := strconv.ParseInt(c.Param("hotelId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid hotel ID", nil)
		return middleware.Session{}, 0, false
	}
	return session, hotelID, true
}

// respondBookingError maps service errors onto the response envelope.
// Upstream verdicts keep their status and message; transport failures read
// as connectivity problems.
func respondBookingError(c *gin.Context, err error) {
	var validationErr *ValidationError
	var upstreamErr *upstream.Error

	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(c, "Booking draft is invalid", validationErr.Fields)
	case errors.Is(err, ErrDraftNotFound):
		response.Error(c, http.StatusNotFound, "No booking draft for this hotel", nil)
	case errors.Is(err, ErrDuplicateSubmission):
		response.Error(c, http.StatusConflict, "This booking was already submitted", nil)
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "Access denied", nil)
	case errors.Is(err, ErrInvalidStatus):
		response.BadRequest(c, "Invalid booking status", nil)
	case errors.Is(err, ErrEmptyDateRange):
		response.BadRequest(c, "checkInDate and checkOutDate are required", nil)
	case errors.Is(err, upstream.ErrUnavailable):
		response.Error(c, http.StatusServiceUnavailable,
			"A backend service is unreachable. Please check your connection and try again.", nil)
	case errors.As(err, &upstreamErr):
		response.Error(c, upstreamErr.StatusCode, upstreamErr.Message, nil)
	default:
		response.Error(c, http.StatusInternalServerError, "Something went wrong", nil)
	}
}
