package payments

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

// MyPayments handles GET /payments/me
func (ctl *Controller) MyPayments(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	groups, err := ctl.service.MyPayments(c.Request.Context(), session.UserID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Payments retrieved successfully", groups)
}

// BookingState handles GET /payments/booking/:bookingId
func (ctl *Controller) BookingState(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid booking ID", nil)
		return
	}

	state, err := ctl.service.BookingState(c.Request.Context(), session.UserID, bookingID, session.IsAdmin())
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Payment state retrieved", state)
}

// MethodBreakdown handles GET /payments/booking/:bookingId/methods
func (ctl *Controller) MethodBreakdown(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid booking ID", nil)
		return
	}

	summaries, err := ctl.service.MethodBreakdown(c.Request.Context(), session.UserID, bookingID, session.IsAdmin())
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Payment methods retrieved", summaries)
}

// Pay handles POST /payments/booking/:bookingId
func (ctl *Controller) Pay(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid booking ID", nil)
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	payment, err := ctl.service.Pay(c.Request.Context(), session.UserID, bookingID, req.Amount, req.PaymentMethod)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Payment processed", payment)
}

// AdminPayments handles GET /admin/payments?page=&perPage=
func (ctl *Controller) AdminPayments(c *gin.Context) {
	groups, err := ctl.service.AdminPayments(c.Request.Context())
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "10"))
	response.Success(c, http.StatusOK, "Payments retrieved successfully",
		pagination.Paginate(groups, page, perPage))
}

func respondPaymentError(c *gin.Context, err error) {
	var upstreamErr *upstream.Error

	switch {
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "Access denied", nil)
	case errors.Is(err, ErrAlreadyPaid):
		response.BadRequest(c, "This booking is already fully paid", nil)
	case errors.Is(err, ErrInvalidAmount):
		response.BadRequest(c, "Payment amount must be greater than zero", nil)
	case errors.Is(err, ErrAmountExceedsDue):
		response.BadRequest(c, "Payment amount exceeds the remaining balance", nil)
	case errors.Is(err, upstream.ErrUnavailable):
		response.Error(c, http.StatusServiceUnavailable,
			"A backend service is unreachable. Please check your connection and try again.", nil)
	case errors.As(err, &upstreamErr):
		response.Error(c, upstreamErr.StatusCode, upstreamErr.Message, nil)
	default:
		response.Error(c, http.StatusInternalServerError, "Something went wrong", nil)
	}
}
