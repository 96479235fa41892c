package notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"staymate/internal/shared/middleware"
	"staymate/internal/shared/upstream"
	"staymate/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// List handles GET /notifications
func (ctl *Controller) List(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	view, err := ctl.service.List(c.Request.Context(), session.UserID)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Notifications retrieved successfully", view)
}

// MarkRead handles PUT /notifications/:id/read
func (ctl *Controller) MarkRead(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	notificationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid notification ID", nil)
		return
	}

	if err := ctl.service.MarkRead(c.Request.Context(), session.UserID, notificationID); err != nil {
		respondNotificationError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Notification marked as read", gin.H{"id": notificationID})
}

func respondNotificationError(c *gin.Context, err error) {
	var upstreamErr *upstream.Error

	switch {
	case errors.Is(err, upstream.ErrUnavailable):
		response.Error(c, http.StatusServiceUnavailable,
			"A backend service is unreachable. Please check your connection and try again.", nil)
	case errors.As(err, &upstreamErr):
		response.Error(c, upstreamErr.StatusCode, upstreamErr.Message, nil)
	default:
		response.Error(c, http.StatusInternalServerError, "Something went wrong", nil)
	}
}
