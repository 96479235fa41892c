package users

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

// Login handles POST /auth/login
func (ctl *Controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	auth, err := ctl.service.Login(c.Request.Context(), upstream.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", auth)
}

// Register handles POST /auth/register
func (ctl *Controller) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	auth, err := ctl.service.Register(c.Request.Context(), upstream.RegisterRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Registration successful", auth)
}

// Profile handles GET /users/me
func (ctl *Controller) Profile(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	user, err := ctl.service.Profile(c.Request.Context(), session.UserID)
	if err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved successfully", user)
}

// UpdateProfile handles PUT /users/me
func (ctl *Controller) UpdateProfile(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	user, err := ctl.service.UpdateProfile(c.Request.Context(), session.UserID, upstream.UpdateUserRequest{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", user)
}

// Bookmarks handles GET /users/me/bookmarks
func (ctl *Controller) Bookmarks(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	ids, err := ctl.service.Bookmarks(c.Request.Context(), session.UserID)
	if err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Bookmarks retrieved successfully", ids)
}

// BookmarkedHotels handles GET /users/me/bookmarks/hotels
func (ctl *Controller) BookmarkedHotels(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	hotels, err := ctl.service.BookmarkedHotels(c.Request.Context(), session.UserID)
	if err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Bookmarked hotels retrieved successfully", hotels)
}

// AddBookmark handles POST /users/me/bookmarks/:hotelId
func (ctl *Controller) AddBookmark(c *gin.Context) {
	session, hotelID, ok := sessionAndHotel(c)
	if !ok {
		return
	}

	if err := ctl.service.AddBookmark(c.Request.Context(), session.UserID, hotelID); err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Bookmark added", gin.H{"hotelId": hotelID})
}

// RemoveBookmark handles DELETE /users/me/bookmarks/:hotelId
func (ctl *Controller) RemoveBookmark(c *gin.Context) {
	session, hotelID, ok := sessionAndHotel(c)
	if !ok {
		return
	}

	if err := ctl.service.RemoveBookmark(c.Request.Context(), session.UserID, hotelID); err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Bookmark removed", gin.H{"hotelId": hotelID})
}

// AllUsers handles GET /admin/users
func (ctl *Controller) AllUsers(c *gin.Context) {
	userList, err := ctl.service.AllUsers(c.Request.Context())
	if err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved successfully", userList)
}

// DeleteUser handles DELETE /admin/users/:id
func (ctl *Controller) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user ID", nil)
		return
	}

	if err := ctl.service.DeleteUser(c.Request.Context(), userID); err != nil {
		respondUserError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted", gin.H{"userId": userID})
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

func respondUserError(c *gin.Context, err error) {
	var upstreamErr *upstream.Error

	switch {
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "Access denied", nil)
	case errors.Is(err, upstream.ErrUnavailable):
		response.Error(c, http.StatusServiceUnavailable,
			"A backend service is unreachable. Please check your connection and try again.", nil)
	case errors.As(err, &upstreamErr):
		response.Error(c, upstreamErr.StatusCode, upstreamErr.Message, nil)
	default:
		response.Error(c, http.StatusInternalServerError, "Something went wrong", nil)
	}
}
