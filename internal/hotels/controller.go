package hotels

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

// List handles GET /hotels?search=&city=&minPrice=&maxPrice=&minRating=&page=&perPage=
func (ctl *Controller) List(c *gin.Context) {
	filter := Filter{
		Query:     c.Query("search"),
		City:      c.Query("city"),
		MinPrice:  queryFloat(c, "minPrice"),
		MaxPrice:  queryFloat(c, "maxPrice"),
		MinRating: queryFloat(c, "minRating"),
	}

	hotels, err := ctl.service.List(c.Request.Context(), filter)
	if err != nil {
		respondHotelError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "9"))
	response.Success(c, http.StatusOK, "Hotels retrieved successfully",
		pagination.Paginate(hotels, page, perPage))
}

// Detail handles GET /hotels/:id
func (ctl *Controller) Detail(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid hotel ID", nil)
		return
	}

	detail, err := ctl.service.Detail(c.Request.Context(), hotelID)
	if err != nil {
		respondHotelError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Hotel retrieved successfully", detail)
}

// Destinations handles GET /destinations
func (ctl *Controller) Destinations(c *gin.Context) {
	destinations, err := ctl.service.Destinations(c.Request.Context())
	if err != nil {
		respondHotelError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Destinations retrieved successfully", destinations)
}

// Reviews handles GET /hotels/:id/reviews
func (ctl *Controller) Reviews(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid hotel ID", nil)
		return
	}

	reviews, err := ctl.service.Reviews(c.Request.Context(), hotelID)
	if err != nil {
		respondHotelError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Reviews retrieved successfully", reviews)
}

// SubmitReview handles POST /hotels/:id/reviews
func (ctl *Controller) SubmitReview(c *gin.Context) {
	session, ok := middleware.SessionFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid hotel ID", nil)
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	review, err := ctl.service.SubmitReview(c.Request.Context(), session.UserID, hotelID, req.Rating, req.Comment)
	if err != nil {
		respondHotelError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Review submitted", review)
}

// Create handles POST /admin/hotels
func (ctl *Controller) Create(c *gin.Context) {
	var req UpsertHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	hotel, err := ctl.service.Create(c.Request.Context(), toHotelRequest(req))
	if err != nil {
		respondHotelError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Hotel created", hotel)
}

// Update handles PUT /admin/hotels/:id
func (ctl *Controller) Update(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid hotel ID", nil)
		return
	}

	var req UpsertHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	hotel, err := ctl.service.Update(c.Request.Context(), hotelID, toHotelRequest(req))
	if err != nil {
		respondHotelError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Hotel updated", hotel)
}

// Delete handles DELETE /admin/hotels/:id
func (ctl *Controller) Delete(c *gin.Context) {
	hotelID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid hotel ID", nil)
		return
	}

	if err := ctl.service.Delete(c.Request.Context(), hotelID); err != nil {
		respondHotelError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Hotel deleted", gin.H{"hotelId": hotelID})
}

func toHotelRequest(req UpsertHotelRequest) upstream.HotelRequest {
	return upstream.HotelRequest{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		Description:   req.Description,
		Contact:       req.Contact,
		PricePerNight: req.PricePerNight,
		Image:         req.Image,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
	}
}

func queryFloat(c *gin.Context, name string) float64 {
	v, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		return 0
	}
	return v
}

func respondHotelError(c *gin.Context, err error) {
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
