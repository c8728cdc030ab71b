// controllers/booking.go
package controllers

import (
	"net/http"
	"strings"

	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// BookingInput is the JSON body of a booking submission.
type BookingInput struct {
	Services []string `json:"services" binding:"required,min=1"`
	Name     string   `json:"name" binding:"max=120"`
	Phone    string   `json:"phone" binding:"required"`
	Email    string   `json:"email" binding:"omitempty,email"`
	Date     string   `json:"date" binding:"required"`
	Time     string   `json:"time" binding:"required"`
	Notes    string   `json:"notes" binding:"max=1000"`
}

func (in BookingInput) request() services.BookingRequest {
	return services.BookingRequest{
		Services: in.Services,
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    in.Email,
		Date:     in.Date,
		Time:     in.Time,
		Notes:    in.Notes,
	}
}

type BookingController struct {
	Bookings *services.BookingService
}

// GetAvailability handles GET /api/availability?date=&services=a,b
func (bc *BookingController) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "date is required")
		return
	}
	var ids []string
	for _, id := range strings.Split(c.Query("services"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	result, err := bc.Bookings.Availability(c.Request.Context(), date, ids)
	if err != nil {
		respondServiceError(c, err, "Failed to load availability")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBookingWindow handles GET /api/booking-window
func (bc *BookingController) GetBookingWindow(c *gin.Context) {
	c.JSON(http.StatusOK, bc.Bookings.Window())
}

// CreateBooking handles POST /api/bookings
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var input BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bc.Bookings.Submit(c.Request.Context(), input.request(), identityFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Could not save booking")
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetMyBookings handles GET /api/bookings/mine
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	c.JSON(http.StatusOK, bc.Bookings.ListMine(c.Request.Context(), identityFromContext(c)))
}

// ListBookings handles GET /api/admin/bookings?range=&status=&q=
func (bc *BookingController) ListBookings(c *gin.Context) {
	filter := services.BookingFilter{
		Range:  c.DefaultQuery("range", services.RangeAll),
		Status: c.Query("status"),
		Search: c.Query("q"),
	}
	c.JSON(http.StatusOK, bc.Bookings.List(c.Request.Context(), filter))
}

// GetBooking handles GET /api/admin/bookings/:id
func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := bc.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to load booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// AdminCreateBooking handles POST /api/admin/bookings
func (bc *BookingController) AdminCreateBooking(c *gin.Context) {
	var input BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bc.Bookings.AdminCreate(c.Request.Context(), input.request(), identityFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Could not save booking")
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ApproveBooking handles PUT /api/admin/bookings/:id/approve
func (bc *BookingController) ApproveBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := bc.Bookings.Approve(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to approve booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// RejectBooking handles PUT /api/admin/bookings/:id/reject
func (bc *BookingController) RejectBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := bc.Bookings.Reject(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to reject booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles DELETE /api/admin/bookings/:id
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := bc.Bookings.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Failed to delete booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
