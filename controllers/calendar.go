package controllers

import (
	"net/http"

	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type CalendarController struct {
	Bookings *services.BookingService
}

// GetWeek handles GET /api/admin/calendar?date=YYYY-MM-DD. Without a date
// it shows the current week.
func (cc *CalendarController) GetWeek(c *gin.Context) {
	anchor := cc.Bookings.Today()
	if raw := c.Query("date"); raw != "" {
		d, err := cc.Bookings.Rules().ParseDate(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		anchor = d
	}
	c.JSON(http.StatusOK, cc.Bookings.Week(c.Request.Context(), anchor))
}
