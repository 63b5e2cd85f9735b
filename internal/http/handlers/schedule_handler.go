// Schedule HTTP handlers.
//
// This file exposes the slot-generator endpoints:
//   - GET /api/v1/schedule/dates?year=&month=   (bookable dates of a month)
//   - GET /api/v1/schedule/slots?date=          (time slots for a date)
//
// Availability is derived from the current date at call time; nothing here
// touches storage.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mydoctor-app/go-booking-backend/internal/utils"
)

// AvailableDatesResponse lists the bookable dates of one month.
type AvailableDatesResponse struct {
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Dates []string `json:"dates"`
}

// TimeSlotsResponse lists the offered time slots for one date.
type TimeSlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// AvailableDates godoc
// @ID          availableDates
// @Summary     Bookable dates of a month
// @Description Current month: today through month end. Future month: every day. Past month: none.
// @Tags        Schedule
// @Produce     json
// @Param       year   query  int  false  "Year (defaults to current)"
// @Param       month  query  int  false  "Month 1-12 (defaults to current)"
// @Success     200  {object}  handlers.AvailableDatesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /api/v1/schedule/dates [get]
func (h *Handlers) AvailableDates(c *gin.Context) {
	now := time.Now()
	year := utils.AtoiDefault(c.Query("year"), now.Year())
	month := utils.AtoiDefault(c.Query("month"), int(now.Month()))
	if month < 1 || month > 12 || year < 1970 || year > 9999 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "month must be 1-12 and year sane")
		return
	}

	dates := h.scheduleSvc.AvailableDates(year, time.Month(month))
	ok(c, http.StatusOK, AvailableDatesResponse{Year: year, Month: month, Dates: dates})
}

// TimeSlots godoc
// @ID          timeSlots
// @Summary     Time slots for a date
// @Description Returns the fixed ordered slot list for an available date; empty for past dates.
// @Tags        Schedule
// @Produce     json
// @Param       date  query  string  true  "Date (yyyy-MM-dd)"
// @Success     200  {object}  handlers.TimeSlotsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /api/v1/schedule/slots [get]
func (h *Handlers) TimeSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date required (yyyy-MM-dd)")
		return
	}

	slots := h.scheduleSvc.TimeSlotsForDate(date)
	if slots == nil {
		slots = []string{}
	}
	ok(c, http.StatusOK, TimeSlotsResponse{Date: date, Slots: slots})
}
