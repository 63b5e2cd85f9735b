// Booking HTTP handler.
//
// PUT /book_appointment keeps the legacy wire shape (token in the JSON body).
// Clients that send an Idempotency-Key header can retry safely: a replayed
// request returns the originally created appointment instead of booking twice.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/http/middleware"
	"github.com/mydoctor-app/go-booking-backend/internal/services"
)

// BookAppointmentRequest is the JSON payload for PUT /book_appointment.
type BookAppointmentRequest struct {
	Token       string `json:"token" binding:"required"`
	DoctorEmail string `json:"doctor_email" binding:"required" example:"dr.pap@clinic.gr"`
	// DateTime is the appointment instant, RFC 3339 or "yyyy-MM-dd HH:mm".
	DateTime string `json:"date_time" binding:"required" example:"2026-09-03T10:00:00Z"`
}

// BookAppointmentResponse reports the created (or replayed) appointment.
type BookAppointmentResponse struct {
	Record   *domain.Record `json:"record"`
	Replayed bool           `json:"replayed"`
}

// parseBookingTime accepts RFC 3339 first and the space-separated local
// format the legacy client sends as a fallback.
func parseBookingTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, time.Local)
}

// BookAppointment godoc
// @ID          bookAppointment
// @Summary     Book an appointment
// @Description Books a confirmed appointment with a doctor at one of the offered slots.
// @Tags        Booking
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Safe-retry key"
// @Param       body  body  handlers.BookAppointmentRequest  true  "Booking payload"
// @Success     201  {object}  handlers.BookAppointmentResponse
// @Success     200  {object}  handlers.BookAppointmentResponse  "Replay of a prior booking"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Doctor not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Slot not offered"
// @Router      /book_appointment [put]
func (h *Handlers) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if !h.authFromBodyToken(c, req.Token) {
		return
	}

	at, err := parseBookingTime(req.DateTime)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "date_time must be RFC 3339 or yyyy-MM-dd HH:mm")
		return
	}

	idemKey, _ := middleware.GetIdempotencyKey(c)
	rec, replayed, err := h.bookingSvc.Book(c.Request.Context(), userEmail(c), req.DoctorEmail, at, idemKey)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDoctorNotFound):
			middleware.CountBooking("rejected")
			fail(c, http.StatusNotFound, ErrCodeNotFound, "doctor not found")
		case errors.Is(err, services.ErrSlotUnavailable):
			middleware.CountBooking("rejected")
			fail(c, http.StatusConflict, ErrCodeSlotUnavailable, "requested time is not an offered slot")
		default:
			middleware.CountBooking("rejected")
			fail(c, http.StatusInternalServerError, ErrCodeBookingFailed, err.Error())
		}
		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
		middleware.CountBooking("replayed")
	} else {
		middleware.CountBooking("created")
	}
	ok(c, status, BookAppointmentResponse{Record: rec, Replayed: replayed})
}
