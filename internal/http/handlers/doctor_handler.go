// Doctor directory HTTP handlers.
//
// POST /get_doctors_by_clinic_name keeps the legacy wire shape: the access
// token travels in the JSON body alongside the clinic name.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/services"
)

// DoctorsByClinicRequest is the JSON payload for POST /get_doctors_by_clinic_name.
type DoctorsByClinicRequest struct {
	Token      string `json:"token" binding:"required"`
	ClinicName string `json:"clinic_name" binding:"required" example:"Central Clinic"`
}

// DoctorsResponse wraps a doctor listing.
type DoctorsResponse struct {
	Doctors []domain.Doctor `json:"doctors"`
}

// DoctorsByClinic godoc
// @ID          doctorsByClinic
// @Summary     List doctors of a clinic
// @Description Returns the doctors working at the named clinic, best rated first.
// @Tags        Doctors
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.DoctorsByClinicRequest  true  "Clinic lookup payload"
// @Success     200  {object}  handlers.DoctorsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /get_doctors_by_clinic_name [post]
func (h *Handlers) DoctorsByClinic(c *gin.Context) {
	var req DoctorsByClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if !h.authFromBodyToken(c, req.Token) {
		return
	}

	docs, err := h.doctorSvc.ListByClinic(c.Request.Context(), req.ClinicName)
	if err != nil {
		if errors.Is(err, services.ErrEmptyField) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "clinic_name required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if docs == nil {
		docs = []domain.Doctor{}
	}
	ok(c, http.StatusOK, DoctorsResponse{Doctors: docs})
}
