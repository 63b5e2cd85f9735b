// Appointment-record HTTP handlers.
//
// This file exposes the records cache:
//   - GET    /api/v1/records            (list, weak ETag support)
//   - POST   /api/v1/records/sync       (bulk insert-ignore snapshot)
//   - POST   /api/v1/records/reconcile  (mark stale records cancelled)
//   - DELETE /api/v1/records/:id        (single-row delete)
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/repo"
	"github.com/mydoctor-app/go-booking-backend/internal/services"
)

// SyncRecordsRequest is the JSON payload for POST /api/v1/records/sync.
type SyncRecordsRequest struct {
	Records []domain.Record `json:"records" binding:"required"`
}

// SyncRecordsResponse reports how many snapshot rows were newly inserted.
type SyncRecordsResponse struct {
	Inserted int64 `json:"inserted"`
}

// ReconcileRequest carries the authoritative set of active record ids.
type ReconcileRequest struct {
	ActiveIDs []string `json:"active_ids"`
}

// ReconcileResponse reports how many records were newly cancelled.
type ReconcileResponse struct {
	Cancelled int64 `json:"cancelled"`
}

// RecordsResponse wraps a records listing.
type RecordsResponse struct {
	Records []domain.Record `json:"records"`
}

// ListRecords godoc
// @ID          listRecords
// @Summary     List appointment records
// @Description Returns the user's cached appointments. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Records
// @Produce     json
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {object}  handlers.RecordsResponse
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Router      /api/v1/records [get]
func (h *Handlers) ListRecords(c *gin.Context) {
	ctx := c.Request.Context()
	email := userEmail(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, isConcrete := h.recordSvc.(*services.RecordService); isConcrete {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.RecordsStats(ctx, db, email)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"records:%s:%d:%d"`, email, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	recs, err := h.recordSvc.List(ctx, email)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if recs == nil {
		recs = []domain.Record{}
	}
	ok(c, http.StatusOK, RecordsResponse{Records: recs})
}

// SyncRecords godoc
// @ID          syncRecords
// @Summary     Sync appointment snapshot
// @Description Bulk-inserts a server snapshot, skipping ids already cached.
// @Tags        Records
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.SyncRecordsRequest  true  "Snapshot payload"
// @Success     200  {object}  handlers.SyncRecordsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /api/v1/records/sync [post]
func (h *Handlers) SyncRecords(c *gin.Context) {
	var req SyncRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	n, err := h.recordSvc.Sync(c.Request.Context(), userEmail(c), req.Records)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSyncFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, SyncRecordsResponse{Inserted: n})
}

// ReconcileRecords godoc
// @ID          reconcileRecords
// @Summary     Reconcile cancellations
// @Description Marks locally-active records absent from active_ids as cancelled. Idempotent.
// @Tags        Records
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.ReconcileRequest  true  "Active ids payload"
// @Success     200  {object}  handlers.ReconcileResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /api/v1/records/reconcile [post]
func (h *Handlers) ReconcileRecords(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	n, err := h.recordSvc.Reconcile(c.Request.Context(), userEmail(c), req.ActiveIDs)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeSyncFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ReconcileResponse{Cancelled: n})
}

// DeleteRecord godoc
// @ID          deleteRecord
// @Summary     Delete one appointment record
// @Tags        Records
// @Produce     json
// @Param       id  path  string  true  "Record id"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Record not found"
// @Router      /api/v1/records/{id} [delete]
func (h *Handlers) DeleteRecord(c *gin.Context) {
	if err := h.recordSvc.Delete(c.Request.Context(), userEmail(c), c.Param("id")); err != nil {
		if errors.Is(err, services.ErrAppointmentNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "record not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
