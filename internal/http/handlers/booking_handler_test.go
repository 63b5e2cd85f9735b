package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/mydoctor-app/go-booking-backend/internal/domain"
	"github.com/mydoctor-app/go-booking-backend/internal/services"
)

func TestBookAppointment_Created(t *testing.T) {
	s := newStubs()
	s.booking.bookFn = func(_ context.Context, userEmail, doctorEmail string, at time.Time, idemKey string) (*domain.Record, bool, error) {
		if userEmail != "a@x.com" || doctorEmail != "dr@clinic.gr" {
			t.Fatalf("book called with (%q, %q)", userEmail, doctorEmail)
		}
		if !at.Equal(time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC)) {
			t.Fatalf("book called at %v", at)
		}
		return &domain.Record{ID: "r1", IsConfirmed: true}, false, nil
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPut, "/book_appointment", BookAppointmentRequest{
		Token: "good-token", DoctorEmail: "dr@clinic.gr", DateTime: "2026-09-03T10:00:00Z",
	}, nil)
	mustStatus(t, w, http.StatusCreated)
	resp := decode[BookAppointmentResponse](t, w)
	if resp.Replayed || resp.Record == nil || resp.Record.ID != "r1" {
		t.Fatalf("response = %+v", resp)
	}
}

func TestBookAppointment_LegacyTimeFormat(t *testing.T) {
	s := newStubs()
	var gotAt time.Time
	s.booking.bookFn = func(_ context.Context, _, _ string, at time.Time, _ string) (*domain.Record, bool, error) {
		gotAt = at
		return &domain.Record{ID: "r1"}, false, nil
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPut, "/book_appointment", BookAppointmentRequest{
		Token: "good-token", DoctorEmail: "dr@clinic.gr", DateTime: "2026-09-03 12:30",
	}, nil)
	mustStatus(t, w, http.StatusCreated)
	if gotAt.Hour() != 12 || gotAt.Minute() != 30 {
		t.Fatalf("parsed %v, want 12:30", gotAt)
	}
}

func TestBookAppointment_BadTime(t *testing.T) {
	s := newStubs()
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPut, "/book_appointment", BookAppointmentRequest{
		Token: "good-token", DoctorEmail: "dr@clinic.gr", DateTime: "tomorrow-ish",
	}, nil)
	mustStatus(t, w, http.StatusBadRequest)
}

func TestBookAppointment_InvalidToken(t *testing.T) {
	s := newStubs()
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPut, "/book_appointment", BookAppointmentRequest{
		Token: "wrong", DoctorEmail: "dr@clinic.gr", DateTime: "2026-09-03T10:00:00Z",
	}, nil)
	mustStatus(t, w, http.StatusUnauthorized)
}

func TestBookAppointment_DoctorNotFound(t *testing.T) {
	s := newStubs()
	s.booking.bookFn = func(context.Context, string, string, time.Time, string) (*domain.Record, bool, error) {
		return nil, false, services.ErrDoctorNotFound
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPut, "/book_appointment", BookAppointmentRequest{
		Token: "good-token", DoctorEmail: "nobody@clinic.gr", DateTime: "2026-09-03T10:00:00Z",
	}, nil)
	mustStatus(t, w, http.StatusNotFound)
}

func TestBookAppointment_SlotUnavailable(t *testing.T) {
	s := newStubs()
	s.booking.bookFn = func(context.Context, string, string, time.Time, string) (*domain.Record, bool, error) {
		return nil, false, services.ErrSlotUnavailable
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPut, "/book_appointment", BookAppointmentRequest{
		Token: "good-token", DoctorEmail: "dr@clinic.gr", DateTime: "2026-09-03T13:00:00Z",
	}, nil)
	mustStatus(t, w, http.StatusConflict)
	if resp := decode[ErrorResponse](t, w); resp.Code != ErrCodeSlotUnavailable {
		t.Fatalf("code = %q", resp.Code)
	}
}

func TestBookAppointment_Replay(t *testing.T) {
	s := newStubs()
	s.booking.bookFn = func(context.Context, string, string, time.Time, string) (*domain.Record, bool, error) {
		return &domain.Record{ID: "r1"}, true, nil
	}
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPut, "/book_appointment", BookAppointmentRequest{
		Token: "good-token", DoctorEmail: "dr@clinic.gr", DateTime: "2026-09-03T10:00:00Z",
	}, nil)
	// Replays answer 200, not 201.
	mustStatus(t, w, http.StatusOK)
	if resp := decode[BookAppointmentResponse](t, w); !resp.Replayed {
		t.Fatalf("replayed flag not set: %+v", resp)
	}
}
