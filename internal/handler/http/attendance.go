package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/wathiq-erp/attendance-engine/internal/domain/attendance"
	"github.com/wathiq-erp/attendance-engine/internal/handler/http/response"
	"github.com/wathiq-erp/attendance-engine/internal/pkg/validator"
)

type AttendanceHandler interface {
	Process(w http.ResponseWriter, r *http.Request)
	ListSummaries(w http.ResponseWriter, r *http.Request)
	ListTimesheets(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Process implements AttendanceHandler. Manual runs carry the caller's
// identity so the written rows record who triggered them.
func (h *attendanceHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	var req attendance.ProcessRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	actor := attendance.SystemActor()
	if userID := userIDFromContext(r); userID != "" {
		actor = attendance.UserActor(userID)
	}

	report, err := h.attendanceService.Process(r.Context(), req, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ProcessResponse{
		Message: fmt.Sprintf("Processed %s attendance for %s",
			report.Mode, report.Date.Format("2006-01-02")),
		ProcessedCount:    report.ProcessedCount,
		NotificationsSent: report.NotificationsSent,
		Results:           report.Results,
	})
}

// ListSummaries implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListSummaries(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summaries, err := h.attendanceService.ListSummaries(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summaries)
}

// ListTimesheets implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.attendanceService.ListTimesheets(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// dateParam reads the optional ?date= query parameter, defaulting to
// today.
func dateParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now().Truncate(24 * time.Hour), nil
	}

	date, ok := validator.IsValidDate(raw)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be formatted YYYY-MM-DD",
		}}
	}
	return date, nil
}

// userIDFromContext extracts the authenticated user's ID from the JWT
// claims, empty when absent.
func userIDFromContext(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}
