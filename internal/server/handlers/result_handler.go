package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"resultportal/internal/auth"
	"resultportal/internal/exporter"
	"resultportal/internal/server/util"
	"resultportal/internal/shared"
	"resultportal/internal/students"
)

// ResultHandler serves the public student-facing endpoints. Both are POST:
// the credentials travel in the body, never in the URL, so seat numbers and
// birthdates stay out of access logs and browser history.
type ResultHandler struct {
	AuthService    *auth.Service
	StudentService *students.Service
}

// ResultRequest carries the two-factor student credentials.
type ResultRequest struct {
	SeatNumber  string `json:"seat_number"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
}

// GetResult handles POST /api/results
func (h *ResultHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	student, ok := h.resolve(w, r)
	if !ok {
		return
	}

	result, err := h.StudentService.ResultForStudent(r.Context(), student)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, result)
}

// DownloadMarkscard handles POST /api/results/markscard
func (h *ResultHandler) DownloadMarkscard(w http.ResponseWriter, r *http.Request) {
	student, ok := h.resolve(w, r)
	if !ok {
		return
	}

	result, err := h.StudentService.ResultForStudent(r.Context(), student)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	buf, err := exporter.BuildMarkscard(&result.Student, &result.Result, time.Now())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, exporter.Filename(student)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// resolve runs the two-factor gate and writes the error response itself on
// failure.
func (h *ResultHandler) resolve(w http.ResponseWriter, r *http.Request) (*shared.Student, bool) {
	var req ResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	resolved, err := h.AuthService.ResolveStudent(r.Context(), req.SeatNumber, req.DateOfBirth)
	if err != nil {
		util.HandleServiceError(w, err)
		return nil, false
	}
	return resolved, true
}
