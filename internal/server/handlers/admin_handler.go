package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"resultportal/internal/server/util"
	"resultportal/internal/students"
)

// AdminHandler serves the protected student/mark management endpoints.
type AdminHandler struct {
	StudentService *students.Service
}

// StudentRequest is the JSON body for creating or updating a student.
type StudentRequest struct {
	SeatNumber  string `json:"seat_number"`
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
}

// MarkRequest is the JSON body for recording one subject score. Score is a
// string on the wire because it arrives straight from a form field.
type MarkRequest struct {
	Score string `json:"score"`
}

// CreateStudent handles POST /api/admin/students
func (h *AdminHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req StudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	student, err := h.StudentService.Create(r.Context(), req.SeatNumber, req.FullName, req.DateOfBirth)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, student)
}

// ListStudents handles GET /api/admin/students?order_by=seat_number
func (h *AdminHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	results, err := h.StudentService.List(r.Context(), r.URL.Query().Get("order_by"))
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, results)
}

// GetStudent handles GET /api/admin/students/{id}
func (h *AdminHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	result, err := h.StudentService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, result)
}

// UpdateStudent handles PUT /api/admin/students/{id}
func (h *AdminHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	var req StudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	student, err := h.StudentService.Update(r.Context(), chi.URLParam(r, "id"),
		req.SeatNumber, req.FullName, req.DateOfBirth)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, student)
}

// DeleteStudent handles DELETE /api/admin/students/{id}
func (h *AdminHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := h.StudentService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Student deleted",
	})
}

// SetMark handles PUT /api/admin/students/{id}/marks/{subject}
func (h *AdminHandler) SetMark(w http.ResponseWriter, r *http.Request) {
	var req MarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updatedBy := ""
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		updatedBy = claims.Username
	}

	mark, err := h.StudentService.SetMark(r.Context(), chi.URLParam(r, "id"),
		chi.URLParam(r, "subject"), req.Score, updatedBy)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, mark)
}

// GetStats handles GET /api/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	cohort, err := h.StudentService.Cohort(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, cohort)
}
