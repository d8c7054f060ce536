package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mtlprog/duedate/internal/handler/dto"
	"github.com/mtlprog/duedate/internal/service"
)

// handleCalculateDueDate computes a due date without storing it.
// @Summary Calculate a due date
// @Description Adds working hours (Mon-Fri, 09:00-17:00 UTC) to a submission timestamp
// @Tags due-date
// @Accept json
// @Produce json
// @Param request body dto.CalculateDueDateRequest true "Submission and turnaround"
// @Success 200 {object} dto.DueDateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /due-date [post]
func (h *Handler) handleCalculateDueDate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateDueDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	submittedAt, err := h.calculator.Validator().ValidateInput(req.SubmittedAt, req.TurnaroundHours)
	if err != nil {
		slog.Debug("due date request rejected", "submitted_at", req.SubmittedAt, "error", err)
		respondDomainError(w, err)
		return
	}

	dueAt := h.calculator.ComputeDueDate(submittedAt, req.TurnaroundHours)

	respondJSON(w, http.StatusOK, dto.DueDateResponse{
		SubmittedAt:     service.FormatDueDate(submittedAt),
		TurnaroundHours: req.TurnaroundHours,
		DueAt:           service.FormatDueDate(dueAt),
	})
}
