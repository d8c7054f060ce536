package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/mtlprog/duedate/internal/handler/dto"
	"github.com/mtlprog/duedate/internal/service"
)

// handleCreateTask stores a task together with its computed due date.
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskDetail
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(ctx, service.CreateTaskParams{
		Title:           req.Title,
		SubmittedAt:     req.SubmittedAt,
		TurnaroundHours: req.TurnaroundHours,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskDetail(task, time.Now()))
}

// handleGetTask retrieves a stored task.
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskDetail
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskDetail(task, time.Now()))
}

// handleListTasks lists stored tasks ordered by due date.
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.TasksListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit, ok := parseIntParam(w, query.Get("limit"), "limit")
	if !ok {
		return
	}
	offset, ok := parseIntParam(w, query.Get("offset"), "offset")
	if !ok {
		return
	}

	limit, offset = service.NormalizePage(limit, offset)

	tasks, total, err := h.taskService.ListTasks(r.Context(), limit, offset)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.TasksListResponse{
		Tasks:  dto.ToTaskDetails(tasks, time.Now()),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// parseIntParam parses an optional non-negative integer query parameter.
func parseIntParam(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" must be a non-negative integer")
		return 0, false
	}

	return value, true
}
