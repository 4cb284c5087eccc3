package api

import (
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/OPpuolitaival/tasklist/internal/api/shared"
	"github.com/OPpuolitaival/tasklist/internal/domain"
	"github.com/OPpuolitaival/tasklist/internal/store"
)

// TaskHandler handles task CRUD requests. Every operation runs as the
// authenticated user from the request context; the owner is stamped
// server-side and a task owned by someone else is answered exactly like
// a task that does not exist.
type TaskHandler struct {
	taskStore store.TaskStore
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore) *TaskHandler {
	return &TaskHandler{taskStore: taskStore}
}

// List handles GET /api/tasks/. Tasks come back newest first.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	tasks, err := h.taskStore.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to list tasks", "error", err, "user_id", userID)
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskResponse(task))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Create handles POST /api/tasks/.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if fields := h.validateTaskPayload(req); len(fields) > 0 {
		shared.RespondWithValidationError(w, r, "Validation failed", fields)
		return
	}

	task, err := domain.NewTask(userID, req.Title, req.Description, req.Completed)
	if err != nil {
		shared.RespondWithValidationError(w, r, "Validation failed", map[string]string{
			"title": err.Error(),
		})
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskResponse(task))
}

// Get handles GET /api/tasks/{taskID}/.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, err := getPathUUID(r, "taskID")
	if err != nil {
		shared.RespondWithError(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), userID, taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskResponse(task))
}

// Update handles PATCH and PUT on /api/tasks/{taskID}/. PATCH applies
// only the fields present in the payload; PUT additionally requires the
// title, since it replaces the whole representation.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, err := getPathUUID(r, "taskID")
	if err != nil {
		shared.RespondWithError(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if r.Method == http.MethodPut && req.Title == nil {
		shared.RespondWithValidationError(w, r, "Validation failed", map[string]string{
			"title": "This field is required.",
		})
		return
	}

	if fields := h.validateTaskUpdate(req); len(fields) > 0 {
		shared.RespondWithValidationError(w, r, "Validation failed", fields)
		return
	}

	task, err := h.taskStore.Update(r.Context(), userID, taskID, domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskResponse(task))
}

// Delete handles DELETE /api/tasks/{taskID}/.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	taskID, err := getPathUUID(r, "taskID")
	if err != nil {
		shared.RespondWithError(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	if err := h.taskStore.Delete(r.Context(), userID, taskID); err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) validateTaskPayload(req CreateTaskRequest) map[string]string {
	fields := make(map[string]string)
	if req.Title == "" {
		fields["title"] = "This field may not be blank."
	} else if utf8.RuneCountInString(req.Title) > domain.MaxTaskTitleLength {
		fields["title"] = "Ensure this field has no more than 200 characters."
	}
	return fields
}

func (h *TaskHandler) validateTaskUpdate(req UpdateTaskRequest) map[string]string {
	fields := make(map[string]string)
	if req.Title != nil {
		if *req.Title == "" {
			fields["title"] = "This field may not be blank."
		} else if utf8.RuneCountInString(*req.Title) > domain.MaxTaskTitleLength {
			fields["title"] = "Ensure this field has no more than 200 characters."
		}
	}
	return fields
}

func taskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
