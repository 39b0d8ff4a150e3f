package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rmateos/taskdeck-be/internal/auth"
	"github.com/rmateos/taskdeck-be/internal/models"
	"github.com/rmateos/taskdeck-be/internal/services"
	"github.com/rs/zerolog/log"
)

// TaskHandler handles the task pages and the AJAX-style task endpoints.
type TaskHandler struct {
	taskSvc services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskSvc services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// Dashboard lists the caller's tasks, newest first.
func (h *TaskHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	tasks, err := h.taskSvc.ListTasks(claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to list tasks")
		http.Error(w, "Failed to list tasks", http.StatusInternalServerError)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"username": claims.Username,
		"tasks":    tasks,
	})
}

// Create adds a task from the dashboard form. Blank content is a silent
// no-op; either way the caller lands back on the dashboard.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, _, err := h.taskSvc.CreateTask(claims.UserID, r.PostFormValue("task")); err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to create task")
		http.Error(w, "Failed to create task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Complete marks a task done, awarding a reward point on the first
// completion only. Re-completing or hitting a foreign task is a silent no-op.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	taskID := chi.URLParam(r, "id")
	if _, err := h.taskSvc.CompleteTask(taskID, claims.UserID); err != nil {
		log.Error().Err(err).Str("task_id", taskID).Msg("Failed to complete task")
		http.Error(w, "Failed to complete task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Delete removes one task. Nonexistent or foreign tasks redirect silently.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	taskID := chi.URLParam(r, "id")
	if _, err := h.taskSvc.DeleteTask(taskID, claims.UserID); err != nil {
		log.Error().Err(err).Str("task_id", taskID).Msg("Failed to delete task")
		http.Error(w, "Failed to delete task", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Update edits a task's content from an AJAX call.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	taskID := chi.URLParam(r, "id")
	if err := h.taskSvc.UpdateContent(taskID, claims.UserID, payload.Content); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "Task not found")
			return
		}
		log.Error().Err(err).Str("task_id", taskID).Msg("Failed to update task")
		writeJSONError(w, http.StatusInternalServerError, "Failed to update task")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "updated"})
}

// MultiDelete removes the owned subset of the submitted task IDs.
func (h *TaskHandler) MultiDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	deleted, err := h.taskSvc.BulkDelete(payload.IDs, claims.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to multi-delete tasks")
		writeJSONError(w, http.StatusInternalServerError, "Failed to delete tasks")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "success",
		"deleted": deleted,
	})
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
