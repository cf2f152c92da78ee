package handlers

import (
	"net/http"
	"time"

	"studyBuddy/internal/handlers/dto"
	"studyBuddy/internal/logger"
	"studyBuddy/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService Service
}

func NewTaskHandler(taskService Service) *TaskHandler {
	return &TaskHandler{
		TaskService: taskService,
	}
}

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := s.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Health check failed", err)
		responseWithJSON(w, http.StatusServiceUnavailable, toPayload("status", "unavailable"))
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
}

func (s *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	query := r.URL.Query()
	tasks, err := s.TaskService.ListTasks(r.Context(), query.Get("status"), query.Get("sort"))
	if err != nil {
		responseWithServiceError(w, r, err, "list_tasks", start)
		return
	}

	logger.Info("HTTP_OUT: Tasks listed",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (s *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	t, err := s.TaskService.GetTask(r.Context(), id)
	if err != nil {
		responseWithServiceError(w, r, err, "get_task", start)
		return
	}

	logger.Info("HTTP_OUT: Task fetched",
		zap.String("task_id", t.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, dto.FromTask(t))
}

func (s *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !requireJSON(w, r) {
		return
	}

	var request dto.CreateTaskRequest
	if err := decodeJSON(w, r, &request); err != nil {
		logger.Warn("HTTP: Failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		// a field of the wrong type counts as a missing field
		if isTypeError(err) {
			responseWithError(w, http.StatusBadRequest, service.MsgMissingFields)
			return
		}
		responseWithError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	created, err := s.TaskService.CreateTask(r.Context(), request.ToInput())
	if err != nil {
		responseWithServiceError(w, r, err, "create_task", start)
		return
	}

	logger.Info("HTTP_OUT: Task created",
		zap.String("task_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	w.Header().Set("Location", "/api/tasks/"+created.ID)
	responseWithData(w, http.StatusCreated, dto.FromTask(created))
}

func (s *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !requireJSON(w, r) {
		return
	}

	id := chi.URLParam(r, "id")

	var request dto.UpdateTaskRequest
	if err := decodeJSON(w, r, &request); err != nil {
		logger.Warn("HTTP: Failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	updated, err := s.TaskService.UpdateStatus(r.Context(), id, request.ToStatusUpdate())
	if err != nil {
		responseWithServiceError(w, r, err, "update_task", start)
		return
	}

	logger.Info("HTTP_OUT: Task updated",
		zap.String("task_id", updated.ID),
		zap.String("status", string(updated.Status)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, dto.FromTask(updated))
}

func (s *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	if err := s.TaskService.DeleteTask(r.Context(), id); err != nil {
		responseWithServiceError(w, r, err, "delete_task", start)
		return
	}

	logger.Info("HTTP_OUT: Task deleted",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}

// Reset restores the fixture tasks. Used by end-to-end test setups.
func (s *TaskHandler) Reset(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if err := s.TaskService.Reset(r.Context()); err != nil {
		responseWithServiceError(w, r, err, "reset", start)
		return
	}

	logger.Info("HTTP_OUT: Storage reset",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}
