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

func (s *TaskHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !requireJSON(w, r) {
		return
	}

	id := chi.URLParam(r, "id")

	var request dto.StartTimerRequest
	if err := decodeJSON(w, r, &request); err != nil {
		logger.Warn("HTTP: Failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		if isTypeError(err) {
			responseWithError(w, http.StatusBadRequest, service.MsgInvalidTimerMode)
			return
		}
		responseWithError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	session, err := s.TaskService.StartTimer(r.Context(), id, request.Mode)
	if err != nil {
		responseWithServiceError(w, r, err, "start_timer", start)
		return
	}

	logger.Info("HTTP_OUT: Timer started",
		zap.String("task_id", id),
		zap.String("session_id", session.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, dto.FromSession(session))
}

func (s *TaskHandler) StopTimer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	session, err := s.TaskService.StopTimer(r.Context(), id)
	if err != nil {
		responseWithServiceError(w, r, err, "stop_timer", start)
		return
	}

	logger.Info("HTTP_OUT: Timer stopped",
		zap.String("task_id", id),
		zap.String("session_id", session.ID),
		zap.Int("duration_seconds", session.DurationSeconds),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, dto.FromSession(session))
}

func (s *TaskHandler) ActiveTimer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	session, err := s.TaskService.ActiveTimer(r.Context(), id)
	if err != nil {
		responseWithServiceError(w, r, err, "active_timer", start)
		return
	}

	logger.Info("HTTP_OUT: Active timer fetched",
		zap.String("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, dto.FromSession(session))
}

func (s *TaskHandler) TimerSessions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id := chi.URLParam(r, "id")

	sessions, err := s.TaskService.Sessions(r.Context(), id)
	if err != nil {
		responseWithServiceError(w, r, err, "timer_sessions", start)
		return
	}

	logger.Info("HTTP_OUT: Timer sessions listed",
		zap.String("task_id", id),
		zap.Int("count", len(sessions)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, dto.FromSessionList(sessions))
}
