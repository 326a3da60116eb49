package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/fairyhunter13/pet-adoption-matcher/internal/domain"
	"github.com/fairyhunter13/pet-adoption-matcher/internal/usecase"
)

// CreateTaskHandler schedules a care task. POST /v1/tasks
func (s *Server) CreateTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTaskRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err, fieldErrors(err))
			return
		}
		t, err := s.Tasks.Schedule(r.Context(), domain.Task{
			AnimalID: req.AnimalID,
			Type:     domain.TaskType(req.Type),
			DueDate:  req.DueDate,
			Notes:    req.Notes,
		})
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusCreated, usecase.UpcomingTask{
			Task:      t,
			Countdown: s.Tasks.CountdownFor(t),
		})
	}
}

// ListTasksHandler lists pending tasks soonest first, optionally for one
// animal. GET /v1/tasks?animal_id=
func (s *Server) ListTasksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animalID := strings.TrimSpace(r.URL.Query().Get("animal_id"))
		if animalID != "" {
			if v := ValidateID("animal_id", animalID); !v.Valid {
				writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, v.Errors[0].Message), v.Errors)
				return
			}
		}
		tasks, err := s.Tasks.Upcoming(r.Context(), animalID)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": tasks, "count": len(tasks)})
	}
}

// UpcomingTasksHandler lists tasks overdue or due within days.
// GET /v1/tasks/upcoming?days=7
func (s *Server) UpcomingTasksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days, v := ParseHorizon(r.URL.Query().Get("days"))
		if !v.Valid {
			writeError(w, r, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, v.Errors[0].Message), v.Errors)
			return
		}
		if days < 0 {
			days = s.Cfg.ReminderHorizonDays
			if days <= 0 {
				days = 7
			}
		}
		tasks, err := s.Tasks.DueWithin(r.Context(), days)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"days": days, "items": tasks, "count": len(tasks)})
	}
}

// GetTaskHandler returns one task with its countdown. GET /v1/tasks/{id}
func (s *Server) GetTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		t, err := s.Tasks.Task(r.Context(), id)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, usecase.UpcomingTask{Task: t, Countdown: s.Tasks.CountdownFor(t)})
	}
}

// UpdateTaskHandler edits a task; omitted fields are kept. PUT /v1/tasks/{id}
func (s *Server) UpdateTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var req updateTaskRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err, fieldErrors(err))
			return
		}
		t, err := s.Tasks.Update(r.Context(), id, req.patch())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, usecase.UpcomingTask{Task: t, Countdown: s.Tasks.CountdownFor(t)})
	}
}

// CompleteTaskHandler marks a task done. POST /v1/tasks/{id}/complete
func (s *Server) CompleteTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		t, err := s.Tasks.Complete(r.Context(), id)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		LoggerFrom(r).Info("task completed", "task_id", id, "animal_id", t.AnimalID)
		writeJSON(w, http.StatusOK, usecase.UpcomingTask{Task: t, Countdown: s.Tasks.CountdownFor(t)})
	}
}

// DeleteTaskHandler removes a task. DELETE /v1/tasks/{id}
func (s *Server) DeleteTaskHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := s.Tasks.Delete(r.Context(), id); err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "deleted": true})
	}
}

// StatsHandler returns the dashboard counters. GET /v1/stats
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := s.Tasks.DashboardStats(r.Context())
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}
