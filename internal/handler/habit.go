package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/habitual/internal/auth"
	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/habit"
	"github.com/dukerupert/habitual/internal/websocket"
)

type HabitHandler struct {
	service *habit.Service
	hub     *websocket.Hub
	logger  *slog.Logger
}

func NewHabitHandler(service *habit.Service, hub *websocket.Hub, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{service: service, hub: hub, logger: logger}
}

func (h *HabitHandler) notify(ownerID, action, id string, extra map[string]any) {
	if h.hub == nil {
		return
	}
	h.hub.BroadcastTo(ownerID, websocket.NewMessage("habit", action, id, extra))
}

func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	habits, err := h.service.ListWithTodayStatus(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err, "list habits")
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req habit.Input
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	ownerID := auth.UserID(r.Context())
	created, err := h.service.Create(ownerID, req)
	if err != nil {
		writeError(w, h.logger, err, "create habit")
		return
	}

	h.notify(ownerID, "created", created.ID, nil)
	writeJSON(w, http.StatusCreated, created)
}

func (h *HabitHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.Get(auth.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err, "get habit")
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req habit.Input
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	ownerID := auth.UserID(r.Context())
	updated, err := h.service.Update(ownerID, r.PathValue("id"), req)
	if err != nil {
		writeError(w, h.logger, err, "update habit")
		return
	}

	h.notify(ownerID, "updated", updated.ID, nil)
	writeJSON(w, http.StatusOK, updated)
}

func (h *HabitHandler) Archive(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	archived, err := h.service.Archive(ownerID, r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err, "archive habit")
		return
	}

	h.notify(ownerID, "archived", archived.ID, nil)
	writeJSON(w, http.StatusOK, archived)
}

func (h *HabitHandler) Check(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	check, err := h.service.Check(ownerID, r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err, "check habit")
		return
	}

	h.notify(ownerID, "checked", check.HabitID, map[string]any{"date": check.Date})
	writeJSON(w, http.StatusOK, check)
}

func (h *HabitHandler) Uncheck(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	id := r.PathValue("id")
	if err := h.service.Uncheck(ownerID, id); err != nil {
		writeError(w, h.logger, err, "uncheck habit")
		return
	}

	h.notify(ownerID, "unchecked", id, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *HabitHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(auth.UserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, err, "get habit stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// History returns completions between the start and end query parameters,
// defaulting to the last week when both are omitted.
func (h *HabitHandler) History(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" && end == "" {
		span, err := h.service.Span(day.RangeWeek)
		if err != nil {
			writeError(w, h.logger, err, "list completion history")
			return
		}
		start, end = span.StartDate, span.EndDate
	}

	history, err := h.service.CompletionHistory(auth.UserID(r.Context()), start, end)
	if err != nil {
		writeError(w, h.logger, err, "list completion history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"start_date":  start,
		"end_date":    end,
		"completions": history,
	})
}

func (h *HabitHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	kind, err := day.ParseRangeKind(r.URL.Query().Get("range"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "range must be week or month"})
		return
	}

	d, err := h.service.Dashboard(auth.UserID(r.Context()), kind)
	if err != nil {
		writeError(w, h.logger, err, "load dashboard")
		return
	}
	writeJSON(w, http.StatusOK, d)
}
