package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dukerupert/habitual/internal/auth"
	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/habit"
	"github.com/dukerupert/habitual/internal/model"
	"github.com/dukerupert/habitual/internal/websocket"
)

// PageHandler serves the HTML dashboard and its form actions.
type PageHandler struct {
	service   *habit.Service
	hub       *websocket.Hub
	templates *template.Template
	logger    *slog.Logger
}

func NewPageHandler(service *habit.Service, hub *websocket.Hub, tmpl *template.Template, logger *slog.Logger) *PageHandler {
	return &PageHandler{service: service, hub: hub, templates: tmpl, logger: logger}
}

type dashboardPage struct {
	Title       string
	Dashboard   *habit.Dashboard
	Frequencies []model.Frequency
	Form        habit.Input
	FormError   string
}

func (h *PageHandler) notify(ownerID, action, id string) {
	if h.hub == nil {
		return
	}
	h.hub.BroadcastTo(ownerID, websocket.NewMessage("habit", action, id, nil))
}

func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	kind, err := day.ParseRangeKind(r.URL.Query().Get("range"))
	if err != nil {
		kind = day.RangeWeek
	}
	h.renderDashboard(w, r, kind, http.StatusOK, habit.Input{Frequency: model.FrequencyDaily}, "")
}

func (h *PageHandler) renderDashboard(w http.ResponseWriter, r *http.Request, kind day.RangeKind, status int, form habit.Input, formErr string) {
	d, err := h.service.Dashboard(auth.UserID(r.Context()), kind)
	if err != nil {
		h.logger.Error("load dashboard", "error", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}
	render(w, h.logger, h.templates, status, "dashboard.html", dashboardPage{
		Title:       "Habitual",
		Dashboard:   d,
		Frequencies: model.Frequencies,
		Form:        form,
		FormError:   formErr,
	})
}

func (h *PageHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	in := habit.Input{
		Name:      r.FormValue("name"),
		Frequency: model.Frequency(r.FormValue("frequency")),
	}
	if c := r.FormValue("category"); c != "" {
		in.Category = &c
	}

	ownerID := auth.UserID(r.Context())
	created, err := h.service.Create(ownerID, in)
	var ve *habit.ValidationError
	if errors.As(err, &ve) {
		h.renderDashboard(w, r, day.RangeWeek, http.StatusBadRequest, in, ve.Message)
		return
	}
	if err != nil {
		h.logger.Error("create habit", "error", err)
		http.Error(w, "failed to create habit", http.StatusInternalServerError)
		return
	}

	h.notify(ownerID, "created", created.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Toggle checks the habit for today, or unchecks it if it is already checked.
func (h *PageHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	id := r.PathValue("id")

	habits, err := h.service.ListWithTodayStatus(ownerID)
	if err != nil {
		h.logger.Error("list habits", "error", err)
		http.Error(w, "failed to toggle habit", http.StatusInternalServerError)
		return
	}
	checked := false
	for _, hs := range habits {
		if hs.ID == id {
			checked = hs.CheckedToday
			break
		}
	}

	action := "checked"
	if checked {
		action = "unchecked"
		err = h.service.Uncheck(ownerID, id)
	} else {
		_, err = h.service.Check(ownerID, id)
	}
	if !h.pageError(w, err, "toggle habit") {
		return
	}

	h.notify(ownerID, action, id)
	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}

func (h *PageHandler) Archive(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())
	id := r.PathValue("id")

	_, err := h.service.Archive(ownerID, id)
	if !h.pageError(w, err, "archive habit") {
		return
	}

	h.notify(ownerID, "archived", id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// pageError writes a plain error response for err and reports whether the caller may continue.
func (h *PageHandler) pageError(w http.ResponseWriter, err error, action string) bool {
	if err == nil {
		return true
	}
	var nf *habit.NotFoundError
	var sc *habit.StateConflictError
	switch {
	case errors.As(err, &nf):
		http.Error(w, nf.Error(), http.StatusNotFound)
	case errors.As(err, &sc):
		http.Error(w, sc.Reason, http.StatusConflict)
	default:
		h.logger.Error(action, "error", err)
		http.Error(w, "failed to "+action, http.StatusInternalServerError)
	}
	return false
}

func redirectTarget(r *http.Request) string {
	if kind, err := day.ParseRangeKind(r.FormValue("range")); err == nil && kind != day.RangeWeek {
		return "/?range=" + string(kind)
	}
	return "/"
}
