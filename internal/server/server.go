package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/habitual/internal/day"
	"github.com/dukerupert/habitual/internal/habit"
	"github.com/dukerupert/habitual/internal/handler"
	"github.com/dukerupert/habitual/internal/middleware"
	"github.com/dukerupert/habitual/internal/store"
	ws "github.com/dukerupert/habitual/internal/websocket"
)

type Options struct {
	SessionTTL  time.Duration
	LoginPerMin int
	Clock       day.Clock
}

type Server struct {
	db           *sql.DB
	hub          *ws.Hub
	habitH       *handler.HabitHandler
	pageH        *handler.PageHandler
	authH        *handler.AuthHandler
	userStore    *store.UserStore
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

func New(db *sql.DB, opts Options, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	habitStore := store.NewHabitStore(db)
	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db, opts.SessionTTL)

	service := habit.NewService(habitStore, opts.Clock, logger.With("component", "habit"))
	tmpl := handler.ParseTemplates()
	handlerLogger := logger.With("component", "handler")

	return &Server{
		db:           db,
		hub:          hub,
		habitH:       handler.NewHabitHandler(service, hub, handlerLogger),
		pageH:        handler.NewPageHandler(service, hub, tmpl, handlerLogger),
		authH:        handler.NewAuthHandler(userStore, sessionStore, tmpl, logger.With("component", "auth")),
		userStore:    userStore,
		sessionStore: sessionStore,
		rateLimiter:  middleware.NewRateLimiter(opts.LoginPerMin),
		logger:       logger,
	}
}

func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /login", s.authH.LoginPage)
	outerMux.HandleFunc("POST /login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("GET /register", s.authH.RegisterPage)
	outerMux.HandleFunc("POST /register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("GET /health", s.healthHandler)

	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.userStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		status = "unavailable"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.RealIP)
	return rl(h).ServeHTTP
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /logout", s.authH.Logout)

	// Pages
	mux.HandleFunc("GET /{$}", s.pageH.Dashboard)
	mux.HandleFunc("POST /habits", s.pageH.CreateHabit)
	mux.HandleFunc("POST /habits/{id}/toggle", s.pageH.Toggle)
	mux.HandleFunc("POST /habits/{id}/archive", s.pageH.Archive)

	// Habits API
	mux.HandleFunc("GET /api/habits", s.habitH.List)
	mux.HandleFunc("POST /api/habits", s.habitH.Create)
	mux.HandleFunc("GET /api/habits/{id}", s.habitH.Get)
	mux.HandleFunc("PUT /api/habits/{id}", s.habitH.Update)
	mux.HandleFunc("POST /api/habits/{id}/archive", s.habitH.Archive)
	mux.HandleFunc("POST /api/habits/{id}/check", s.habitH.Check)
	mux.HandleFunc("DELETE /api/habits/{id}/check", s.habitH.Uncheck)
	mux.HandleFunc("GET /api/habits/{id}/stats", s.habitH.Stats)
	mux.HandleFunc("GET /api/history", s.habitH.History)
	mux.HandleFunc("GET /api/dashboard", s.habitH.Dashboard)

	// Live updates
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}
