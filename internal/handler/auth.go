package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dukerupert/habitual/internal/middleware"
	"github.com/dukerupert/habitual/internal/store"
)

type AuthHandler struct {
	userStore    *store.UserStore
	sessionStore *store.SessionStore
	templates    *template.Template
	validate     *validator.Validate
	logger       *slog.Logger
}

func NewAuthHandler(us *store.UserStore, ss *store.SessionStore, tmpl *template.Template, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userStore:    us,
		sessionStore: ss,
		templates:    tmpl,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		logger:       logger,
	}
}

type authPage struct {
	Title string
	Error string
	Email string
	Name  string
}

type registerForm struct {
	Email    string `validate:"required,email,max=254"`
	Name     string `validate:"max=100"`
	Password string `validate:"min=8,max=72"`
}

var registerMessages = map[string]string{
	"Email":    "Enter a valid email address",
	"Name":     "Name is too long",
	"Password": "Password must be between 8 and 72 characters",
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, h.templates, http.StatusOK, "login.html", authPage{Title: "Sign in"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	user, err := h.userStore.Authenticate(email, password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		render(w, h.logger, h.templates, http.StatusUnauthorized, "login.html",
			authPage{Title: "Sign in", Error: "Invalid email or password", Email: email})
		return
	}
	if err != nil {
		h.logger.Error("authenticate", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		h.logger.Error("create session", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	h.logger.Info("user signed in", "user_id", user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, h.templates, http.StatusOK, "register.html", authPage{Title: "Register"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	form := registerForm{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Name:     strings.TrimSpace(r.FormValue("name")),
		Password: r.FormValue("password"),
	}
	page := authPage{Title: "Register", Email: form.Email, Name: form.Name}

	if err := h.validate.Struct(form); err != nil {
		page.Error = "Invalid registration details"
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			page.Error = registerMessages[fieldErrs[0].StructField()]
		}
		render(w, h.logger, h.templates, http.StatusBadRequest, "register.html", page)
		return
	}

	existing, err := h.userStore.GetByEmail(form.Email)
	if err != nil {
		h.logger.Error("register lookup", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		page.Error = "An account with that email already exists"
		render(w, h.logger, h.templates, http.StatusConflict, "register.html", page)
		return
	}

	user, err := h.userStore.Create(form.Email, form.Name, form.Password)
	if err != nil {
		h.logger.Error("create user", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		h.logger.Error("create session", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	h.logger.Info("user registered", "user_id", user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if sess, err := h.sessionStore.GetByToken(cookie.Value); err == nil && sess != nil {
			if err := h.sessionStore.Delete(sess.ID); err != nil {
				h.logger.Error("delete session", "error", err)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, err := h.sessionStore.Create(userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	return nil
}
