package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	aiapp "github.com/mkkalpana/text-morph/internal/application/ai"
	analysisapp "github.com/mkkalpana/text-morph/internal/application/analysis"
	authapp "github.com/mkkalpana/text-morph/internal/application/auth"
	domai "github.com/mkkalpana/text-morph/internal/domain/ai"
	domain "github.com/mkkalpana/text-morph/internal/domain/analysis"
	"github.com/mkkalpana/text-morph/internal/domain/users"
	"github.com/mkkalpana/text-morph/internal/infra/token"
	"github.com/mkkalpana/text-morph/internal/middleware"
)

// Deps carries everything the router wires together.
type Deps struct {
	Auth     *authapp.Service
	Analysis *analysisapp.Service
	AI       *aiapp.Service
	Users    users.Repository
	Tokens   *token.Manager
	DB       *sql.DB
	Logger   *zerolog.Logger
	Origins  []string
}

type Router struct {
	authSvc     *authapp.Service
	analysisSvc *analysisapp.Service
	aiSvc       *aiapp.Service
	users       users.Repository
}

func NewRouter(deps Deps) http.Handler {
	r := &Router{
		authSvc:     deps.Auth,
		analysisSvc: deps.Analysis,
		aiSvc:       deps.AI,
		users:       deps.Users,
	}

	mux := chi.NewRouter()
	mux.Use(middleware.Logger(deps.Logger))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	mux.Use(middleware.RateLimitMiddleware(30, 10))

	mux.Get("/", r.handleRoot)
	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: deps.DB},
	}))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", r.wrap(r.handleRegister))
		api.Post("/auth/login", r.wrap(r.handleLogin))

		api.Group(func(priv chi.Router) {
			priv.Use(middleware.BearerAuth(deps.Tokens, deps.Users))

			priv.Get("/auth/me", r.wrap(r.handleMe))
			priv.Post("/auth/change-password", r.wrap(r.handleChangePassword))

			priv.Get("/users/profile", r.wrap(r.handleGetProfile))
			priv.Put("/users/profile", r.wrap(r.handleUpdateProfile))
			priv.Delete("/users/account", r.wrap(r.handleDeactivate))

			priv.Post("/analysis/text", r.wrap(r.handleAnalyzeText))
			priv.Post("/analysis/file", r.wrap(r.handleAnalyzeFile))
			priv.Get("/analysis/history", r.wrap(r.handleHistory))
			priv.Post("/analysis/summary", r.wrap(r.handleSummary))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks validation failures detected in the handler itself.
type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func badRequest(msg string) error { return &badRequestError{msg: msg} }

// wrap maps domain errors onto HTTP statuses; anything unrecognized is logged
// and surfaced as a generic 500 without leaking internals.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var weak *authapp.WeakPasswordError
		var bad *badRequestError
		switch {
		case errors.As(err, &weak), errors.As(err, &bad),
			errors.Is(err, authapp.ErrInvalidEmail),
			errors.Is(err, authapp.ErrInvalidName),
			errors.Is(err, authapp.ErrInvalidLanguage),
			errors.Is(err, authapp.ErrWrongPassword),
			errors.Is(err, authapp.ErrPasswordUnchanged),
			errors.Is(err, domain.ErrInvalidInput),
			errors.Is(err, domain.ErrUnsupportedFormat),
			errors.Is(err, domain.ErrEmptyDocument),
			errors.Is(err, domain.ErrExtractionFailed):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrPayloadTooLarge):
			respondError(w, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, authapp.ErrInvalidCredentials),
			errors.Is(err, authapp.ErrAccountDisabled),
			errors.Is(err, token.ErrInvalidToken):
			respondError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, users.ErrDuplicateEmail):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, users.ErrNotFound), errors.Is(err, sql.ErrNoRows):
			respondError(w, http.StatusNotFound, "not found")
		case errors.Is(err, domai.ErrQuotaExceeded):
			respondError(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, domai.ErrNotConfigured):
			respondError(w, http.StatusServiceUnavailable, err.Error())
		default:
			zerolog.Ctx(req.Context()).Error().Err(err).Msg("request failed")
			respondError(w, http.StatusInternalServerError, "internal server error")
		}
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	_ = respondJSON(w, status, map[string]any{
		"success":     false,
		"error":       msg,
		"status_code": status,
	})
}

// GET /
func (r *Router) handleRoot(w http.ResponseWriter, req *http.Request) {
	_ = respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Text Morph API",
		"status":  "active",
		"features": []string{
			"User Authentication & Management",
			"File Upload & Text Analysis",
			"Readability Scoring",
			"AI Summarization",
		},
		"endpoints": map[string]string{
			"auth":     "/api/auth",
			"users":    "/api/users",
			"analysis": "/api/analysis",
		},
	})
}

// POST /api/auth/register
func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Name               string `json:"name"`
		Email              string `json:"email"`
		Password           string `json:"password"`
		LanguagePreference string `json:"language_preference"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid JSON body")
	}

	payload, err := r.authSvc.Register(req.Context(), authapp.RegisterCommand{
		Name:               body.Name,
		Email:              body.Email,
		Password:           body.Password,
		LanguagePreference: body.LanguagePreference,
	})
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "user registered successfully",
		"data":    payload,
	})
}

// POST /api/auth/login
func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid JSON body")
	}

	payload, err := r.authSvc.Login(req.Context(), body.Email, body.Password)
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "login successful",
		"data":    payload,
	})
}

// GET /api/auth/me
func (r *Router) handleMe(w http.ResponseWriter, req *http.Request) error {
	u := middleware.GetUserFromContext(req.Context())
	return respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    u,
	})
}

// POST /api/auth/change-password
func (r *Router) handleChangePassword(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid JSON body")
	}

	u := middleware.GetUserFromContext(req.Context())
	if err := r.authSvc.ChangePassword(req.Context(), u, body.CurrentPassword, body.NewPassword); err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "password updated successfully",
	})
}

// GET /api/users/profile
func (r *Router) handleGetProfile(w http.ResponseWriter, req *http.Request) error {
	u := middleware.GetUserFromContext(req.Context())
	return respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    u,
	})
}

// PUT /api/users/profile
func (r *Router) handleUpdateProfile(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Name               *string `json:"name"`
		LanguagePreference *string `json:"language_preference"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid JSON body")
	}

	u := middleware.GetUserFromContext(req.Context())
	if body.Name != nil {
		name := middleware.SanitizeString(*body.Name)
		if n := utf8.RuneCountInString(name); n < 2 || n > 100 {
			return authapp.ErrInvalidName
		}
		u.Name = name
	}
	if body.LanguagePreference != nil {
		if !users.ValidLanguage(*body.LanguagePreference) {
			return authapp.ErrInvalidLanguage
		}
		u.LanguagePreference = *body.LanguagePreference
	}

	if err := r.users.Update(req.Context(), u); err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "profile updated successfully",
		"data":    u,
	})
}

// DELETE /api/users/account
func (r *Router) handleDeactivate(w http.ResponseWriter, req *http.Request) error {
	u := middleware.GetUserFromContext(req.Context())
	if err := r.users.Deactivate(req.Context(), u.ID); err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "account deactivated successfully",
	})
}

// POST /api/analysis/text
func (r *Router) handleAnalyzeText(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid JSON body")
	}

	u := middleware.GetUserFromContext(req.Context())
	result, err := r.analysisSvc.AnalyzeText(req.Context(), analysisapp.AnalyzeTextCommand{
		UserID: u.ID,
		Text:   body.Text,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	middleware.IncrementAnalyses()

	return respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"analysis": result,
		"message":  "text analyzed successfully",
	})
}

// POST /api/analysis/file (multipart, field "file")
func (r *Router) handleAnalyzeFile(w http.ResponseWriter, req *http.Request) error {
	maxSize := r.analysisSvc.MaxFileSize
	req.Body = http.MaxBytesReader(w, req.Body, maxSize+1024*1024)

	if err := req.ParseMultipartForm(maxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return domain.ErrPayloadTooLarge
		}
		return badRequest("invalid multipart form")
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		return badRequest("missing file field")
	}
	defer file.Close()

	if err := middleware.ValidateFilename(header.Filename); err != nil {
		return badRequest(err.Error())
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return badRequest("failed to read uploaded file")
	}

	u := middleware.GetUserFromContext(req.Context())
	result, err := r.analysisSvc.AnalyzeFile(req.Context(), analysisapp.AnalyzeFileCommand{
		UserID:      u.ID,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	middleware.IncrementAnalyses()

	return respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"filename":  header.Filename,
		"file_size": len(data),
		"analysis":  result,
		"message":   "file analyzed successfully",
	})
}

// GET /api/analysis/history?limit=20
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)

	u := middleware.GetUserFromContext(req.Context())
	records, err := r.analysisSvc.History(req.Context(), u.ID, limit)
	if err != nil {
		return err
	}
	if records == nil {
		records = []*domain.Record{}
	}
	return respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    records,
	})
}

// POST /api/analysis/summary
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid JSON body")
	}
	if len(strings.TrimSpace(body.Text)) < 10 {
		return badRequest("text must be at least 10 characters long")
	}

	summary, err := r.aiSvc.Summarize(req.Context(), body.Text)
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"summary": summary,
		"message": "text summarized successfully",
	})
}
