package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator"
	"go.uber.org/zap"

	appai "github.com/bryanwahyu/promptlens/internal/application/ai"
	appprompts "github.com/bryanwahyu/promptlens/internal/application/prompts"
	domai "github.com/bryanwahyu/promptlens/internal/domain/ai"
	"github.com/bryanwahyu/promptlens/internal/domain/image"
	domain "github.com/bryanwahyu/promptlens/internal/domain/prompts"
	"github.com/bryanwahyu/promptlens/internal/middleware"
)

// Options configures the ambient parts of the router.
type Options struct {
	AllowedOrigins []string
	HealthCheckers map[string]middleware.HealthChecker
}

type Router struct {
	aiSvc      *appai.Service
	promptsSvc *appprompts.Service
	log        *zap.Logger
	validate   *validator.Validate
}

func NewRouter(aiSvc *appai.Service, promptsSvc *appprompts.Service, log *zap.Logger, opts Options) http.Handler {
	r := &Router{aiSvc: aiSvc, promptsSvc: promptsSvc, log: log, validate: newValidator()}
	mux := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	mux.Use(middleware.Logging(log))
	mux.Use(middleware.MetricsMiddleware)

	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap("analyze", r.handleAnalyze))
		rt.Get("/prompts", r.wrap("list_prompts", r.handleListPrompts))
		rt.Post("/prompts", r.wrap("save_prompt", r.handleSavePrompt))
		rt.Delete("/prompts", r.wrap("delete_prompt", r.handleDeletePrompt))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// requestError marks a malformed request body.
type requestError struct{ err error }

func (e *requestError) Error() string { return e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func (r *Router) wrap(op string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			status := statusFor(err)
			if status >= http.StatusInternalServerError {
				r.log.Error("request failed", zap.String("op", op), zap.Error(err))
			} else {
				r.log.Debug("rejected request", zap.String("op", op), zap.Error(err))
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
		}
	}
}

func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr),
		errors.Is(err, image.ErrRequired),
		errors.Is(err, image.ErrInvalid),
		errors.Is(err, domain.ErrOriginalPromptRequired),
		errors.Is(err, domain.ErrIDRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody decodes JSON and runs struct validation. A failed "required"
// rule returns onMissing so the message matches the service's own check.
func (r *Router) decodeBody(req *http.Request, dst any, onMissing error) error {
	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		return &requestError{err: fmt.Errorf("invalid JSON body: %w", err)}
	}
	err := r.validate.Struct(dst)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &requestError{err: err}
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return onMissing
	case "max":
		return &requestError{err: fmt.Errorf("%s must be at most %s characters", fe.Field(), fe.Param())}
	default:
		return &requestError{err: fmt.Errorf("%s is invalid", fe.Field())}
	}
}

// POST /api/analyze
// Body: {"imageBase64": "data:image/png;base64,..."}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		// 20 MiB of data URI text.
		ImageBase64 string `json:"imageBase64" validate:"required,max=20971520"`
	}
	if err := r.decodeBody(req, &body, image.ErrRequired); err != nil {
		return err
	}

	text, err := r.aiSvc.Analyze(req.Context(), body.ImageBase64)
	if err != nil {
		if statusFor(err) >= http.StatusInternalServerError && !errors.Is(err, domai.ErrNotConfigured) {
			middleware.IncrementAnalysesFailed()
		}
		return err
	}
	middleware.IncrementAnalyses()

	writeJSON(w, http.StatusOK, map[string]string{"prompt": text})
	return nil
}

// GET /api/prompts
func (r *Router) handleListPrompts(w http.ResponseWriter, req *http.Request) error {
	list, err := r.promptsSvc.List(req.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, list)
	return nil
}

// POST /api/prompts
// Body: {"image_url": "...", "original_prompt": "...", "edited_prompt": "..."}
func (r *Router) handleSavePrompt(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ImageURL       *string `json:"image_url" validate:"omitempty,max=20971520"`
		OriginalPrompt string  `json:"original_prompt" validate:"required,max=10000"`
		EditedPrompt   *string `json:"edited_prompt" validate:"omitempty,max=10000"`
	}
	if err := r.decodeBody(req, &body, domain.ErrOriginalPromptRequired); err != nil {
		return err
	}

	rec, err := r.promptsSvc.Save(req.Context(), appprompts.SaveCommand{
		ImageURL:       body.ImageURL,
		OriginalPrompt: body.OriginalPrompt,
		EditedPrompt:   body.EditedPrompt,
	})
	if err != nil {
		return err
	}
	middleware.IncrementPromptsSaved()

	writeJSON(w, http.StatusOK, rec)
	return nil
}

// DELETE /api/prompts?id=<id>
func (r *Router) handleDeletePrompt(w http.ResponseWriter, req *http.Request) error {
	if err := r.promptsSvc.Delete(req.Context(), req.URL.Query().Get("id")); err != nil {
		return err
	}
	middleware.IncrementPromptsDeleted()

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	return nil
}
