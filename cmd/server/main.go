// @title           Telco Churn Prediction API
// @version         1.0.0
// @description     Validated churn predictions for telco customers, plus an interactive form.
// @BasePath        /
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/liamcoop/churn/adapter"
	"github.com/liamcoop/churn/catalog"
	_ "github.com/liamcoop/churn/cmd/server/docs"
	"github.com/liamcoop/churn/internal/config"
	"github.com/liamcoop/churn/internal/logger"
	"github.com/liamcoop/churn/internal/ratelimit"
	"github.com/liamcoop/churn/internal/webform"
	"github.com/liamcoop/churn/model"
	"github.com/liamcoop/churn/prediction"
	"github.com/liamcoop/churn/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	cfg        config.Config
	catalog    *catalog.Catalog
	validator  *validation.Validator
	structured *adapter.Structured
	form       *webform.Handler
	limiter    *ratelimit.Limiter
	modelInfo  model.Info
	router     *chi.Mux
}

func NewServer(cfg config.Config) (*Server, error) {
	logger.Info("Loading model", "uri", cfg.ModelURI)
	m, err := model.Load(cfg.ModelURI, cfg.ModelTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	return NewServerWithModel(cfg, m)
}

// NewServerWithModel wires the server around an already loaded model
func NewServerWithModel(cfg config.Config, m model.Model) (*Server, error) {
	cat := catalog.Churn

	validator, err := validation.NewValidator(cat, validation.DefaultRules()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build validator: %w", err)
	}

	predictor, err := prediction.NewPredictor(m, cat.Names())
	if err != nil {
		return nil, fmt.Errorf("failed to build predictor: %w", err)
	}

	form, err := webform.New(cat, adapter.NewForm(validator, predictor))
	if err != nil {
		return nil, err
	}

	info := model.Describe(m)
	logger.Info("Model ready", "name", info.Name, "version", info.Version, "source", info.Source)

	s := &Server{
		cfg:        cfg,
		catalog:    cat,
		validator:  validator,
		structured: adapter.NewStructured(predictor),
		form:       form,
		limiter:    ratelimit.New(cfg.RateLimit),
		modelInfo:  info,
	}

	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(statusCounter(s.cfg.SlowRequestThreshold))
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	// Health check
	r.Get("/api/v1/health", s.handleHealth)

	// Prediction
	r.Group(func(r chi.Router) {
		r.Use(s.limiter.Middleware)
		r.Post("/predict", s.handlePredict)
		r.Post("/api/v1/predict", s.handlePredict)
		r.Post("/analyze", s.form.Analyze)
	})

	// Catalog
	r.Get("/api/v1/catalog", s.handleCatalog)
	r.Get("/api/v1/catalog/example", s.handleCatalogExample)

	// Interactive form
	r.Get("/", s.form.ServeForm)

	// Operations
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealth godoc
// @Summary      Health check
// @Description  Reports service status and the loaded model
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /api/v1/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:       "healthy",
		Model:        s.modelInfo.Name,
		ModelVersion: s.modelInfo.Version,
		Fields:       s.catalog.Len(),
	})
}

// handlePredict godoc
// @Summary      Predict churn
// @Description  Validates a customer record and returns the churn prediction. The body is an object with all catalog fields; see /api/v1/catalog/example.
// @Tags         prediction
// @Accept       json
// @Produce      json
// @Param        request  body      object  true  "Customer record"
// @Success      200      {object}  adapter.Response
// @Failure      400      {object}  ErrorResponse
// @Failure      422      {object}  ValidationErrorResponse
// @Failure      429      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /predict [post]
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if raw == nil {
		respondError(w, http.StatusBadRequest, "invalid request body", errors.New("body must be a JSON object"))
		return
	}

	rec, err := s.validator.Validate(raw)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			respondJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
				Error:      "validation failed",
				Violations: verr.Violations,
			})
			return
		}
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	startTime := time.Now()

	resp, err := s.structured.Predict(r.Context(), rec)
	if err != nil {
		logger.Error("Prediction failed",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		respondError(w, http.StatusInternalServerError, "inference failed", err)
		return
	}

	logger.Debug("Prediction served",
		"request_id", middleware.GetReqID(r.Context()),
		"is_churner", resp.IsChurner,
		"churn_probability", resp.ChurnProbability,
		"inference_time", time.Since(startTime).String(),
	)

	respondJSON(w, http.StatusOK, resp)
}

// handleCatalog godoc
// @Summary      List input fields
// @Description  Returns every field in model feature order with its kind, constraint and default
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  CatalogResponse
// @Router       /api/v1/catalog [get]
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, CatalogResponse{Fields: s.catalog.Fields()})
}

// handleCatalogExample godoc
// @Summary      Example request
// @Description  Returns a valid /predict body built from the field defaults
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/v1/catalog/example [get]
func (s *Server) handleCatalogExample(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.catalog.Example())
}

// statusCounter feeds the logger counters from response codes and durations
func statusCounter(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			switch {
			case status >= 500:
				logger.ErrorHttp5xx(status)
			case status >= 400:
				logger.WarnHttp4xx(status)
			}
			if elapsed := time.Since(start); slow > 0 && elapsed > slow {
				logger.WarnSlowRequest()
				logger.Warn("Slow request",
					"request_id", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"duration", elapsed.String(),
				)
			}
		})
	}
}

// Helper functions
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := ErrorResponse{Error: message}
	if err != nil {
		response.Details = err.Error()
	}
	respondJSON(w, status, response)
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default $CHURN_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Invalid configuration", "error", err)
	}

	// Create server
	server, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("Failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown handling
	go func() {
		logger.Info("Server starting", "addr", cfg.Addr(), "rate_limit", cfg.RateLimit.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	if err := logger.Shutdown(ctx); err != nil {
		logger.Error("Logger shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
