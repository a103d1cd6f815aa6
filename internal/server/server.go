package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aleister1102/diffsense/internal/cache"
	"github.com/aleister1102/diffsense/internal/common/errorwrapper"
	"github.com/aleister1102/diffsense/internal/config"
	"github.com/aleister1102/diffsense/internal/datastore"
	"github.com/aleister1102/diffsense/internal/differ"
	"github.com/aleister1102/diffsense/internal/extractor"
	"github.com/aleister1102/diffsense/internal/limiter"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Server exposes the comparison engine over HTTP. Every collaborator
// (cache, limiters, history store) is constructed at startup and injected;
// the engine itself stays free of shared state.
type Server struct {
	config         config.ServerConfig
	diffConfig     config.DiffConfig
	defaultOptions differ.Options

	engine        *differ.Engine
	resultCache   *cache.ResultCache
	windowLimiter *limiter.WindowLimiter
	resourceGuard *limiter.ResourceGuard
	historyStore  *datastore.HistoryStore
	htmlExtractor *extractor.HTMLExtractor
	pacer         *rate.Limiter
	validator     *validator.Validate
	logger        zerolog.Logger

	httpServer *http.Server
}

// Builder provides a fluent interface for creating a Server.
type Builder struct {
	globalConfig *config.GlobalConfig
	engine       *differ.Engine
	historyStore *datastore.HistoryStore
	logger       zerolog.Logger
}

// NewBuilder creates a new server builder.
func NewBuilder(logger zerolog.Logger) *Builder {
	return &Builder{logger: logger}
}

// WithGlobalConfig sets the application configuration.
func (b *Builder) WithGlobalConfig(cfg *config.GlobalConfig) *Builder {
	b.globalConfig = cfg
	return b
}

// WithEngine sets the comparison engine.
func (b *Builder) WithEngine(engine *differ.Engine) *Builder {
	b.engine = engine
	return b
}

// WithHistoryStore sets the optional diff history store.
func (b *Builder) WithHistoryStore(store *datastore.HistoryStore) *Builder {
	b.historyStore = store
	return b
}

// Build creates the server and wires its collaborators.
func (b *Builder) Build() (*Server, error) {
	if b.globalConfig == nil {
		return nil, errorwrapper.NewValidationError("global_config", b.globalConfig, "global config cannot be nil")
	}
	if b.engine == nil {
		return nil, errorwrapper.NewValidationError("engine", b.engine, "engine cannot be nil")
	}

	cfg := b.globalConfig
	logger := b.logger.With().Str("component", "Server").Logger()

	s := &Server{
		config:         cfg.ServerConfig,
		diffConfig:     cfg.DiffConfig,
		defaultOptions: cfg.DiffConfig.DiffOptions(),
		engine:         b.engine,
		resourceGuard:  limiter.NewResourceGuard(cfg.ResourceLimiterConfig, b.logger),
		historyStore:   b.historyStore,
		htmlExtractor:  extractor.NewHTMLExtractor(b.logger),
		validator:      config.RequestValidator(),
		logger:         logger,
	}

	if cfg.CacheConfig.Enabled {
		s.resultCache = cache.NewResultCache(cfg.CacheConfig, b.logger)
	}
	if cfg.RateLimitConfig.Enabled {
		s.windowLimiter = limiter.NewWindowLimiter(cfg.RateLimitConfig, b.logger)
	}
	if cfg.ServerConfig.PacingRPS > 0 {
		s.pacer = rate.NewLimiter(rate.Limit(cfg.ServerConfig.PacingRPS), cfg.ServerConfig.PacingBurst)
	}

	s.httpServer = &http.Server{
		Addr:         cfg.ServerConfig.ListenAddr,
		Handler:      s.routes(),
		ReadTimeout:  time.Duration(cfg.ServerConfig.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.ServerConfig.WriteTimeoutSecs) * time.Second,
	}

	return s, nil
}

// routes assembles the handler chain.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/diff", s.handleDiff)
	mux.HandleFunc("POST /api/v1/diff/stream", s.handleStreamDiff)
	mux.HandleFunc("POST /api/v1/diff/insights", s.handleInsights)
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	return s.withRequestID(s.withAccessLog(s.withRateLimit(mux)))
}

// ListenAndServe starts the HTTP listener and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.config.ListenAddr).Msg("HTTP API listening")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errorwrapper.WrapError(err, "http server failed")
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP API")
	return s.httpServer.Shutdown(ctx)
}

// writeJSON renders a JSON response body.
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response body")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
