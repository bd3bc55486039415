package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"netdiag/internal/domain"
	"netdiag/internal/metrics"
)

// Runner is the core operation the API exposes.
type Runner interface {
	RunDiagnostics(ctx context.Context) (domain.Results, domain.Inference, error)
}

// Server serves on-demand diagnostics over HTTP. A probe sequence is
// dominated by network timeouts and can take tens of seconds, so runs
// are single-flight: a second request while one is in progress gets
// 409, and requests inside the cooldown window get the cached report.
type Server struct {
	Logger      *zap.Logger
	Runner      Runner
	MinInterval time.Duration

	mu       sync.Mutex
	running  bool
	lastRun  time.Time
	lastResp *RunResponse
}

func NewServer(logger *zap.Logger, runner Runner, minInterval time.Duration) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Logger: logger, Runner: runner, MinInterval: minInterval}
}

// RunResponse is the JSON report handed to API consumers.
type RunResponse struct {
	StartedAt  time.Time        `json:"started_at"`
	DurationMS float64          `json:"duration_ms"`
	Results    domain.Results   `json:"results"`
	Inference  domain.Inference `json:"inference"`
	Cached     bool             `json:"cached,omitempty"`
}

func (s *Server) Router() http.Handler {
	_ = metrics.Register(prometheus.DefaultRegisterer)

	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/api/diagnostics/run", s.handleRun)
	r.Get("/api/diagnostics/last", s.handleLast)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		http.Error(w, "diagnostic run already in progress", http.StatusConflict)
		return
	}
	if s.lastResp != nil && s.MinInterval > 0 && time.Since(s.lastRun) < s.MinInterval {
		resp := *s.lastResp
		resp.Cached = true
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, resp)
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	start := time.Now()
	results, inf, err := s.Runner.RunDiagnostics(r.Context())
	elapsed := time.Since(start)
	metrics.ObserveRun(elapsed, results, err != nil)
	if err != nil {
		s.Logger.Warn("run_aborted", zap.Error(err))
		http.Error(w, "diagnostic run aborted: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	resp := RunResponse{
		StartedAt:  start.UTC(),
		DurationMS: float64(elapsed.Microseconds()) / 1000.0,
		Results:    results,
		Inference:  inf,
	}

	s.mu.Lock()
	s.lastRun = start
	s.lastResp = &resp
	s.mu.Unlock()

	s.Logger.Info("run_served",
		zap.Duration("elapsed", elapsed),
		zap.String("rule", inf.RuleID),
		zap.Int("failed_layers", results.Failed().Len()),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLast(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := s.lastResp
	s.mu.Unlock()
	if resp == nil {
		http.Error(w, "no diagnostic run yet", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, *resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
