package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dredge/adapters/stats"
	"dredge/domain/core"
	"dredge/internal"
	"dredge/internal/config"
	"dredge/internal/generator"
	"dredge/internal/report"
	"dredge/internal/rng"
	"dredge/internal/runner"
	"dredge/ports"
)

// Caps for request-supplied parameters, so one HTTP call cannot pin the
// server on an enormous run.
const (
	maxTrials       = 10000
	maxObservations = 10000
	maxCovariates   = 50
)

// Server exposes simulation runs over HTTP.
type Server struct {
	router   *gin.Engine
	defaults config.SimulationConfig
	repo     ports.RunRepositoryPort // nil disables persistence
	logger   *internal.Logger
}

// NewServer creates the HTTP server. A nil repository disables the lookup
// endpoints' persistence (runs still execute and return their summary).
func NewServer(defaults config.SimulationConfig, repo ports.RunRepositoryPort) *Server {
	s := &Server{
		router:   gin.Default(),
		defaults: defaults,
		repo:     repo,
		logger:   internal.DefaultLogger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.POST("/api/runs", s.handleCreateRun)
	s.router.GET("/api/runs", s.handleListRuns)
	s.router.GET("/api/runs/:id", s.handleGetRun)
}

// Run starts the HTTP server on the given port.
func (s *Server) Run(port string) error {
	return s.router.Run(":" + port)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// runRequest carries per-request overrides of the configured defaults.
type runRequest struct {
	Trials       *int     `json:"trials"`
	Observations *int     `json:"observations"`
	Covariates   *int     `json:"covariates"`
	Seed         *int64   `json:"seed"`
	Alpha        *float64 `json:"alpha"`
}

func (s *Server) handleCreateRun(c *gin.Context) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	cfg := s.defaults
	if req.Trials != nil {
		cfg.Trials = *req.Trials
	}
	if req.Observations != nil {
		cfg.Observations = *req.Observations
	}
	if req.Covariates != nil {
		cfg.Covariates = *req.Covariates
	}
	if req.Seed != nil {
		cfg.Seed = *req.Seed
	}
	if req.Alpha != nil {
		cfg.Alpha = *req.Alpha
	}

	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cfg.Trials > maxTrials || cfg.Observations > maxObservations || cfg.Covariates > maxCovariates {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requested run exceeds server limits"})
		return
	}

	run := runner.New(cfg, generator.New(), stats.NewBattery(stats.NewEvaluator(cfg.Alpha)), rng.NewProvider(cfg.Seed))
	result, err := run.Run(c.Request.Context())
	if err != nil {
		s.logger.Error("simulation run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "simulation failed"})
		return
	}

	if s.repo != nil {
		if err := s.repo.Save(c.Request.Context(), ports.NewRunRecord(result)); err != nil {
			s.logger.Warn("failed to persist run %s: %v", result.RunID, err)
		}
	}

	c.JSON(http.StatusOK, report.Summarize(result))
}

func (s *Server) handleGetRun(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "run persistence is not configured"})
		return
	}
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record, err := s.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		s.logger.Error("failed to load run %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "run persistence is not configured"})
		return
	}
	records, err := s.repo.ListRecent(c.Request.Context(), 20)
	if err != nil {
		s.logger.Error("failed to list runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": records})
}
