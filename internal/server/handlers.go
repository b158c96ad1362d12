package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/stocklist/internal/models"
	"github.com/garyjia/stocklist/internal/report"
)

// ReportService runs one generation end to end and records its run.
type ReportService interface {
	Generate(ctx context.Context, inputPath string) (*models.GenerationRun, error)
}

// RunStore reads recorded generation runs.
type RunStore interface {
	ListRecent(limit int) ([]models.GenerationRun, error)
	GetByID(id int64) (*models.GenerationRun, error)
}

// Handlers contains all HTTP request handlers
type Handlers struct {
	service ReportService
	runs    RunStore
	logger  *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(service ReportService, runs RunStore, logger *zap.Logger) *Handlers {
	return &Handlers{
		service: service,
		runs:    runs,
		logger:  logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// GenerateRequest represents the body of POST /api/reports
type GenerateRequest struct {
	InputPath string `json:"input_path"`
}

// RunResponse represents a generation run in API responses
type RunResponse struct {
	ID          int64  `json:"id"`
	InputPath   string `json:"input_path"`
	OutputPath  string `json:"output_path,omitempty"`
	RecordCount int    `json:"record_count"`
	TypeCount   int    `json:"type_count"`
	GrandTotal  int    `json:"grand_total"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
	CreatedAt   string `json:"created_at"`
}

// ListRunsRequest represents query parameters for listing runs
type ListRunsRequest struct {
	Limit int `form:"limit"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// GenerateReport handles POST /api/reports
func (h *Handlers) GenerateReport(c *gin.Context) {
	var req GenerateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Error("Invalid request body", zap.Error(err))
			c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Error:   "invalid request body",
			})
			return
		}
	}

	run, err := h.service.Generate(c.Request.Context(), req.InputPath)
	if err != nil {
		h.logger.Error("Report generation failed", zap.Error(err))
		status := http.StatusInternalServerError
		if errors.Is(err, report.ErrNoRecords) || errors.Is(err, report.ErrMissingField) {
			status = http.StatusBadRequest
		}
		c.JSON(status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toRunResponse(*run),
	})
}

// ListRuns handles GET /api/reports
func (h *Handlers) ListRuns(c *gin.Context) {
	var req ListRunsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}

	runs, err := h.runs.ListRecent(req.Limit)
	if err != nil {
		h.logger.Error("Failed to list runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve runs",
		})
		return
	}

	responses := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, toRunResponse(run))
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    responses,
	})
}

// GetRun handles GET /api/reports/:id
func (h *Handlers) GetRun(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid run ID",
		})
		return
	}

	run, err := h.runs.GetByID(id)
	if err != nil {
		h.logger.Error("Failed to get run", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve run",
		})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "run not found",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toRunResponse(*run),
	})
}

// toRunResponse converts a run record to its API shape
func toRunResponse(run models.GenerationRun) RunResponse {
	return RunResponse{
		ID:          run.ID,
		InputPath:   run.InputPath,
		OutputPath:  run.OutputPath,
		RecordCount: run.RecordCount,
		TypeCount:   run.TypeCount,
		GrandTotal:  run.GrandTotal,
		Status:      run.Status,
		Error:       run.Error,
		DurationMS:  run.DurationMS,
		CreatedAt:   run.CreatedAt.Format(time.RFC3339),
	}
}
