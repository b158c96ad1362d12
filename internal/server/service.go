package server

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/stocklist/internal/models"
	"github.com/garyjia/stocklist/internal/report"
	"github.com/garyjia/stocklist/internal/segment"
)

// Generator produces one report document from an input workbook.
type Generator interface {
	Generate(ctx context.Context, inputPath string) (*report.Result, error)
}

// RunRecorder persists completed generation runs.
type RunRecorder interface {
	Create(run *models.GenerationRun) error
}

// GenerationService wraps the report generator with run bookkeeping:
// every generation, failed ones included, leaves a run record, and
// newly discovered colors get folded back into the rules file.
type GenerationService struct {
	generator Generator
	recorder  RunRecorder
	extractor *segment.Extractor
	rulesPath string
	logger    *zap.Logger
	now       func() time.Time
}

// NewGenerationService creates a generation service. recorder may be
// nil when run history is disabled.
func NewGenerationService(
	generator Generator,
	recorder RunRecorder,
	extractor *segment.Extractor,
	rulesPath string,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		generator: generator,
		recorder:  recorder,
		extractor: extractor,
		rulesPath: rulesPath,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate runs one generation and records the outcome.
func (s *GenerationService) Generate(ctx context.Context, inputPath string) (*models.GenerationRun, error) {
	start := s.now()
	result, genErr := s.generator.Generate(ctx, inputPath)

	run := &models.GenerationRun{
		InputPath:  inputPath,
		Status:     models.RunStatusSucceeded,
		DurationMS: s.now().Sub(start).Milliseconds(),
		CreatedAt:  start,
	}
	if genErr != nil {
		run.Status = models.RunStatusFailed
		run.Error = genErr.Error()
	} else {
		run.OutputPath = result.OutputPath
		run.RecordCount = result.RecordCount
		run.TypeCount = result.TypeCount
		run.GrandTotal = result.GrandTotal
	}

	if s.recorder != nil {
		if err := s.recorder.Create(run); err != nil {
			s.logger.Warn("Failed to record generation run", zap.Error(err))
		}
	}
	if s.extractor != nil {
		if err := s.extractor.SaveRules(s.rulesPath); err != nil {
			s.logger.Warn("Failed to save segmentation rules", zap.Error(err))
		}
	}

	if genErr != nil {
		return nil, genErr
	}
	return run, nil
}
