package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/stocklist/internal/models"
	"github.com/garyjia/stocklist/pkg/utils"
)

// outputTimestampLayout stamps generated filenames down to the minute so
// repeated runs on the same day never collide.
const outputTimestampLayout = "01021504"

// Config holds the generator's file handling settings.
type Config struct {
	InputFile    string
	OutputDir    string
	OutputPrefix string
	UseTimestamp bool
}

// RecordReader loads stock records from a source workbook.
type RecordReader interface {
	Read(path string) ([]models.Record, error)
}

// Result describes one completed generation.
type Result struct {
	OutputPath  string
	RecordCount int
	TypeCount   int
	GrandTotal  int
}

// Generator turns an input workbook into a styled stock list document.
type Generator struct {
	cfg    Config
	reader RecordReader
	logger *zap.Logger
	now    func() time.Time
}

// NewGenerator creates a generator with the given reader and settings.
func NewGenerator(cfg Config, reader RecordReader, logger *zap.Logger) *Generator {
	return &Generator{
		cfg:    cfg,
		reader: reader,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the generator's clock. Tests use it to pin the
// output filename and the table date labels.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate reads inputPath (or the configured default when empty), builds
// the summary and per-type detail sheets, and saves the workbook.
func (g *Generator) Generate(ctx context.Context, inputPath string) (*Result, error) {
	if inputPath == "" {
		inputPath = g.cfg.InputFile
	}

	records, err := g.reader.Read(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %s: %w", inputPath, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRecords, inputPath)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := g.now()

	f := excelize.NewFile()
	defer f.Close()

	styles, err := NewStylePolicy(f)
	if err != nil {
		return nil, fmt.Errorf("failed to register styles: %w", err)
	}
	composer := NewComposer(f, NewRenderer(f, styles, g.logger), now, g.logger)

	if err := composer.ComposeSummary(records); err != nil {
		return nil, fmt.Errorf("failed to compose summary: %w", err)
	}

	byType := make(map[string][]models.Record)
	for _, rec := range records {
		byType[rec.Type] = append(byType[rec.Type], rec)
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := composer.ComposeDetail(t, byType[t]); err != nil {
			return nil, fmt.Errorf("failed to compose detail for %s: %w", t, err)
		}
	}

	outputPath := g.outputPath(now)
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
		}
	}
	if err := f.SaveAs(outputPath); err != nil {
		// A truncated document must not look like a finished run.
		os.Remove(outputPath)
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	grandTotal := 0
	for _, rec := range records {
		grandTotal += rec.Quantity
	}

	g.logger.Info("Generated stock list",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("records", len(records)),
		zap.Int("types", len(types)),
		zap.Int("grand_total", grandTotal))

	return &Result{
		OutputPath:  outputPath,
		RecordCount: len(records),
		TypeCount:   len(types),
		GrandTotal:  grandTotal,
	}, nil
}

func (g *Generator) outputPath(now time.Time) string {
	name := g.cfg.OutputPrefix
	if g.cfg.UseTimestamp {
		name += now.Format(outputTimestampLayout)
	}
	return filepath.Join(g.cfg.OutputDir, utils.SanitizeFileName(name)+".xlsx")
}
