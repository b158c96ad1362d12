package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/stocklist/internal/models"
	"github.com/garyjia/stocklist/internal/report"
)

// mockGenerator implements Generator for testing
type mockGenerator struct {
	result *report.Result
	err    error
	calls  int
}

func (m *mockGenerator) Generate(ctx context.Context, inputPath string) (*report.Result, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockRecorder implements RunRecorder for testing
type mockRecorder struct {
	created []*models.GenerationRun
	err     error
}

func (m *mockRecorder) Create(run *models.GenerationRun) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, run)
	return nil
}

func TestGenerationService_Generate(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("success records a succeeded run", func(t *testing.T) {
		gen := &mockGenerator{result: &report.Result{
			OutputPath:  "output/简洁备货单01021504.xlsx",
			RecordCount: 7,
			TypeCount:   2,
			GrandTotal:  21,
		}}
		rec := &mockRecorder{}
		svc := NewGenerationService(gen, rec, nil, "", logger)

		run, err := svc.Generate(context.Background(), "in.xlsx")
		require.NoError(t, err)

		assert.Equal(t, models.RunStatusSucceeded, run.Status)
		assert.Equal(t, "output/简洁备货单01021504.xlsx", run.OutputPath)
		assert.Equal(t, 7, run.RecordCount)
		require.Len(t, rec.created, 1)
		assert.Same(t, run, rec.created[0])
	})

	t.Run("failure still records the run", func(t *testing.T) {
		gen := &mockGenerator{err: report.ErrNoRecords}
		rec := &mockRecorder{}
		svc := NewGenerationService(gen, rec, nil, "", logger)

		_, err := svc.Generate(context.Background(), "in.xlsx")
		assert.ErrorIs(t, err, report.ErrNoRecords)

		require.Len(t, rec.created, 1)
		assert.Equal(t, models.RunStatusFailed, rec.created[0].Status)
		assert.Contains(t, rec.created[0].Error, "no usable records")
	})

	t.Run("recorder failure does not fail the generation", func(t *testing.T) {
		gen := &mockGenerator{result: &report.Result{OutputPath: "out.xlsx"}}
		rec := &mockRecorder{err: errors.New("db down")}
		svc := NewGenerationService(gen, rec, nil, "", logger)

		run, err := svc.Generate(context.Background(), "in.xlsx")
		require.NoError(t, err)
		assert.Equal(t, "out.xlsx", run.OutputPath)
	})

	t.Run("nil recorder is allowed", func(t *testing.T) {
		gen := &mockGenerator{result: &report.Result{OutputPath: "out.xlsx"}}
		svc := NewGenerationService(gen, nil, nil, "", logger)

		_, err := svc.Generate(context.Background(), "in.xlsx")
		require.NoError(t, err)
		assert.Equal(t, 1, gen.calls)
	})
}
