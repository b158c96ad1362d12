package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/stocklist/internal/models"
	"github.com/garyjia/stocklist/internal/report"
)

// mockReportService implements ReportService for testing
type mockReportService struct {
	run *models.GenerationRun
	err error
}

func (m *mockReportService) Generate(ctx context.Context, inputPath string) (*models.GenerationRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.run, nil
}

// mockRunStore implements RunStore for testing
type mockRunStore struct {
	runs []models.GenerationRun
	err  error
}

func (m *mockRunStore) ListRecent(limit int) ([]models.GenerationRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockRunStore) GetByID(id int64) (*models.GenerationRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, run := range m.runs {
		if run.ID == id {
			return &run, nil
		}
	}
	return nil, nil
}

func newTestServer(service ReportService, runs RunStore) *Server {
	logger, _ := zap.NewDevelopment()
	return NewServer(DefaultConfig(), NewHandlers(service, runs, logger), logger)
}

func sampleRun() *models.GenerationRun {
	return &models.GenerationRun{
		ID:          1,
		InputPath:   "备货单.xlsx",
		OutputPath:  "output/简洁备货单01021504.xlsx",
		RecordCount: 10,
		TypeCount:   2,
		GrandTotal:  30,
		Status:      models.RunStatusSucceeded,
		DurationMS:  55,
		CreatedAt:   time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
	}
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(&mockReportService{}, &mockRunStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestGenerateReport(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newTestServer(&mockReportService{run: sampleRun()}, &mockRunStore{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reports",
			strings.NewReader(`{"input_path":"备货单.xlsx"}`))
		req.Header.Set("Content-Type", "application/json")
		srv.Router().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data, _ := json.Marshal(resp.Data)
		var run RunResponse
		require.NoError(t, json.Unmarshal(data, &run))
		assert.Equal(t, "output/简洁备货单01021504.xlsx", run.OutputPath)
		assert.Equal(t, models.RunStatusSucceeded, run.Status)
	})

	t.Run("empty body uses configured input", func(t *testing.T) {
		srv := newTestServer(&mockReportService{run: sampleRun()}, &mockRunStore{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
		srv.Router().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty input maps to bad request", func(t *testing.T) {
		srv := newTestServer(&mockReportService{err: report.ErrNoRecords}, &mockRunStore{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
		srv.Router().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unexpected failure maps to internal error", func(t *testing.T) {
		srv := newTestServer(&mockReportService{err: report.ErrSaveFailed}, &mockRunStore{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/reports", nil)
		srv.Router().ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestListRuns(t *testing.T) {
	store := &mockRunStore{runs: []models.GenerationRun{*sampleRun(), {ID: 2, Status: models.RunStatusFailed}}}
	srv := newTestServer(&mockReportService{}, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/reports?limit=1", nil)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    []RunResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.Data[0].ID)
}

func TestGetRun(t *testing.T) {
	store := &mockRunStore{runs: []models.GenerationRun{*sampleRun()}}
	srv := newTestServer(&mockReportService{}, store)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/reports/1", nil)
		srv.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/reports/42", nil)
		srv.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/reports/abc", nil)
		srv.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
