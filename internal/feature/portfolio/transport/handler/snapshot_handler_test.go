package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stock_tracker/internal/feature/portfolio/domain/entity"
	"stock_tracker/internal/feature/portfolio/usecase"
	"stock_tracker/internal/shared/besteffort"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type mockSnapshotsUsecase struct {
	ListSnapshotsFunc func(ctx context.Context, limit int) ([]entity.Snapshot, error)
	GetSnapshotFunc   func(ctx context.Context, id uint64) (entity.Snapshot, error)
}

func (m *mockSnapshotsUsecase) ListSnapshots(ctx context.Context, limit int) ([]entity.Snapshot, error) {
	if m.ListSnapshotsFunc != nil {
		return m.ListSnapshotsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockSnapshotsUsecase) GetSnapshot(ctx context.Context, id uint64) (entity.Snapshot, error) {
	if m.GetSnapshotFunc != nil {
		return m.GetSnapshotFunc(ctx, id)
	}
	return entity.Snapshot{}, nil
}

var sample = entity.Snapshot{
	ID:        7,
	CreatedAt: time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC),
	Total:     decimal.RequireFromString("2805"),
	Lines: []entity.Line{{
		Symbol: "THYAO.IS",
		Lot:    10,
		Price:  decimal.RequireFromString("280.5"),
		Value:  decimal.RequireFromString("2805"),
	}},
}

const sampleJSON = `{"id":7,"created_at":"2024-01-02 15:00:00","total_value":"2805",` +
	`"lines":[{"symbol":"THYAO.IS","lot":10,"price":"280.5","value":"2805"}]}`

func newRouter(h *SnapshotHandler) *gin.Engine {
	r := gin.New()
	r.GET("/portfolios", h.List)
	r.GET("/portfolios/:id", h.Get)
	return r
}

func TestSnapshotHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		listFunc       func(ctx context.Context, limit int) ([]entity.Snapshot, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			listFunc: func(ctx context.Context, limit int) ([]entity.Snapshot, error) {
				assert.Equal(t, 3, limit)
				return []entity.Snapshot{sample}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "[" + sampleJSON + "]",
		},
		{
			name: "failure: store unavailable",
			listFunc: func(ctx context.Context, limit int) ([]entity.Snapshot, error) {
				return nil, besteffort.ErrStoreUnavailable
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"store unavailable"}`,
		},
		{
			name: "failure: repository error",
			listFunc: func(ctx context.Context, limit int) ([]entity.Snapshot, error) {
				return nil, errors.New("db error")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"db error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(NewSnapshotHandler(&mockSnapshotsUsecase{ListSnapshotsFunc: tt.listFunc}))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/portfolios?limit=3", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestSnapshotHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		path           string
		getFunc        func(ctx context.Context, id uint64) (entity.Snapshot, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			path: "/portfolios/7",
			getFunc: func(ctx context.Context, id uint64) (entity.Snapshot, error) {
				assert.Equal(t, uint64(7), id)
				return sample, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   sampleJSON,
		},
		{
			name:           "failure: invalid id",
			path:           "/portfolios/abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid snapshot id"}`,
		},
		{
			name: "failure: not found",
			path: "/portfolios/99",
			getFunc: func(ctx context.Context, id uint64) (entity.Snapshot, error) {
				return entity.Snapshot{}, usecase.ErrSnapshotNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"snapshot not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(NewSnapshotHandler(&mockSnapshotsUsecase{GetSnapshotFunc: tt.getFunc}))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
