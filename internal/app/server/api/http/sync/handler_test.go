package sync

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stockbridge/internal/domain/sync"
	"stockbridge/internal/utils/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Sync(ctx context.Context, deviceID, remotePath string, onProgress sync.ProgressFunc) (*sync.Report, error) {
	args := m.Called(ctx, deviceID, remotePath, onProgress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.Report), args.Error(1)
}

func newTestAPI(t *testing.T, service sync.Servicer) humatest.TestAPI {
	_, api := humatest.New(t)
	NewHandler(service, "/sdcard/inventory.db", logger.Discard(), huma.Middlewares{}).SetupRoutes(api)
	return api
}

func TestHandler_syncStreamsProgressAndResult(t *testing.T) {
	service := new(MockService)
	service.On("Sync", mock.Anything, "R58M", "/sdcard/inventory.db", mock.Anything).
		Run(func(args mock.Arguments) {
			onProgress := args.Get(3).(sync.ProgressFunc)
			onProgress(sync.Progress{CurrentTable: "stockin_data", TotalTables: 4, OverallProgress: 25})
			onProgress(sync.Progress{TablesCompleted: 4, TotalTables: 4, OverallProgress: 100})
		}).
		Return(&sync.Report{RunID: "run-1", Results: []sync.Result{{TableName: "stockin_data", RecordsFound: 3, Success: true}}}, nil)

	resp := newTestAPI(t, service).Post("/api/v1/sync", map[string]any{"device_id": "R58M"})

	assert.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Equal(t, 2, strings.Count(body, "event: progress"))
	assert.Contains(t, body, "event: result")
	assert.Contains(t, body, `"run_id":"run-1"`)
	assert.Less(t, strings.Index(body, "event: progress"), strings.Index(body, "event: result"))
	service.AssertExpectations(t)
}

func TestHandler_syncErrorEvent(t *testing.T) {
	service := new(MockService)
	service.On("Sync", mock.Anything, "R58M", "/custom.db", mock.Anything).
		Return(nil, fmt.Errorf("%w: device offline", sync.ErrExtractionFailed))

	resp := newTestAPI(t, service).Post("/api/v1/sync", map[string]any{"device_id": "R58M", "remote_path": "/custom.db"})

	body := resp.Body.String()
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, `"code":"extraction_failed"`)
	assert.NotContains(t, body, "event: result")
}

func TestHandler_syncValidation(t *testing.T) {
	resp := newTestAPI(t, new(MockService)).Post("/api/v1/sync", map[string]any{"device_id": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "sync_in_progress", errorCode(sync.ErrSyncInProgress))
	assert.Equal(t, "corrupt_extraction", errorCode(fmt.Errorf("wrap: %w", sync.ErrCorruptExtraction)))
	assert.Equal(t, "empty_extraction", errorCode(sync.ErrEmptyExtraction))
	assert.Equal(t, "store_unavailable", errorCode(fmt.Errorf("%w: ping", sync.ErrStoreUnavailable)))
	assert.Equal(t, "internal", errorCode(fmt.Errorf("boom")))
}
