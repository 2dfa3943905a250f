package health

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"

	"stockbridge/internal/app"
	"stockbridge/internal/utils/logger"
)

func healthyReport(context.Context) app.DoctorReport {
	return app.DoctorReport{BridgePath: "adb", BridgeAvailable: true, Devices: 1, StoreDriver: "sqlite", StoreOK: true}
}

func TestHandler_healthCheck(t *testing.T) {
	handler := NewHandler(healthyReport, logger.Discard(), huma.Middlewares{})

	output, err := handler.healthCheck(context.Background(), &Input{})

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, "OK", output.Body.Status)
}

func TestHandler_doctor(t *testing.T) {
	tests := []struct {
		name           string
		diagnose       Diagnoser
		expectedStatus string
	}{
		{
			name:           "all checks pass",
			diagnose:       healthyReport,
			expectedStatus: "Ok",
		},
		{
			name: "bridge missing",
			diagnose: func(context.Context) app.DoctorReport {
				return app.DoctorReport{BridgePath: "adb", StoreOK: true}
			},
			expectedStatus: "Degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(tt.diagnose, logger.Discard(), huma.Middlewares{})

			output, err := handler.doctor(context.Background(), &Input{})

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, output.Body.Status)
		})
	}
}

func TestHandler_Routes(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(healthyReport, logger.Discard(), huma.Middlewares{}).SetupRoutes(api)

	resp := api.Get("/api/v1/health")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"OK"`)

	resp = api.Get("/api/v1/doctor")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"bridge_available":true`)
}
