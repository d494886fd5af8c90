package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperpulse/internal/analysis"
	"paperpulse/internal/infrastructure"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

func TestErrorHandler_HandleError(t *testing.T) {
	handler := NewErrorHandler(slog.Default(), false)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "api error keeps its status",
			err:        ErrDatasetNotLoaded,
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeDataNotLoaded,
		},
		{
			name:       "validation error is a 400",
			err:        ErrValidation("limit", "limit must be one of 5, 10, 15, 20"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "invalid analysis argument is a 400",
			err:        fmt.Errorf("rank categories: %w", analysis.ErrInvalidArgument),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "context deadline is a 504",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "unknown error is a 500",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/overview", nil)
			rec := httptest.NewRecorder()

			handler.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")

			problem := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, problem["type"])
			assert.Equal(t, float64(tt.wantStatus), problem["status"])
			assert.Equal(t, "/api/overview", problem["instance"])
		})
	}
}

func TestErrorHandler_TraceIDExtension(t *testing.T) {
	handler := NewErrorHandler(slog.Default(), false)

	req := httptest.NewRequest(http.MethodGet, "/api/sample", nil)
	req = req.WithContext(infrastructure.WithTraceID(req.Context(), "trace-123"))
	rec := httptest.NewRecorder()

	handler.HandleError(rec, req, ErrInvalidParameter)

	problem := decodeProblem(t, rec)
	assert.Equal(t, "trace-123", problem["trace_id"])
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "limit out of range", "/api/analysis/journals").
		WithExtension("error_code", "VALIDATION_FAILED")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, TypeValidation, decoded["type"])
	assert.Equal(t, "limit out of range", decoded["detail"])
	assert.Equal(t, "VALIDATION_FAILED", decoded["error_code"])
}

func TestInvalidParameterError(t *testing.T) {
	err := InvalidParameterError("rows", fmt.Errorf("strconv.Atoi: parsing \"abc\": invalid syntax"))

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "INVALID_PARAMETER", err.ErrorCode)
	assert.Contains(t, err.Message, "rows")
}
