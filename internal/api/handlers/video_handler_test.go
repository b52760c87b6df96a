package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammahealth/explainer-backend/internal/api/handlers"
	"github.com/ammahealth/explainer-backend/internal/application/services"
	apperrors "github.com/ammahealth/explainer-backend/pkg/errors"
)

type stubPipeline struct {
	lastReq services.GenerationRequest
	calls   int
	result  *services.GenerationResult
	err     error
}

func (s *stubPipeline) Generate(_ context.Context, req services.GenerationRequest) (*services.GenerationResult, error) {
	s.calls++
	s.lastReq = req
	return s.result, s.err
}

func postGenerate(t *testing.T, handler *handlers.VideoHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/videos/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.GenerateVideo(w, req)
	return w
}

func TestVideoHandler_GenerateVideo_Success(t *testing.T) {
	pipeline := &stubPipeline{result: &services.GenerationResult{
		VideoURL:   "https://cdn.example/videos/a.mp4",
		CaseKey:    "abc123",
		Reused:     false,
		MetadataID: "meta-1",
	}}
	handler := handlers.NewVideoHandler(pipeline, nil)

	body := `{"doctor_email":"Doctor@Amma.Health","patient_email":"patient@amma.health","diagnosis_code":"I10","procedure_code":"93000","recovery_day":7}`
	w := postGenerate(t, handler, body)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "doctor@amma.health", pipeline.lastReq.DoctorEmail)
	assert.Equal(t, 7, pipeline.lastReq.RecoveryDay)

	var response services.GenerationResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "https://cdn.example/videos/a.mp4", response.VideoURL)
	assert.Equal(t, "abc123", response.CaseKey)
	assert.False(t, response.Reused)
	assert.Equal(t, "meta-1", response.MetadataID)
}

func TestVideoHandler_GenerateVideo_InvalidPayload(t *testing.T) {
	pipeline := &stubPipeline{}
	handler := handlers.NewVideoHandler(pipeline, nil)

	w := postGenerate(t, handler, `{not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, pipeline.calls)
}

func TestVideoHandler_GenerateVideo_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing doctor email", `{"patient_email":"patient@amma.health"}`},
		{"malformed patient email", `{"doctor_email":"doctor@amma.health","patient_email":"not-an-email"}`},
		{"same doctor and patient", `{"doctor_email":"x@amma.health","patient_email":"x@amma.health"}`},
		{"recovery day too high", `{"doctor_email":"doctor@amma.health","patient_email":"patient@amma.health","recovery_day":31}`},
		{"recovery day negative", `{"doctor_email":"doctor@amma.health","patient_email":"patient@amma.health","recovery_day":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := &stubPipeline{}
			handler := handlers.NewVideoHandler(pipeline, nil)

			w := postGenerate(t, handler, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, pipeline.calls)
		})
	}
}

func TestVideoHandler_GenerateVideo_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"user not found", apperrors.NewNotFoundError("user not found"), http.StatusNotFound},
		{"role mismatch", apperrors.NewValidationError("user is not a doctor"), http.StatusBadRequest},
		{"submission rejected", apperrors.NewSubmissionError("video job submission rejected", nil), http.StatusBadGateway},
		{"job failed", apperrors.NewPollFailedError("provider reported failure", nil), http.StatusBadGateway},
		{"malformed completion", apperrors.NewUpstreamContractError("completed job carries no result"), http.StatusBadGateway},
		{"poll timeout", apperrors.NewPollTimeoutError("job did not finish in time"), http.StatusGatewayTimeout},
		{"storage failure", apperrors.NewStorageError("all backends failed", nil), http.StatusInternalServerError},
		{"internal failure", apperrors.NewInternalError("boom", nil), http.StatusInternalServerError},
	}

	body := `{"doctor_email":"doctor@amma.health","patient_email":"patient@amma.health"}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := &stubPipeline{err: tt.err}
			handler := handlers.NewVideoHandler(pipeline, nil)

			w := postGenerate(t, handler, body)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestVideoHandler_GenerateVideo_MasksInternalDetail(t *testing.T) {
	pipeline := &stubPipeline{err: apperrors.NewInternalError("db password rejected", nil)}
	handler := handlers.NewVideoHandler(pipeline, nil)

	body := `{"doctor_email":"doctor@amma.health","patient_email":"patient@amma.health"}`
	w := postGenerate(t, handler, body)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "failed to generate video", response["error"])
	assert.NotContains(t, w.Body.String(), "password")
}

func TestVideoHandler_GenerateVideo_ReusedResponse(t *testing.T) {
	pipeline := &stubPipeline{result: &services.GenerationResult{
		VideoURL: "https://cdn.example/videos/earlier.mp4",
		CaseKey:  "abc123",
		Reused:   true,
	}}
	handler := handlers.NewVideoHandler(pipeline, nil)

	body := `{"doctor_email":"doctor@amma.health","patient_email":"patient@amma.health"}`
	w := postGenerate(t, handler, body)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response services.GenerationResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.True(t, response.Reused)
}
