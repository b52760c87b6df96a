package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/ammahealth/explainer-backend/internal/application/services"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/observability"
	apperrors "github.com/ammahealth/explainer-backend/pkg/errors"
)

// VideoGenerator defines the pipeline operation used by the handler.
type VideoGenerator interface {
	Generate(ctx context.Context, req services.GenerationRequest) (*services.GenerationResult, error)
}

// VideoHandler handles explainer video generation requests.
type VideoHandler struct {
	pipeline VideoGenerator
	metrics  *observability.Metrics
}

// NewVideoHandler creates a new video handler. metrics may be nil when
// telemetry is disabled.
func NewVideoHandler(pipeline VideoGenerator, metrics *observability.Metrics) *VideoHandler {
	return &VideoHandler{
		pipeline: pipeline,
		metrics:  metrics,
	}
}

type videoGenerationRequest struct {
	DoctorEmail       string `json:"doctor_email"`
	PatientEmail      string `json:"patient_email"`
	DiagnosisCode     string `json:"diagnosis_code"`
	ProcedureCode     string `json:"procedure_code"`
	RecoveryDay       int    `json:"recovery_day,omitempty"`
	RecoveryMilestone string `json:"recovery_milestone,omitempty"`
	ForceRegenerate   bool   `json:"force_regenerate,omitempty"`
}

// GenerateVideo handles POST /api/videos/generate
func (h *VideoHandler) GenerateVideo(w http.ResponseWriter, r *http.Request) {
	var payload videoGenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.DoctorEmail = strings.ToLower(strings.TrimSpace(payload.DoctorEmail))
	payload.PatientEmail = strings.ToLower(strings.TrimSpace(payload.PatientEmail))
	payload.DiagnosisCode = strings.TrimSpace(payload.DiagnosisCode)
	payload.ProcedureCode = strings.TrimSpace(payload.ProcedureCode)
	payload.RecoveryMilestone = strings.TrimSpace(payload.RecoveryMilestone)

	if !isValidEmail(payload.DoctorEmail) {
		respondWithError(w, http.StatusBadRequest, "doctor_email must be a valid email address")
		return
	}
	if !isValidEmail(payload.PatientEmail) {
		respondWithError(w, http.StatusBadRequest, "patient_email must be a valid email address")
		return
	}
	if payload.DoctorEmail == payload.PatientEmail {
		respondWithError(w, http.StatusBadRequest, "doctor_email and patient_email must differ")
		return
	}
	if payload.RecoveryDay < 0 || payload.RecoveryDay > 30 {
		respondWithError(w, http.StatusBadRequest, "recovery_day must be between 1 and 30")
		return
	}

	result, err := h.pipeline.Generate(r.Context(), services.GenerationRequest{
		DoctorEmail:       payload.DoctorEmail,
		PatientEmail:      payload.PatientEmail,
		DiagnosisCode:     payload.DiagnosisCode,
		ProcedureCode:     payload.ProcedureCode,
		RecoveryDay:       payload.RecoveryDay,
		RecoveryMilestone: payload.RecoveryMilestone,
		ForceRegenerate:   payload.ForceRegenerate,
	})
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Str("doctor_email", payload.DoctorEmail).
			Str("patient_email", payload.PatientEmail).
			Msg("video generation failed")
		respondWithError(w, statusForError(err), publicMessage(err))
		return
	}

	if h.metrics != nil {
		observability.RecordGenerationMetric(r.Context(), h.metrics, result.Reused)
	}

	respondWithJSON(w, http.StatusCreated, result)
}

// statusForError maps pipeline error kinds onto HTTP statuses. Provider
// side failures surface as bad gateway, a polling ceiling as gateway
// timeout.
func statusForError(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypeProvider,
		apperrors.ErrorTypeSubmission,
		apperrors.ErrorTypeUpstreamContract,
		apperrors.ErrorTypePollFailed:
		return http.StatusBadGateway
	case apperrors.ErrorTypePollTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage returns the error text safe to expose to API consumers.
// Typed errors carry curated messages; anything else is masked.
func publicMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Type != apperrors.ErrorTypeInternal {
		return appErr.Message
	}
	return "failed to generate video"
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
