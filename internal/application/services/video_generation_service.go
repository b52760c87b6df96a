package services

import (
	"context"
	"fmt"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
	"github.com/ammahealth/explainer-backend/internal/domain/providers"
	"github.com/ammahealth/explainer-backend/internal/domain/repositories"
	"github.com/ammahealth/explainer-backend/internal/infrastructure/observability"
	"github.com/ammahealth/explainer-backend/pkg/casekey"
	apperrors "github.com/ammahealth/explainer-backend/pkg/errors"
)

// VideoPersister copies a finished video into durable storage and returns
// its public URL.
type VideoPersister interface {
	Persist(ctx context.Context, source, caseKey string) (string, error)
}

// GenerationRequest carries one video generation order.
type GenerationRequest struct {
	DoctorEmail       string
	PatientEmail      string
	DiagnosisCode     string
	ProcedureCode     string
	RecoveryDay       int
	RecoveryMilestone string
	ForceRegenerate   bool
}

// GenerationResult is the outcome of a generation order, whether freshly
// generated or reused from the case library.
type GenerationResult struct {
	VideoURL     string `json:"video_url"`
	CaseKey      string `json:"case_key"`
	Reused       bool   `json:"reused"`
	MetadataID   string `json:"metadata_id,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// VideoGenerationService orchestrates the full explainer pipeline: patient
// context assembly, script generation, reuse lookup, video generation,
// storage, and metadata persistence.
type VideoGenerationService struct {
	users        repositories.UserRepository
	clinical     repositories.ClinicalRepository
	metadata     repositories.VideoMetadataRepository
	scripts      *ScriptService
	recovery     *RecoveryPlanService
	videos       providers.VideoGenerator
	storage      VideoPersister
	reuseEnabled bool
}

// NewVideoGenerationService creates a new orchestrator. reuseEnabled is the
// operational kill-switch for the reuse cache; when false every request
// generates a fresh video.
func NewVideoGenerationService(
	users repositories.UserRepository,
	clinical repositories.ClinicalRepository,
	metadata repositories.VideoMetadataRepository,
	scripts *ScriptService,
	recovery *RecoveryPlanService,
	videos providers.VideoGenerator,
	storage VideoPersister,
	reuseEnabled bool,
) *VideoGenerationService {
	return &VideoGenerationService{
		users:        users,
		clinical:     clinical,
		metadata:     metadata,
		scripts:      scripts,
		recovery:     recovery,
		videos:       videos,
		storage:      storage,
		reuseEnabled: reuseEnabled,
	}
}

// Generate runs the pipeline for one request and returns the stored video
// URL plus its case key.
func (s *VideoGenerationService) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	logger := observability.LoggerFromContext(ctx).With().
		Str("doctor_email", req.DoctorEmail).
		Str("patient_email", req.PatientEmail).
		Logger()

	patientCtx, err := s.fetchPatientContext(ctx, req)
	if err != nil {
		return nil, err
	}

	input := PromptInput{
		Context:           patientCtx,
		RecoveryMilestone: req.RecoveryMilestone,
	}
	if req.RecoveryDay > 0 {
		if plan, ok := s.recovery.PlanForDay(req.RecoveryDay); ok {
			input.RecoveryPlan = plan
		}
		input.PriorPlans = s.recovery.PriorPlans(req.RecoveryDay)
	}

	prompt := s.scripts.BuildPrompt(input)
	script, err := s.scripts.RequestScript(ctx, prompt)
	if err != nil {
		return nil, err
	}

	caseKey := casekey.Compute(req.DiagnosisCode, req.ProcedureCode, req.RecoveryMilestone, patientCtx.Doctor.Specialty)
	logger = logger.With().Str("case_key", caseKey).Logger()

	if s.reuseEnabled && !req.ForceRegenerate {
		reusable, err := s.metadata.FindByCaseKey(ctx, caseKey)
		if err != nil {
			// Reuse is an optimization; a broken lookup must not block
			// generation.
			logger.Warn().Err(err).Msg("reuse lookup failed, generating fresh video")
		} else if reusable != nil {
			logger.Info().Str("metadata_id", reusable.ID).Msg("reusing stored video for case")
			return &GenerationResult{
				VideoURL:   reusable.FileURL,
				CaseKey:    caseKey,
				Reused:     true,
				MetadataID: reusable.ID,
			}, nil
		}
	}

	result, err := s.videos.GenerateVideo(ctx, script, map[string]string{
		"patient_email":      req.PatientEmail,
		"doctor_email":       req.DoctorEmail,
		"diagnosis_code":     req.DiagnosisCode,
		"procedure_code":     req.ProcedureCode,
		"recovery_milestone": req.RecoveryMilestone,
	})
	if err != nil {
		return nil, err
	}

	publicURL, err := s.storage.Persist(ctx, result.Source(), caseKey)
	if err != nil {
		return nil, err
	}

	row := &entities.VideoMetadata{
		DoctorEmail:  req.DoctorEmail,
		PatientEmail: req.PatientEmail,
		FileType:     entities.FileTypeVideo,
		FileURL:      publicURL,
		FileName:     fmt.Sprintf("%s.mp4", caseKey),
		CaseKey:      caseKey,
	}
	if err := s.metadata.Create(ctx, row); err != nil {
		return nil, err
	}

	logger.Info().Str("metadata_id", row.ID).Msg("explainer video generated and stored")

	return &GenerationResult{
		VideoURL:     publicURL,
		CaseKey:      caseKey,
		Reused:       false,
		MetadataID:   row.ID,
		ThumbnailURL: result.ThumbnailURL,
	}, nil
}

// fetchPatientContext loads both user records, the latest clinical snapshot
// and recent document notes. Missing users are hard failures; a missing
// snapshot or empty notes degrade to prompt fallback text.
func (s *VideoGenerationService) fetchPatientContext(ctx context.Context, req GenerationRequest) (*entities.PatientContext, error) {
	doctor, err := s.users.GetByEmail(ctx, req.DoctorEmail)
	if err != nil {
		return nil, err
	}
	if doctor.UserType != entities.UserTypeDoctor {
		return nil, apperrors.NewValidationError(fmt.Sprintf("user %s is not a doctor", req.DoctorEmail))
	}

	patient, err := s.users.GetByEmail(ctx, req.PatientEmail)
	if err != nil {
		return nil, err
	}
	if patient.UserType != entities.UserTypePatient {
		return nil, apperrors.NewValidationError(fmt.Sprintf("user %s is not a patient", req.PatientEmail))
	}

	snapshot, err := s.clinical.LatestSnapshot(ctx, req.PatientEmail)
	if err != nil {
		return nil, err
	}

	notes, err := s.clinical.RecentNotes(ctx, req.PatientEmail, 5)
	if err != nil {
		return nil, err
	}

	return &entities.PatientContext{
		Patient:     patient,
		Doctor:      doctor,
		Snapshot:    snapshot,
		RecentNotes: notes,
	}, nil
}
