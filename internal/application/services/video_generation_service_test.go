package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
	"github.com/ammahealth/explainer-backend/pkg/casekey"
	apperrors "github.com/ammahealth/explainer-backend/pkg/errors"
)

type userRepoFake struct {
	users map[string]*entities.User
}

func (f *userRepoFake) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.NewNotFoundError("user not found: " + email)
}

type clinicalRepoFake struct {
	snapshot *entities.ClinicalSnapshot
	notes    string
}

func (f *clinicalRepoFake) LatestSnapshot(_ context.Context, _ string) (*entities.ClinicalSnapshot, error) {
	return f.snapshot, nil
}

func (f *clinicalRepoFake) RecentNotes(_ context.Context, _ string, _ int) (string, error) {
	return f.notes, nil
}

type metadataRepoFake struct {
	byCaseKey map[string]*entities.VideoMetadata
	created   []*entities.VideoMetadata
	findErr   error
	createErr error
}

func (f *metadataRepoFake) FindByCaseKey(_ context.Context, caseKey string) (*entities.VideoMetadata, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.byCaseKey[caseKey], nil
}

func (f *metadataRepoFake) Create(_ context.Context, metadata *entities.VideoMetadata) error {
	if f.createErr != nil {
		return f.createErr
	}
	metadata.ID = "created-id"
	f.created = append(f.created, metadata)
	return nil
}

type videoGeneratorFake struct {
	calls    int
	result   *entities.VideoJobResult
	err      error
	metadata map[string]string
}

func (f *videoGeneratorFake) GenerateVideo(_ context.Context, _ *entities.ScriptPayload, metadata map[string]string) (*entities.VideoJobResult, error) {
	f.calls++
	f.metadata = metadata
	return f.result, f.err
}

type persisterFake struct {
	calls   int
	source  string
	caseKey string
	url     string
	err     error
}

func (f *persisterFake) Persist(_ context.Context, source, caseKey string) (string, error) {
	f.calls++
	f.source = source
	f.caseKey = caseKey
	return f.url, f.err
}

type pipelineFixture struct {
	users     *userRepoFake
	clinical  *clinicalRepoFake
	metadata  *metadataRepoFake
	generator *videoGeneratorFake
	persister *persisterFake
	svc       *VideoGenerationService
}

func newPipelineFixture(t *testing.T, reuseEnabled bool) *pipelineFixture {
	t.Helper()

	f := &pipelineFixture{
		users: &userRepoFake{users: map[string]*entities.User{
			"doctor@amma.health": {
				Email: "doctor@amma.health", FirstName: "Tunde", LastName: "Adeyemi",
				UserType: entities.UserTypeDoctor, Specialty: "Cardiology",
			},
			"patient@amma.health": {
				Email: "patient@amma.health", FirstName: "Amina", LastName: "Okafor",
				UserType: entities.UserTypePatient,
			},
		}},
		clinical: &clinicalRepoFake{
			snapshot: &entities.ClinicalSnapshot{Diagnoses: []string{"Hypertension"}},
		},
		metadata: &metadataRepoFake{byCaseKey: map[string]*entities.VideoMetadata{}},
		generator: &videoGeneratorFake{
			result: &entities.VideoJobResult{JobID: "job-1", URL: "https://provider.example/out.mp4"},
		},
		persister: &persisterFake{url: "https://cdn.example/videos/stored.mp4"},
	}

	scripts := NewScriptService(&scriptGeneratorStub{payload: &entities.ScriptPayload{Intro: "Hello Amina"}})
	f.svc = NewVideoGenerationService(
		f.users, f.clinical, f.metadata,
		scripts, NewRecoveryPlanService(),
		f.generator, f.persister, reuseEnabled,
	)
	return f
}

func baseRequest() GenerationRequest {
	return GenerationRequest{
		DoctorEmail:   "doctor@amma.health",
		PatientEmail:  "patient@amma.health",
		DiagnosisCode: "I10",
		ProcedureCode: "93000",
	}
}

func TestGenerateFreshVideo(t *testing.T) {
	f := newPipelineFixture(t, true)

	result, err := f.svc.Generate(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.False(t, result.Reused)
	assert.Equal(t, "https://cdn.example/videos/stored.mp4", result.VideoURL)
	assert.Equal(t, casekey.Compute("I10", "93000", "", "Cardiology"), result.CaseKey)
	assert.Equal(t, "created-id", result.MetadataID)

	require.Len(t, f.metadata.created, 1)
	row := f.metadata.created[0]
	assert.Equal(t, entities.FileTypeVideo, row.FileType)
	assert.Equal(t, result.CaseKey, row.CaseKey)
	assert.Equal(t, result.CaseKey+".mp4", row.FileName)
	assert.Equal(t, "https://provider.example/out.mp4", f.persister.source)
}

func TestGenerateReusesStoredVideo(t *testing.T) {
	f := newPipelineFixture(t, true)
	key := casekey.Compute("I10", "93000", "", "Cardiology")
	f.metadata.byCaseKey[key] = &entities.VideoMetadata{
		ID: "existing-id", FileURL: "https://cdn.example/videos/earlier.mp4", CaseKey: key,
	}

	result, err := f.svc.Generate(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.True(t, result.Reused)
	assert.Equal(t, "existing-id", result.MetadataID)
	assert.Equal(t, "https://cdn.example/videos/earlier.mp4", result.VideoURL)
	assert.Zero(t, f.generator.calls)
	assert.Zero(t, f.persister.calls)
}

func TestGenerateForceRegenerateSkipsReuse(t *testing.T) {
	f := newPipelineFixture(t, true)
	key := casekey.Compute("I10", "93000", "", "Cardiology")
	f.metadata.byCaseKey[key] = &entities.VideoMetadata{ID: "existing-id", FileURL: "old", CaseKey: key}

	req := baseRequest()
	req.ForceRegenerate = true
	result, err := f.svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, result.Reused)
	assert.Equal(t, 1, f.generator.calls)
}

func TestGenerateReuseDisabledSkipsLookup(t *testing.T) {
	f := newPipelineFixture(t, false)
	key := casekey.Compute("I10", "93000", "", "Cardiology")
	f.metadata.byCaseKey[key] = &entities.VideoMetadata{ID: "existing-id", FileURL: "old", CaseKey: key}

	result, err := f.svc.Generate(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.False(t, result.Reused)
	assert.Equal(t, 1, f.generator.calls)
}

func TestGenerateReuseLookupFailureFallsThrough(t *testing.T) {
	f := newPipelineFixture(t, true)
	f.metadata.findErr = errors.New("cache exploded")

	result, err := f.svc.Generate(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.False(t, result.Reused)
	assert.Equal(t, 1, f.generator.calls)
}

func TestGeneratePassesJobMetadata(t *testing.T) {
	f := newPipelineFixture(t, true)

	req := baseRequest()
	req.RecoveryDay = 7
	req.RecoveryMilestone = "week_one"
	_, err := f.svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"patient_email":      "patient@amma.health",
		"doctor_email":       "doctor@amma.health",
		"diagnosis_code":     "I10",
		"procedure_code":     "93000",
		"recovery_milestone": "week_one",
	}, f.generator.metadata)
}

func TestGenerateUnknownDoctor(t *testing.T) {
	f := newPipelineFixture(t, true)

	req := baseRequest()
	req.DoctorEmail = "missing@amma.health"
	_, err := f.svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestGenerateRoleMismatch(t *testing.T) {
	f := newPipelineFixture(t, true)

	req := baseRequest()
	req.DoctorEmail = "patient@amma.health"
	req.PatientEmail = "doctor@amma.health"
	_, err := f.svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestGenerateProviderFailurePropagates(t *testing.T) {
	f := newPipelineFixture(t, true)
	f.generator.result = nil
	f.generator.err = apperrors.NewPollFailedError("provider reported failure: render error", nil)

	_, err := f.svc.Generate(context.Background(), baseRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypePollFailed))
	assert.Zero(t, f.persister.calls)
	assert.Empty(t, f.metadata.created)
}

func TestGenerateStorageFailurePropagates(t *testing.T) {
	f := newPipelineFixture(t, true)
	f.persister.url = ""
	f.persister.err = apperrors.NewStorageError("all backends failed", nil)

	_, err := f.svc.Generate(context.Background(), baseRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
	assert.Empty(t, f.metadata.created)
}
