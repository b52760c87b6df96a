package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
	"github.com/ammahealth/explainer-backend/internal/domain/providers"
)

// PromptInput carries everything the prompt template needs for one request.
type PromptInput struct {
	Context           *entities.PatientContext
	RecoveryPlan      *entities.RecoveryDayPlan
	PriorPlans        []entities.RecoveryDayPlan
	RecoveryMilestone string
}

// ScriptService builds deterministic prompts and dispatches them to the
// configured script generator.
type ScriptService struct {
	generator providers.ScriptGenerator
}

// NewScriptService creates a new script service.
func NewScriptService(generator providers.ScriptGenerator) *ScriptService {
	return &ScriptService{generator: generator}
}

// BuildPrompt renders the prompt template for the given input. The same
// input always yields the same prompt string.
func (s *ScriptService) BuildPrompt(input PromptInput) string {
	patient := input.Context.Patient
	doctor := input.Context.Doctor

	diagnosesText := strings.Join(input.Context.Diagnoses(), ", ")
	if diagnosesText == "" {
		diagnosesText = "Not specified"
	}
	medicationsText := strings.Join(input.Context.Medications(), ", ")
	if medicationsText == "" {
		medicationsText = "No active medications listed"
	}
	notes := input.Context.RecentNotes
	if notes == "" {
		notes = "No supplemental notes provided."
	}

	var b strings.Builder
	b.WriteString("You are creating a compassionate clinical explainer video.\n")
	fmt.Fprintf(&b, "Patient: %s %s\n", patient.FirstName, patient.LastName)
	fmt.Fprintf(&b, "Doctor: Dr. %s\n", doctor.LastName)
	fmt.Fprintf(&b, "Diagnoses: %s\n", diagnosesText)
	fmt.Fprintf(&b, "Medications: %s\n", medicationsText)
	fmt.Fprintf(&b, "Additional Notes:\n%s\n", notes)
	b.WriteString("Generate a concise script with:\n")
	b.WriteString("1. Friendly greeting\n")
	b.WriteString("2. Plain-language condition overview\n")
	b.WriteString("3. Treatment plan and expectations\n")
	b.WriteString("4. Key reminders and next steps\n")
	b.WriteString("Return JSON with keys intro, overview, treatment, reminders.")

	if plan := input.RecoveryPlan; plan != nil {
		milestone := input.RecoveryMilestone
		if milestone == "" {
			milestone = plan.Title
		}
		fmt.Fprintf(&b, "\n\nToday's recovery milestone (Day %d): %s.\n", plan.Day, plan.Title)
		fmt.Fprintf(&b, "Focus: %s\n", plan.Focus)
		fmt.Fprintf(&b, "Checklist items: %s\n", strings.Join(plan.Checklist, ", "))
		fmt.Fprintf(&b, "Milestone label: %s\n", milestone)
		b.WriteString("Ensure the script references today's objectives explicitly.")
	}

	if len(input.PriorPlans) > 0 {
		summaries := make([]string, 0, len(input.PriorPlans))
		for _, prior := range input.PriorPlans {
			summaries = append(summaries, fmt.Sprintf("Day %d: %s", prior.Day, prior.Title))
		}
		b.WriteString("\n\nPrevious recovery context that must be referenced for continuity:\n")
		b.WriteString(strings.Join(summaries, "; "))
		b.WriteString("\nAcknowledge prior progress and set expectations for the next check-in.")
	}

	return b.String()
}

// RequestScript sends the prompt to the script generator and returns the
// parsed payload.
func (s *ScriptService) RequestScript(ctx context.Context, prompt string) (*entities.ScriptPayload, error) {
	return s.generator.GenerateScript(ctx, prompt)
}
