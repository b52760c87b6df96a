package services

import (
	"sort"

	"github.com/ammahealth/explainer-backend/internal/domain/entities"
)

// RecoveryPlanService answers lookups against the fixed recovery schedule.
// The schedule is sparse: only specific milestone days exist, and lookups
// are exact matches, never interpolated.
type RecoveryPlanService struct{}

// NewRecoveryPlanService creates a new recovery plan service.
func NewRecoveryPlanService() *RecoveryPlanService {
	return &RecoveryPlanService{}
}

var recoveryPlans = map[int]entities.RecoveryDayPlan{
	1: {
		Day:         1,
		Title:       "Initial Assessment & Care",
		Description: "Reinforce immediate post-visit instructions and symptom expectations.",
		Focus:       "Rest, hydration, pain baseline capture, medication reminders.",
		Checklist: []string{
			"Review wound/incision care instructions",
			"Confirm medication schedule and first doses",
			"Explain when to escalate to physician",
		},
	},
	3: {
		Day:         3,
		Title:       "Early Progress Check",
		Description: "Highlight early improvements or concerns to watch for.",
		Focus:       "Inflammation control, breathing exercises, adherence to rest schedule.",
		Checklist: []string{
			"Discuss pain trend vs day 1",
			"Remind about breathing/circulatory exercises",
			"Encourage symptom journaling",
		},
	},
	5: {
		Day:         5,
		Title:       "Medication & Wound Review",
		Description: "Revisit medication technique and wound expectations.",
		Focus:       "Medication adherence, wound observation, nutrition.",
		Checklist: []string{
			"Demonstrate correct medication timing",
			"Describe expected wound appearance",
			"Promote high-protein meals and hydration",
		},
	},
	7: {
		Day:         7,
		Title:       "First Week Milestone",
		Description: "Celebrate progress and outline gentle mobility goals.",
		Focus:       "Light mobility, swelling reduction, mental health check-in.",
		Checklist: []string{
			"Explain safe mobility exercises",
			"Call out red-flag symptoms",
			"Share coping strategies for anxiety or fatigue",
		},
	},
	10: {
		Day:         10,
		Title:       "Pain Management & PT Intro",
		Description: "Transition patient towards guided therapy routines.",
		Focus:       "Adjust pain regimen, introduce PT warmups, reinforce follow-up date.",
		Checklist: []string{
			"Explain difference between soreness vs sharp pain",
			"Demonstrate first PT warmup",
			"Confirm upcoming clinical visit",
		},
	},
	14: {
		Day:         14,
		Title:       "Two-Week Checkpoint",
		Description: "Assess mobility gains and encourage gradual independence.",
		Focus:       "Activity pacing, sleep hygiene, continuing wound care.",
		Checklist: []string{
			"Review mobility milestones completed",
			"Discuss sleep positioning",
			"Remind about scar management if applicable",
		},
	},
	17: {
		Day:         17,
		Title:       "Mid-Recovery Reset",
		Description: "Address plateaus and reinforce motivation.",
		Focus:       "Symptom tracking, nutrition upgrades, mental resilience.",
		Checklist: []string{
			"Identify any healing plateaus",
			"Explain adjustments to meal plan",
			"Offer motivation techniques or support resources",
		},
	},
	21: {
		Day:         21,
		Title:       "Three-Week Progress",
		Description: "Encourage confident movement and adherence.",
		Focus:       "Advanced mobility cues, preventing overexertion.",
		Checklist: []string{
			"Demonstrate progression for key exercises",
			"Warn against pushing through sharp pain",
			"Remind about hydration and electrolyte balance",
		},
	},
	24: {
		Day:         24,
		Title:       "Advanced Exercises",
		Description: "Coach patient through more demanding routines.",
		Focus:       "Strength building, stamina, monitoring delayed soreness.",
		Checklist: []string{
			"Break down advanced exercise form",
			"Give pacing guidance",
			"Discuss managing delayed onset soreness",
		},
	},
	30: {
		Day:         30,
		Title:       "Graduation & Long-Term Plan",
		Description: "Outline long-term maintenance and warning signs.",
		Focus:       "Sustaining habits, scheduling follow-ups, transitioning to lifestyle care.",
		Checklist: []string{
			"Summarize achievements",
			"Set expectations for next clinician visit",
			"Share long-term prevention tips",
		},
	},
}

// PlanForDay returns the exact schedule entry for the day, if one exists.
func (s *RecoveryPlanService) PlanForDay(day int) (*entities.RecoveryDayPlan, bool) {
	plan, ok := recoveryPlans[day]
	if !ok {
		return nil, false
	}
	return &plan, true
}

// PriorPlans returns all defined plans for days strictly before the given
// day, ascending by day number.
func (s *RecoveryPlanService) PriorPlans(day int) []entities.RecoveryDayPlan {
	days := make([]int, 0, len(recoveryPlans))
	for d := range recoveryPlans {
		if d < day {
			days = append(days, d)
		}
	}
	sort.Ints(days)

	plans := make([]entities.RecoveryDayPlan, 0, len(days))
	for _, d := range days {
		plans = append(plans, recoveryPlans[d])
	}
	return plans
}
