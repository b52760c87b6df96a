package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanForDayKnownMilestone(t *testing.T) {
	svc := NewRecoveryPlanService()

	plan, ok := svc.PlanForDay(7)
	require.True(t, ok)
	assert.Equal(t, 7, plan.Day)
	assert.Equal(t, "First Week Milestone", plan.Title)
	assert.Len(t, plan.Checklist, 3)
}

func TestPlanForDayBetweenMilestones(t *testing.T) {
	svc := NewRecoveryPlanService()

	for _, day := range []int{0, 2, 4, 6, 8, 15, 29, 31} {
		plan, ok := svc.PlanForDay(day)
		assert.False(t, ok, "day %d should have no plan", day)
		assert.Nil(t, plan)
	}
}

func TestPriorPlansAscending(t *testing.T) {
	svc := NewRecoveryPlanService()

	prior := svc.PriorPlans(14)
	require.Len(t, prior, 5)
	days := make([]int, 0, len(prior))
	for _, p := range prior {
		days = append(days, p.Day)
	}
	assert.Equal(t, []int{1, 3, 5, 7, 10}, days)
}

func TestPriorPlansForFirstDay(t *testing.T) {
	svc := NewRecoveryPlanService()
	assert.Empty(t, svc.PriorPlans(1))
}
