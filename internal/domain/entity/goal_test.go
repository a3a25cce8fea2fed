package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewGoalAppliesTypeDefaults(t *testing.T) {
	goal := NewGoal(uuid.New(), "Emergency", GoalTypeEmergencyFund, decimal.NewFromInt(1000), decimal.Zero, nil)

	assert.Equal(t, GoalStatusActive, goal.Status)
	assert.Equal(t, "shield", goal.Icon)
	assert.Equal(t, "#F59E0B", goal.Color)
}

func TestGoalTypeDefaultsFallBackToOther(t *testing.T) {
	unknown := GoalType("vacation")

	assert.False(t, unknown.IsValid())
	assert.Equal(t, GoalTypeOther.DefaultIcon(), unknown.DefaultIcon())
	assert.Equal(t, GoalTypeOther.DefaultColor(), unknown.DefaultColor())
}

func TestGoalCloneDoesNotShareTargetDate(t *testing.T) {
	target := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	goal := NewGoal(uuid.New(), "Car", GoalTypePurchase, decimal.NewFromInt(5000), decimal.Zero, &target)

	clone := goal.Clone()
	*clone.TargetDate = clone.TargetDate.AddDate(1, 0, 0)

	assert.Equal(t, 2025, goal.TargetDate.Year())
	assert.Equal(t, 2026, clone.TargetDate.Year())
}
