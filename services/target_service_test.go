package services

import (
	"testing"

	"github.com/Marino59/dieta/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeTargetsReferenceMale(t *testing.T) {
	p := &models.Profile{
		WeightKg:       70,
		HeightCm:       179,
		Age:            30,
		Sex:            "male",
		ActivityFactor: 1.55,
		GoalDelta:      -500,
	}

	got := ComputeTargets(p)

	// 10*70 + 6.25*179 - 5*30 + 5 = 1673.75, rounded to 1674 before the
	// activity multiply.
	assert.Equal(t, 1674, got.BMR)
	assert.Equal(t, 2595, got.TDEE)
	assert.Equal(t, 2095, got.Calories)
	assert.Equal(t, 140, got.Protein)
	assert.Equal(t, 58, got.Fat)
	assert.Equal(t, 253, got.Carbs)
}

func TestComputeTargetsFemaleFormula(t *testing.T) {
	p := &models.Profile{
		WeightKg:       60,
		HeightCm:       165,
		Age:            25,
		Sex:            "female",
		ActivityFactor: 1.375,
	}

	got := ComputeTargets(p)

	// 10*60 + 6.25*165 - 5*25 - 161 = 1345.25
	assert.Equal(t, 1345, got.BMR)
	assert.Equal(t, 1849, got.TDEE)
	assert.Equal(t, got.TDEE, got.Calories) // zero delta: maintain
}

func TestComputeTargetsNeutralFallback(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.Profile
	}{
		{"nil profile", nil},
		{"zero weight", &models.Profile{HeightCm: 180, Age: 30, Sex: "male", ActivityFactor: 1.55}},
		{"zero height", &models.Profile{WeightKg: 70, Age: 30, Sex: "male", ActivityFactor: 1.55}},
		{"zero age", &models.Profile{WeightKg: 70, HeightCm: 180, Sex: "male", ActivityFactor: 1.55}},
		{"zero activity", &models.Profile{WeightKg: 70, HeightCm: 180, Age: 30, Sex: "male"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, NeutralTargets(), ComputeTargets(tt.profile))
		})
	}
}

func TestComputeTargetsKeepsGoalTargetsVerbatim(t *testing.T) {
	p := &models.Profile{
		WeightKg:        70,
		HeightCm:        179,
		Age:             30,
		Sex:             "male",
		ActivityFactor:  1.55,
		GoalDescription: "perdere 5kg entro l'estate",
		TargetCalories:  1800,
		TargetProtein:   150,
		TargetCarbs:     170,
		TargetFat:       55,
	}

	got := ComputeTargets(p)

	assert.Equal(t, 1800, got.Calories)
	assert.Equal(t, 150, got.Protein)
	assert.Equal(t, 170, got.Carbs)
	assert.Equal(t, 55, got.Fat)
	// BMR/TDEE still refreshed from the body data.
	assert.Equal(t, 1674, got.BMR)
	assert.Equal(t, 2595, got.TDEE)
}

func TestComputeTargetsIgnoresStaleGoalWithoutCalories(t *testing.T) {
	p := &models.Profile{
		WeightKg:        70,
		HeightCm:        179,
		Age:             30,
		Sex:             "male",
		ActivityFactor:  1.55,
		GoalDescription: "mettere massa",
		// TargetCalories left at zero: the cached targets are unusable.
	}

	got := ComputeTargets(p)
	assert.Equal(t, got.TDEE, got.Calories)
}

func TestMacroSplitFloorsCarbsAtZero(t *testing.T) {
	protein, carbs, fat := MacroSplit(500, 100)

	assert.Equal(t, 200, protein)
	assert.Equal(t, 0, carbs) // 500 kcal can't cover 200g protein; no negative carbs
	assert.Equal(t, 14, fat)
}

func TestValidActivityFactor(t *testing.T) {
	for _, f := range ActivityFactors {
		assert.True(t, ValidActivityFactor(f))
	}
	assert.False(t, ValidActivityFactor(1.5))
	assert.False(t, ValidActivityFactor(0))
}
