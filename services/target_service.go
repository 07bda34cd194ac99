package services

import (
	"math"

	"github.com/Marino59/dieta/models"
)

// Targets is the output of the daily-target computation: resting and total
// energy expenditure plus the calorie/macro goals the dashboard renders
// progress against.
type Targets struct {
	BMR      int `json:"bmr"`
	TDEE     int `json:"tdee"`
	Calories int `json:"target_calories"`
	Protein  int `json:"target_protein"`
	Carbs    int `json:"target_carbs"`
	Fat      int `json:"target_fat"`
}

// ActivityFactors is the fixed set of accepted TDEE multipliers, from
// sedentary to very active. Also the source of truth for input validation.
var ActivityFactors = []float64{1.2, 1.375, 1.55, 1.725, 1.9}

func ValidActivityFactor(f float64) bool {
	for _, v := range ActivityFactors {
		if v == f {
			return true
		}
	}
	return false
}

// NeutralTargets is the fallback when the profile is incomplete, so the
// dashboard always has a denominator to render against.
func NeutralTargets() Targets {
	return Targets{Calories: 2000, Protein: 150, Carbs: 250, Fat: 65}
}

// ComputeTargets derives energy and macro targets from a physiological
// profile. BMR uses Mifflin-St Jeor; TDEE multiplies the rounded BMR by the
// activity factor. With a fixed-delta goal the calorie target is TDEE+delta
// and macros come from MacroSplit. With a free-text goal the cached
// AI-interpreted targets are kept verbatim and only BMR/TDEE are refreshed,
// for display alongside the explanation.
//
// Any missing or non-positive numeric input yields NeutralTargets — the
// calculator never fails.
func ComputeTargets(p *models.Profile) Targets {
	if p == nil || p.WeightKg <= 0 || p.HeightCm <= 0 || p.Age <= 0 || p.ActivityFactor <= 0 {
		return NeutralTargets()
	}

	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Sex == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	// BMR is rounded before the multiply; the pinned reference values
	// (1673.75 → 1674, ×1.55 → 2595) depend on this order.
	t := Targets{BMR: int(math.Round(bmr))}
	t.TDEE = int(math.Round(float64(t.BMR) * p.ActivityFactor))

	if p.GoalDescription != "" && p.TargetCalories > 0 {
		t.Calories = p.TargetCalories
		t.Protein = p.TargetProtein
		t.Carbs = p.TargetCarbs
		t.Fat = p.TargetFat
		return t
	}

	t.Calories = t.TDEE + p.GoalDelta
	t.Protein, t.Carbs, t.Fat = MacroSplit(t.Calories, p.WeightKg)
	return t
}

// MacroSplit is the default macro distribution when no explicit macros exist:
// 2g protein per kg bodyweight, 25% of calories from fat, the remaining
// calories from carbs (floored at zero for aggressive cuts).
func MacroSplit(targetCalories int, weightKg float64) (protein, carbs, fat int) {
	protein = int(math.Round(weightKg * 2))
	fat = int(math.Round(float64(targetCalories) * 0.25 / 9))
	carbs = int(math.Round(float64(targetCalories-protein*4-fat*9) / 4))
	if carbs < 0 {
		carbs = 0
	}
	return protein, carbs, fat
}
