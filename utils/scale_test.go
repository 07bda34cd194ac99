package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleNutrition_PinnedServing(t *testing.T) {
	// 150 kcal / 5p / 20c / 5f per 100g at 250g. Protein lands exactly on
	// 12.5 and must round away from zero to 13.
	basis := NutritionBasis{Calories: 150, Protein: 5, Carbs: 20, Fat: 5}
	got := ScaleNutrition(basis, 250)

	assert.Equal(t, Macros{Calories: 375, Protein: 13, Carbs: 50, Fat: 13}, got)
}

func TestScaleNutrition_HundredGramsReproducesBasis(t *testing.T) {
	basis := NutritionBasis{Calories: 151.4, Protein: 5.5, Carbs: 19.9, Fat: 4.2}
	got := ScaleNutrition(basis, 100)

	assert.Equal(t, Macros{Calories: 151, Protein: 6, Carbs: 20, Fat: 4}, got)
}

func TestScaleNutrition_FailSoftInputs(t *testing.T) {
	cases := []struct {
		name  string
		basis NutritionBasis
		grams int
		want  Macros
	}{
		{"zero grams defaults to 100g serving",
			NutritionBasis{Calories: 200}, 0, Macros{Calories: 200}},
		{"negative grams defaults to 100g serving",
			NutritionBasis{Calories: 200}, -50, Macros{Calories: 200}},
		{"NaN basis field treated as zero",
			NutritionBasis{Calories: math.NaN(), Protein: 10}, 200, Macros{Protein: 20}},
		{"negative basis field treated as zero",
			NutritionBasis{Calories: -80, Fat: 3}, 100, Macros{Fat: 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ScaleNutrition(tc.basis, tc.grams))
		})
	}
}

func TestScaleNutrition_OutputsNeverNegative(t *testing.T) {
	basis := NutritionBasis{Calories: -1, Protein: math.NaN(), Carbs: -0.4, Fat: -1000}
	got := ScaleNutrition(basis, 500)

	assert.GreaterOrEqual(t, got.Calories, 0)
	assert.GreaterOrEqual(t, got.Protein, 0)
	assert.GreaterOrEqual(t, got.Carbs, 0)
	assert.GreaterOrEqual(t, got.Fat, 0)
}

func TestRescaleByRatio(t *testing.T) {
	old := Macros{Calories: 375, Protein: 13, Carbs: 50, Fat: 13}
	got := RescaleByRatio(old, 250, 100)

	// 375*0.4=150, 13*0.4=5.2→5, 50*0.4=20, 13*0.4=5.2→5
	assert.Equal(t, Macros{Calories: 150, Protein: 5, Carbs: 20, Fat: 5}, got)
}

func TestRescaleByRatio_IdentityWhenGramsUnchanged(t *testing.T) {
	old := Macros{Calories: 321, Protein: 17, Carbs: 44, Fat: 9}
	assert.Equal(t, old, RescaleByRatio(old, 180, 180))
}

func TestRescaleFromBasisBeatsRepeatedRatio(t *testing.T) {
	// Editing 100g→150g→100g via the basis returns exactly to the original
	// absolutes; that is why the basis is retained on every record.
	basis := NutritionBasis{Calories: 133, Protein: 7, Carbs: 11, Fat: 6}
	orig := ScaleNutrition(basis, 100)

	edited := ScaleNutrition(basis, 150)
	back := ScaleNutrition(basis, 100)

	assert.NotEqual(t, orig, edited)
	assert.Equal(t, orig, back)
}
