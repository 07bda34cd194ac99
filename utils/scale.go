package utils

import "math"

// NutritionBasis is a per-100g macro estimate as returned by the AI estimator
// or the food-database lookup, before serving-size scaling.
type NutritionBasis struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Macros are absolute values for an actual serving, always non-negative ints.
type Macros struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// CoerceGrams normalises a serving size to a positive integer. Zero and
// negative values fall back to the 100g default serving.
func CoerceGrams(grams int) int {
	if grams <= 0 {
		return 100
	}
	return grams
}

// ScaleNutrition scales a per-100g basis to an actual serving. Each field is
// round(basis/100*grams), rounding half away from zero (math.Round). NaN or
// negative basis fields count as 0, so the result is always non-negative and
// the function never fails.
func ScaleNutrition(basis NutritionBasis, grams int) Macros {
	g := float64(CoerceGrams(grams))
	return Macros{
		Calories: scaleField(basis.Calories, g),
		Protein:  scaleField(basis.Protein, g),
		Carbs:    scaleField(basis.Carbs, g),
		Fat:      scaleField(basis.Fat, g),
	}
}

func scaleField(per100 float64, grams float64) int {
	if math.IsNaN(per100) || per100 < 0 {
		return 0
	}
	return int(math.Round(per100 / 100.0 * grams))
}

// RescaleByRatio recomputes absolute macros after a serving-size edit for
// records that did not retain their per-100g basis:
// newAbs = round(oldAbs * newGrams / oldGrams). Prefer rescaling from the
// retained basis; the ratio drifts when applied repeatedly.
func RescaleByRatio(old Macros, oldGrams, newGrams int) Macros {
	og := float64(CoerceGrams(oldGrams))
	ng := float64(CoerceGrams(newGrams))
	ratio := ng / og
	return Macros{
		Calories: ratioField(old.Calories, ratio),
		Protein:  ratioField(old.Protein, ratio),
		Carbs:    ratioField(old.Carbs, ratio),
		Fat:      ratioField(old.Fat, ratio),
	}
}

func ratioField(abs int, ratio float64) int {
	if abs < 0 {
		return 0
	}
	return int(math.Round(float64(abs) * ratio))
}
