package utils

import "fmt"

// CalculateBMI expects height in centimeters and weight in kilograms. Bounds
// mirror the profile validation, so a stored profile always yields a BMI.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm < 50 || heightCm > 280 || weightKg < 10 || weightKg > 500 {
		return 0, fmt.Errorf("height/weight out of plausible range: %.0fcm %.1fkg", heightCm, weightKg)
	}
	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

// BMICategory maps a BMI value to the label shown on the profile screen.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Sottopeso"
	case bmi < 25.0:
		return "Normopeso"
	case bmi < 30.0:
		return "Sovrappeso"
	default:
		return "Obesità"
	}
}
