package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal is one logged dish. The absolute macro fields are the values shown in
// the diary and summed into daily totals; the *Per100 fields retain the AI or
// food-database estimate per 100g so that a later serving-size edit can be
// rescaled from the original basis instead of compounding rounding error.
type Meal struct {
	gorm.Model
	UserID uint `gorm:"index;not null"`

	Name         string `gorm:"not null"`
	ServingGrams int    `gorm:"not null;default:100"` // always > 0

	// Absolute values for ServingGrams
	Calories int
	Protein  int
	Carbs    int
	Fat      int

	// Per-100g basis as estimated at capture time
	CaloriesPer100 float64
	ProteinPer100  float64
	CarbsPer100    float64
	FatPer100      float64

	Note     string    `gorm:"type:text"`
	AteAt    time.Time `gorm:"index;not null"`
	ImageURL string
}

// HasBasis reports whether the per-100g estimate was retained. Rows imported
// before basis retention have all-zero basis fields and fall back to
// ratio-based rescaling on edit.
func (m *Meal) HasBasis() bool {
	return m.CaloriesPer100 > 0 || m.ProteinPer100 > 0 || m.CarbsPer100 > 0 || m.FatPer100 > 0
}
