package models

import (
	"gorm.io/gorm"
)

// Profile holds the physiological inputs for target computation, one row per
// user. The Target*/BMR/TDEE fields are a cache of the last computation —
// they are rewritten on every save and are never the source of truth.
type Profile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	WeightKg       float64
	HeightCm       float64
	Age            int
	Sex            string  `gorm:"size:8"` // "male" | "female"
	ActivityFactor float64 // 1.2 | 1.375 | 1.55 | 1.725 | 1.9

	// Goal: either a fixed calorie delta (e.g. -500/0/+300) or a free-text
	// description interpreted by the AI collaborator. When GoalDescription is
	// set the cached targets come verbatim from that interpretation.
	GoalDelta       int
	GoalDescription string `gorm:"type:text"`
	GoalExplanation string `gorm:"type:text"`

	// Cached derived values
	BMR            int
	TDEE           int
	TargetCalories int
	TargetProtein  int
	TargetCarbs    int
	TargetFat      int
}
