package models

import (
	"time"

	"gorm.io/gorm"
)

// WeightSample is one body-weight measurement. The quick-log path keeps at
// most one sample per local calendar day (upsert by day); the detailed
// history path may insert several.
type WeightSample struct {
	gorm.Model
	UserID     uint      `gorm:"index;not null"`
	Kilograms  float64   `gorm:"not null"` // one decimal of precision intended
	MeasuredAt time.Time `gorm:"index;not null"`
}
