package services

import (
	"context"
	"errors"
	"time"

	"github.com/Marino59/dieta/models"
	"github.com/Marino59/dieta/utils"

	"gorm.io/gorm"
)

type LedgerService struct{ db *gorm.DB }

func NewLedgerService(db *gorm.DB) *LedgerService { return &LedgerService{db: db} }

// MacroProgress pairs a consumed value with its target and the clamped
// percentage the presentation layer renders as a ring or bar.
type MacroProgress struct {
	Consumed int `json:"consumed"`
	Target   int `json:"target"`
	Percent  int `json:"percent"`
}

// DailySummary is the dashboard payload for one local calendar day.
type DailySummary struct {
	Date      string        `json:"date"`
	Calories  MacroProgress `json:"calories"`
	Protein   MacroProgress `json:"protein"`
	Carbs     MacroProgress `json:"carbs"`
	Fat       MacroProgress `json:"fat"`
	MealCount int           `json:"meal_count"`
	Weight    *float64      `json:"weight,omitempty"`
	Targets   Targets       `json:"targets"`
}

// MealsForDay returns the meals of the local calendar day of date in
// chronological order (morning → night).
func (s *LedgerService) MealsForDay(ctx context.Context, userID uint, date time.Time) ([]models.Meal, error) {
	start := utils.DayStart(date)
	end := start.Add(24 * time.Hour)

	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, start, end).
		Order("ate_at ASC").
		Find(&meals).Error
	return meals, err
}

// DailySummary aggregates the day's meals and evaluates them against the
// user's targets. A missing profile falls back to neutral targets so the
// response is always renderable.
func (s *LedgerService) DailySummary(ctx context.Context, userID uint, date time.Time) (*DailySummary, error) {
	meals, err := s.MealsForDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	agg := AggregateMeals(meals, date)

	var profile models.Profile
	targets := NeutralTargets()
	err = s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		targets = ComputeTargets(&profile)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	out := &DailySummary{
		Date:      agg.Date,
		Calories:  progressOf(agg.Calories, targets.Calories),
		Protein:   progressOf(agg.Protein, targets.Protein),
		Carbs:     progressOf(agg.Carbs, targets.Carbs),
		Fat:       progressOf(agg.Fat, targets.Fat),
		MealCount: agg.Count,
		Targets:   targets,
	}

	// Paired weight for the day, if one was logged (latest wins).
	var sample models.WeightSample
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND measured_at >= ? AND measured_at <= ?",
			userID, utils.DayStart(date), utils.DayEnd(date)).
		Order("measured_at DESC").
		First(&sample).Error
	if err == nil {
		out.Weight = &sample.Kilograms
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return out, nil
}

// ChartRange merges the last `days` days of nutrition totals with the full
// weight history into one ascending series for the progress chart.
func (s *LedgerService) ChartRange(ctx context.Context, userID uint, days int) ([]ChartPoint, error) {
	if days <= 0 {
		days = 30
	}
	now := time.Now()
	start := utils.DayStart(now).AddDate(0, 0, -(days - 1))

	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND ate_at >= ?", userID, start).
		Find(&meals).Error; err != nil {
		return nil, err
	}

	nutrition := make(map[string]DayNutrition)
	for _, m := range meals {
		key := utils.LocalDayKey(m.AteAt)
		n := nutrition[key]
		n.Calories += m.Calories
		n.Protein += m.Protein
		n.Carbs += m.Carbs
		n.Fat += m.Fat
		nutrition[key] = n
	}

	var samples []models.WeightSample
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("measured_at ASC").
		Find(&samples).Error; err != nil {
		return nil, err
	}

	return MergeRangeForChart(nutrition, samples), nil
}

func progressOf(consumed, target int) MacroProgress {
	return MacroProgress{
		Consumed: consumed,
		Target:   target,
		Percent:  utils.Percent(float64(consumed), float64(target)),
	}
}
