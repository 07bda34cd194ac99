package services

import (
	"context"
	"errors"
	"time"

	"github.com/Marino59/dieta/models"
	"github.com/Marino59/dieta/utils"

	"gorm.io/gorm"
)

type MealService struct {
	db     *gorm.DB
	ledger *LedgerService
	hub    *RealtimeHub
}

func NewMealService(db *gorm.DB, ledger *LedgerService, hub *RealtimeHub) *MealService {
	return &MealService{db: db, ledger: ledger, hub: hub}
}

// CreateMealInput carries a confirmed estimate through the commit step. The
// basis is per-100g; Grams is what the user actually ate. ReferenceDate is
// the day the user was viewing when the capture flow started, Hint is the
// AI-extracted relative date/time and Override a date/time the user picked
// explicitly in the confirmation step.
type CreateMealInput struct {
	Name          string
	Grams         int
	Basis         utils.NutritionBasis
	Note          string
	ImageURL      string
	ReferenceDate time.Time
	Hint          utils.MealTimeHint
	Override      *time.Time
}

// UpdateMealInput is a partial edit. Nil fields stay untouched.
type UpdateMealInput struct {
	Name  *string
	Note  *string
	Grams *int
	AteAt *time.Time
}

// Create resolves the timestamp, rejects future-dated meals, scales the
// per-100g basis to the serving and persists the record. The basis itself is
// stored too so later edits rescale without compounding rounding error.
func (s *MealService) Create(ctx context.Context, userID uint, in CreateMealInput) (*models.Meal, error) {
	now := time.Now()
	ref := in.ReferenceDate
	if ref.IsZero() {
		ref = now
	}

	ateAt := utils.ResolveMealTime(now, ref, in.Hint, in.Override)
	if ateAt.After(now) {
		return nil, ErrFutureTimestamp
	}

	grams := utils.CoerceGrams(in.Grams)
	macros := utils.ScaleNutrition(in.Basis, grams)

	name := in.Name
	if name == "" {
		name = "Pasto sconosciuto"
	}

	meal := &models.Meal{
		UserID:         userID,
		Name:           name,
		ServingGrams:   grams,
		Calories:       macros.Calories,
		Protein:        macros.Protein,
		Carbs:          macros.Carbs,
		Fat:            macros.Fat,
		CaloriesPer100: sanitizeBasisField(in.Basis.Calories),
		ProteinPer100:  sanitizeBasisField(in.Basis.Protein),
		CarbsPer100:    sanitizeBasisField(in.Basis.Carbs),
		FatPer100:      sanitizeBasisField(in.Basis.Fat),
		Note:           in.Note,
		AteAt:          ateAt,
		ImageURL:       in.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, err
	}

	s.pushSummary(ctx, userID, ateAt)
	return meal, nil
}

// Update applies a partial edit. A serving-size change rescales from the
// retained per-100g basis; records without a basis fall back to the ratio
// against the previous absolutes. A date change goes through the same
// future-timestamp policy as creation.
func (s *MealService) Update(ctx context.Context, userID, mealID uint, in UpdateMealInput) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	prevDay := meal.AteAt

	if in.Name != nil && *in.Name != "" {
		meal.Name = *in.Name
	}
	if in.Note != nil {
		meal.Note = *in.Note
	}
	if in.Grams != nil {
		newGrams := utils.CoerceGrams(*in.Grams)
		if meal.HasBasis() {
			basis := utils.NutritionBasis{
				Calories: meal.CaloriesPer100,
				Protein:  meal.ProteinPer100,
				Carbs:    meal.CarbsPer100,
				Fat:      meal.FatPer100,
			}
			macros := utils.ScaleNutrition(basis, newGrams)
			meal.Calories, meal.Protein, meal.Carbs, meal.Fat =
				macros.Calories, macros.Protein, macros.Carbs, macros.Fat
		} else {
			old := utils.Macros{Calories: meal.Calories, Protein: meal.Protein, Carbs: meal.Carbs, Fat: meal.Fat}
			macros := utils.RescaleByRatio(old, meal.ServingGrams, newGrams)
			meal.Calories, meal.Protein, meal.Carbs, meal.Fat =
				macros.Calories, macros.Protein, macros.Carbs, macros.Fat
		}
		meal.ServingGrams = newGrams
	}
	if in.AteAt != nil {
		if in.AteAt.After(time.Now()) {
			return nil, ErrFutureTimestamp
		}
		meal.AteAt = *in.AteAt
	}

	if err := s.db.WithContext(ctx).Save(&meal).Error; err != nil {
		return nil, err
	}

	s.pushSummary(ctx, userID, meal.AteAt)
	if !utils.SameLocalDay(prevDay, meal.AteAt) {
		s.pushSummary(ctx, userID, prevDay)
	}
	return &meal, nil
}

func (s *MealService) Delete(ctx context.Context, userID, mealID uint) error {
	var meal models.Meal
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&meal).Error; err != nil {
		return err
	}

	s.pushSummary(ctx, userID, meal.AteAt)
	return nil
}

// pushSummary recomputes the affected day and broadcasts it to the user's
// open sockets, so a second device converges without polling. Best-effort:
// a failed recompute only skips the push.
func (s *MealService) pushSummary(ctx context.Context, userID uint, day time.Time) {
	if s.hub == nil {
		return
	}
	summary, err := s.ledger.DailySummary(ctx, userID, day)
	if err != nil {
		return
	}
	s.hub.BroadcastSummary(userID, summary)
}

func sanitizeBasisField(v float64) float64 {
	if v < 0 || v != v { // NaN
		return 0
	}
	return v
}
