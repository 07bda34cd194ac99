package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Marino59/dieta/models"
	"github.com/Marino59/dieta/utils"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// AdviceService serves the daily coach card. The AI is asked at most once
// per user per local calendar day; the answer is cached until local
// midnight, when a fresh day deserves fresh advice. The "ho fame" button is
// intentionally uncached.
type AdviceService struct {
	db     *gorm.DB
	gemini *GeminiService
	ledger *LedgerService
	cache  *cache.Cache
}

func NewAdviceService(db *gorm.DB, gemini *GeminiService, ledger *LedgerService) *AdviceService {
	return &AdviceService{
		db:     db,
		gemini: gemini,
		ledger: ledger,
		cache:  cache.New(cache.NoExpiration, 1*time.Hour),
	}
}

func adviceKey(userID uint, day time.Time) string {
	return fmt.Sprintf("advice:%d:%s", userID, utils.LocalDayKey(day))
}

// Daily returns today's coach advice, computing it on first request. The
// fail-soft fallback from the AI layer is cached too, so a quota error does
// not cause a retry storm.
func (s *AdviceService) Daily(ctx context.Context, userID uint) (*CoachAdvice, error) {
	now := time.Now()
	key := adviceKey(userID, now)
	if v, ok := s.cache.Get(key); ok {
		return v.(*CoachAdvice), nil
	}

	profile, consumed, err := s.profileAndConsumed(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	advice := s.gemini.DailyCoachAdvice(ctx, profile, consumed)
	s.cache.Set(key, advice, time.Until(utils.NextLocalMidnight(now)))
	return advice, nil
}

// Hungry answers the snack button against the live remaining-calorie count.
func (s *AdviceService) Hungry(ctx context.Context, userID uint) (*SnackAdvice, error) {
	now := time.Now()
	profile, consumed, err := s.profileAndConsumed(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return s.gemini.HungryAdvice(ctx, profile, consumed), nil
}

// Invalidate drops the cached advice for today, used when the profile or
// goal changes and the old advice no longer fits.
func (s *AdviceService) Invalidate(userID uint) {
	s.cache.Delete(adviceKey(userID, time.Now()))
}

func (s *AdviceService) profileAndConsumed(ctx context.Context, userID uint, day time.Time) (*models.Profile, int, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, 0, err
	}
	if profile.TargetCalories <= 0 {
		profile.TargetCalories = ComputeTargets(&profile).Calories
	}

	meals, err := s.ledger.MealsForDay(ctx, userID, day)
	if err != nil {
		return nil, 0, err
	}
	return &profile, AggregateMeals(meals, day).Calories, nil
}
