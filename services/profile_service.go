package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Marino59/dieta/models"

	"gorm.io/gorm"
)

type ProfileService struct {
	db     *gorm.DB
	gemini *GeminiService
	advice *AdviceService
}

func NewProfileService(db *gorm.DB, gemini *GeminiService, advice *AdviceService) *ProfileService {
	return &ProfileService{db: db, gemini: gemini, advice: advice}
}

// ProfileInput is the editable part of a profile. The cached target fields
// are derived, never set directly by the client.
type ProfileInput struct {
	WeightKg       float64 `json:"weight_kg"`
	HeightCm       float64 `json:"height_cm"`
	Age            int     `json:"age"`
	Sex            string  `json:"sex"`
	ActivityFactor float64 `json:"activity_factor"`
	GoalDelta      int     `json:"goal_delta"`
}

func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save upserts the profile and recomputes the cached targets. Changing the
// body data drops any AI-derived goal targets, since they were computed for
// the old numbers, and invalidates today's cached advice.
func (s *ProfileService) Save(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	if err := validateProfileInput(in); err != nil {
		return nil, err
	}

	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile.UserID = userID
	profile.WeightKg = in.WeightKg
	profile.HeightCm = in.HeightCm
	profile.Age = in.Age
	profile.Sex = in.Sex
	profile.ActivityFactor = in.ActivityFactor
	profile.GoalDelta = in.GoalDelta

	// Body data changed under the AI goal: recompute from formulas instead.
	profile.GoalDescription = ""
	profile.GoalExplanation = ""
	profile.TargetCalories = 0

	cacheTargets(&profile, ComputeTargets(&profile))

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}
	if s.advice != nil {
		s.advice.Invalidate(userID)
	}
	return &profile, nil
}

// ApplyGoalDescription asks the AI to turn a free-text goal into concrete
// targets and caches them on the profile. The collaborator's failure (or an
// unusable calorie target) leaves the stored targets untouched.
func (s *ProfileService) ApplyGoalDescription(ctx context.Context, userID uint, goal string) (*models.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	targets, err := s.gemini.TargetsFromGoal(ctx, goal, profile)
	if err != nil {
		return nil, err
	}

	profile.GoalDescription = goal
	profile.GoalExplanation = targets.Explanation
	profile.TargetCalories = targets.TargetCalories
	profile.TargetProtein = targets.Protein
	profile.TargetCarbs = targets.Carbs
	profile.TargetFat = targets.Fat
	cacheTargets(profile, ComputeTargets(profile))

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	if s.advice != nil {
		s.advice.Invalidate(userID)
	}
	return profile, nil
}

// Targets returns the effective targets for the user: the profile's cached
// values, or the neutral defaults when no profile exists yet.
func (s *ProfileService) Targets(ctx context.Context, userID uint) (Targets, error) {
	profile, err := s.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return NeutralTargets(), nil
	}
	if err != nil {
		return Targets{}, err
	}
	return ComputeTargets(profile), nil
}

func cacheTargets(p *models.Profile, t Targets) {
	p.BMR = t.BMR
	p.TDEE = t.TDEE
	p.TargetCalories = t.Calories
	p.TargetProtein = t.Protein
	p.TargetCarbs = t.Carbs
	p.TargetFat = t.Fat
}

func validateProfileInput(in ProfileInput) error {
	if in.WeightKg <= 0 || in.WeightKg > 500 {
		return fmt.Errorf("implausible weight: %v kg", in.WeightKg)
	}
	if in.HeightCm <= 0 || in.HeightCm > 280 {
		return fmt.Errorf("implausible height: %v cm", in.HeightCm)
	}
	if in.Age <= 0 || in.Age > 130 {
		return fmt.Errorf("implausible age: %d", in.Age)
	}
	if in.Sex != "male" && in.Sex != "female" {
		return fmt.Errorf("sex must be male or female")
	}
	if !ValidActivityFactor(in.ActivityFactor) {
		return fmt.Errorf("unknown activity factor: %v", in.ActivityFactor)
	}
	return nil
}
