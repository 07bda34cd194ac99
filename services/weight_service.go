package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Marino59/dieta/models"
	"github.com/Marino59/dieta/utils"

	"gorm.io/gorm"
)

type WeightService struct {
	db     *gorm.DB
	ledger *LedgerService
	hub    *RealtimeHub
}

func NewWeightService(db *gorm.DB, ledger *LedgerService, hub *RealtimeHub) *WeightService {
	return &WeightService{db: db, ledger: ledger, hub: hub}
}

// QuickLog records the authoritative weight for one local calendar day,
// replacing an existing sample for that day if present. Days after today are
// rejected, not clamped.
func (s *WeightService) QuickLog(ctx context.Context, userID uint, kilograms float64, day time.Time) (*models.WeightSample, error) {
	if err := validateKilograms(kilograms); err != nil {
		return nil, err
	}
	now := time.Now()
	start := utils.DayStart(day)
	if start.After(now) {
		return nil, ErrFutureTimestamp
	}

	measuredAt := now
	if !utils.SameLocalDay(now, day) {
		// Backdated entry: pin to noon of that day, well inside the bucket.
		measuredAt = start.Add(12 * time.Hour)
	}

	var sample models.WeightSample
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND measured_at >= ? AND measured_at <= ?",
			userID, start, utils.DayEnd(day)).
		Order("measured_at DESC").
		First(&sample).Error
	switch {
	case err == nil:
		sample.Kilograms = roundKg(kilograms)
		sample.MeasuredAt = measuredAt
		if err := s.db.WithContext(ctx).Save(&sample).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		sample = models.WeightSample{UserID: userID, Kilograms: roundKg(kilograms), MeasuredAt: measuredAt}
		if err := s.db.WithContext(ctx).Create(&sample).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.pushSummary(ctx, userID, day)
	return &sample, nil
}

// AddSample appends to the detailed history without the per-day upsert,
// allowing several samples on one day.
func (s *WeightService) AddSample(ctx context.Context, userID uint, kilograms float64, at time.Time) (*models.WeightSample, error) {
	if err := validateKilograms(kilograms); err != nil {
		return nil, err
	}
	if at.After(time.Now()) {
		return nil, ErrFutureTimestamp
	}

	sample := models.WeightSample{UserID: userID, Kilograms: roundKg(kilograms), MeasuredAt: at}
	if err := s.db.WithContext(ctx).Create(&sample).Error; err != nil {
		return nil, err
	}

	s.pushSummary(ctx, userID, at)
	return &sample, nil
}

func (s *WeightService) History(ctx context.Context, userID uint) ([]models.WeightSample, error) {
	var samples []models.WeightSample
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("measured_at ASC").
		Find(&samples).Error
	return samples, err
}

func (s *WeightService) Delete(ctx context.Context, userID, sampleID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", sampleID, userID).
		Delete(&models.WeightSample{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *WeightService) pushSummary(ctx context.Context, userID uint, day time.Time) {
	if s.hub == nil {
		return
	}
	summary, err := s.ledger.DailySummary(ctx, userID, day)
	if err != nil {
		return
	}
	s.hub.BroadcastSummary(userID, summary)
}

func validateKilograms(kg float64) error {
	if kg <= 0 || kg != kg || kg > 500 {
		return fmt.Errorf("implausible weight: %v kg", kg)
	}
	return nil
}

// One decimal of precision, as entered on the scale.
func roundKg(kg float64) float64 { return math.Round(kg*10) / 10 }
