package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ecoreforest/ecoreforest-backend/internal/models"
	"gorm.io/gorm"
)

var ErrUnknownPlan = errors.New("unknown subscription plan")

type SubscriptionService struct {
	db *gorm.DB
	// now is swapped out in tests to drive expiry.
	now func() time.Time
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db, now: time.Now}
}

// Activate replaces any currently active subscription with a new window
// of start..start+plan duration. Deactivation and insertion run in one
// transaction so at most one row per email is ever active.
func (s *SubscriptionService) Activate(email string, plan models.Plan) (*models.Subscription, error) {
	days, ok := models.PlanDurations[plan]
	if !ok {
		return nil, ErrUnknownPlan
	}

	email = NormalizeEmail(email)
	start := s.now()
	sub := models.Subscription{
		Email:     email,
		Plan:      plan,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, days),
		Active:    true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Subscription{}).
			Where("email = ? AND active = ?", email, true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(&sub).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to activate subscription: %w", err)
	}

	return &sub, nil
}

// GetActive returns the most recent active subscription, or nil if
// there is none. A row whose end date has passed is deactivated here,
// on read; there is no background sweep, so expiry is only ever
// observed through this path.
func (s *SubscriptionService) GetActive(email string) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.Where("email = ? AND active = ?", NormalizeEmail(email), true).
		Order("id DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Comparison is at date granularity: a subscription stays valid
	// through the whole calendar day it ends on.
	if dateOnly(s.now()).After(dateOnly(sub.EndDate)) {
		if err := s.db.Model(&sub).Update("active", false).Error; err != nil {
			return nil, fmt.Errorf("failed to expire subscription: %w", err)
		}
		return nil, nil
	}

	return &sub, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
