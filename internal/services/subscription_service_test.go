package services

import (
	"testing"
	"time"

	"github.com/ecoreforest/ecoreforest-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivateSetsPlanWindow(t *testing.T) {
	svc := NewSubscriptionService(newTestDB(t))
	base := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	tests := []struct {
		plan models.Plan
		days int
	}{
		{models.PlanDaily, 1},
		{models.PlanWeekly, 7},
		{models.PlanMonthly, 30},
		{models.PlanYearly, 365},
	}

	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			sub, err := svc.Activate("a@b.com", tt.plan)
			require.NoError(t, err)
			assert.Equal(t, base, sub.StartDate)
			assert.Equal(t, base.AddDate(0, 0, tt.days), sub.EndDate)
			assert.True(t, sub.Active)
		})
	}
}

func TestActivateUnknownPlan(t *testing.T) {
	svc := NewSubscriptionService(newTestDB(t))

	_, err := svc.Activate("a@b.com", models.Plan("Lifetime"))
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestActivateReplacesPriorActive(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)
	base := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	monthly, err := svc.Activate("a@b.com", models.PlanMonthly)
	require.NoError(t, err)

	yearly, err := svc.Activate(" A@B.com ", models.PlanYearly)
	require.NoError(t, err)

	// Exactly one active row for the email, and it is the new one.
	var active []models.Subscription
	require.NoError(t, db.Where("email = ? AND active = ?", "a@b.com", true).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, yearly.ID, active[0].ID)
	assert.Equal(t, models.PlanYearly, active[0].Plan)

	var old models.Subscription
	require.NoError(t, db.First(&old, monthly.ID).Error)
	assert.False(t, old.Active)
}

func TestGetActiveNone(t *testing.T) {
	svc := NewSubscriptionService(newTestDB(t))

	sub, err := svc.GetActive("a@b.com")
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestGetActiveLazyExpiry(t *testing.T) {
	db := newTestDB(t)
	svc := NewSubscriptionService(db)
	base := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	created, err := svc.Activate("a@b.com", models.PlanDaily)
	require.NoError(t, err)

	// Still valid on the end date itself.
	svc.now = func() time.Time { return base.AddDate(0, 0, 1) }
	sub, err := svc.GetActive("a@b.com")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, created.ID, sub.ID)

	// Past the end date the read itself deactivates the row.
	svc.now = func() time.Time { return base.AddDate(0, 0, 2) }
	sub, err = svc.GetActive("a@b.com")
	require.NoError(t, err)
	assert.Nil(t, sub)

	var row models.Subscription
	require.NoError(t, db.First(&row, created.ID).Error)
	assert.False(t, row.Active, "expiry must be observable as a flipped flag")

	// Subsequent reads stay empty without touching the row again.
	sub, err = svc.GetActive("a@b.com")
	require.NoError(t, err)
	assert.Nil(t, sub)
}
