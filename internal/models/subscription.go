package models

import (
	"strings"
	"time"
)

type Plan string

const (
	PlanDaily   Plan = "Daily"
	PlanWeekly  Plan = "Weekly"
	PlanMonthly Plan = "Monthly"
	PlanYearly  Plan = "Yearly"
)

// PlanOrder is the display order used by the plans endpoint.
var PlanOrder = []Plan{PlanDaily, PlanWeekly, PlanMonthly, PlanYearly}

// PlanDurations maps each plan to its length in calendar days.
var PlanDurations = map[Plan]int{
	PlanDaily:   1,
	PlanWeekly:  7,
	PlanMonthly: 30,
	PlanYearly:  365,
}

// PlanPricesUSD mirrors the prices shown on the subscription page. No
// payment processing happens here; activating a plan only records a
// date window.
var PlanPricesUSD = map[Plan]int{
	PlanDaily:   1,
	PlanWeekly:  5,
	PlanMonthly: 15,
	PlanYearly:  100,
}

// ParsePlan matches a plan name case-insensitively.
func ParsePlan(s string) (Plan, bool) {
	for _, p := range PlanOrder {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// Subscription is a purchased plan window. At most one row per email is
// active at any instant: activation deactivates prior active rows in the
// same transaction, and expiry flips Active to false lazily on read.
type Subscription struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Plan      Plan      `gorm:"size:20;not null" json:"plan"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
