package dto

type PlanResponse struct {
	Plan         string `json:"plan"`
	PriceUSD     int    `json:"price_usd"`
	DurationDays int    `json:"duration_days"`
}

type ActivateSubscriptionRequest struct {
	Plan string `json:"plan"`
}

type SubscriptionResponse struct {
	ID        uint   `json:"id"`
	Plan      string `json:"plan"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Active    bool   `json:"active"`
}

// EntitlementResponse tells the client whether the recommendation tool
// is accessible and why.
type EntitlementResponse struct {
	HasSubscription bool                  `json:"has_subscription"`
	Subscription    *SubscriptionResponse `json:"subscription,omitempty"`
	FreeUses        int                   `json:"free_uses"`
	CanGenerate     bool                  `json:"can_generate"`
}

type MeResponse struct {
	User         UserResponse          `json:"user"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}
