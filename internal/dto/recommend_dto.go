package dto

import "github.com/google/uuid"

// RecommendRequest carries the ten site and project inputs collected by
// the UI. Only region, soil type, rainfall and goal shape the output;
// the rest are recorded for context.
type RecommendRequest struct {
	Region          string `json:"region"`
	SoilType        string `json:"soil_type"`
	SoilPH          string `json:"soil_ph"`
	Drainage        string `json:"drainage"`
	SoilDepth       string `json:"soil_depth"`
	RainfallMm      int    `json:"rainfall_mm"`
	TemperatureC    int    `json:"temperature_c"`
	AltitudeM       int    `json:"altitude_m"`
	DrySeasonMonths int    `json:"dry_season_months"`
	Goal            string `json:"goal"`
	Maintenance     string `json:"maintenance"`
	TopN            int    `json:"top_n"`
}

type SpeciesRecommendation struct {
	Species string `json:"species"`
	Reason  string `json:"reason"`
	Benefit string `json:"benefit"`
}

type RecommendResponse struct {
	RunID           uuid.UUID               `json:"run_id"`
	Region          string                  `json:"region"`
	Recommendations []SpeciesRecommendation `json:"recommendations"`
	// FreeUsesRemaining is set only when the generation consumed a
	// free use (no active subscription).
	FreeUsesRemaining *int `json:"free_uses_remaining,omitempty"`
}

type RegionsResponse struct {
	Regions []string `json:"regions"`
}

type RunSummary struct {
	ID           uuid.UUID `json:"id"`
	Region       string    `json:"region"`
	SoilType     string    `json:"soil_type"`
	RainfallMm   int       `json:"rainfall_mm"`
	Goal         string    `json:"goal"`
	SpeciesCount int       `json:"species_count"`
	UsedFreeUse  bool      `json:"used_free_use"`
	CreatedAt    string    `json:"created_at"`
}

type HistoryResponse struct {
	Runs []RunSummary `json:"runs"`
}
