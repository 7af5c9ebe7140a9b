package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RecommendationRun records one generation of species recommendations,
// including the full result list, so past runs can be listed and
// exported as CSV later.
type RecommendationRun struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"size:255;not null;index" json:"email"`
	Region       string         `gorm:"size:100;not null" json:"region"`
	SoilType     string         `gorm:"size:50" json:"soil_type"`
	RainfallMm   int            `json:"rainfall_mm"`
	Goal         string         `gorm:"size:100" json:"goal"`
	SpeciesCount int            `json:"species_count"`
	UsedFreeUse  bool           `json:"used_free_use"`
	Results      datatypes.JSON `json:"results"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (RecommendationRun) TableName() string {
	return "recommendation_runs"
}
