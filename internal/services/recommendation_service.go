package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/ecoreforest/ecoreforest-backend/internal/dto"
	"github.com/ecoreforest/ecoreforest-backend/internal/models"
	"github.com/ecoreforest/ecoreforest-backend/internal/species"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrRunNotFound = errors.New("recommendation run not found")

// BenefitPhrases is the fixed set a benefit is drawn from, uniformly at
// random. Randomness never touches species selection or ordering.
var BenefitPhrases = []string{
	"Excellent carbon storage",
	"Supports biodiversity",
	"Good for erosion control",
	"Fast-growing timber",
}

type RecommendationService struct {
	db      *gorm.DB
	catalog *species.Catalog
}

// NewRecommendationService takes the species catalog at construction;
// the service never mutates it.
func NewRecommendationService(db *gorm.DB, catalog *species.Catalog) *RecommendationService {
	return &RecommendationService{db: db, catalog: catalog}
}

func (s *RecommendationService) Regions() []string {
	return s.catalog.Regions()
}

// Recommend looks the region up in the catalog, takes the first topN
// species and annotates each with a templated reason and a random
// benefit phrase. An unknown region yields an empty list, not an error.
func (s *RecommendationService) Recommend(req *dto.RecommendRequest) []dto.SpeciesRecommendation {
	topN := req.TopN
	if topN < 1 || topN > species.MaxPerRegion {
		topN = species.MaxPerRegion
	}

	list := s.catalog.Species(req.Region)
	if len(list) > topN {
		list = list[:topN]
	}

	reason := fmt.Sprintf("Matches %s soils; tolerates ~%dmm rainfall; useful for %s.",
		strings.ToLower(req.SoilType), req.RainfallMm, strings.ToLower(req.Goal))

	recs := make([]dto.SpeciesRecommendation, 0, len(list))
	for _, sp := range list {
		recs = append(recs, dto.SpeciesRecommendation{
			Species: sp,
			Reason:  reason,
			Benefit: BenefitPhrases[rand.Intn(len(BenefitPhrases))],
		})
	}
	return recs
}

// RecordRun persists a generation so it can be listed and exported
// later.
func (s *RecommendationService) RecordRun(email string, req *dto.RecommendRequest, recs []dto.SpeciesRecommendation, usedFreeUse bool) (*models.RecommendationRun, error) {
	results, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode results: %w", err)
	}

	run := models.RecommendationRun{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		Region:       req.Region,
		SoilType:     req.SoilType,
		RainfallMm:   req.RainfallMm,
		Goal:         req.Goal,
		SpeciesCount: len(recs),
		UsedFreeUse:  usedFreeUse,
		Results:      datatypes.JSON(results),
	}

	if err := s.db.Create(&run).Error; err != nil {
		return nil, fmt.Errorf("failed to store recommendation run: %w", err)
	}
	return &run, nil
}

// History lists the user's past runs, newest first.
func (s *RecommendationService) History(email string, limit int) ([]models.RecommendationRun, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var runs []models.RecommendationRun
	err := s.db.Where("email = ?", NormalizeEmail(email)).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendation runs: %w", err)
	}
	return runs, nil
}

// ExportCSV renders a stored run owned by the user as CSV.
func (s *RecommendationService) ExportCSV(email string, id uuid.UUID) ([]byte, error) {
	var run models.RecommendationRun
	err := s.db.Where("id = ? AND email = ?", id, NormalizeEmail(email)).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	var recs []dto.SpeciesRecommendation
	if err := json.Unmarshal(run.Results, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode stored results: %w", err)
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	if err := writer.Write([]string{"Species", "Reason", "Benefit"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, rec := range recs {
		if err := writer.Write([]string{rec.Species, rec.Reason, rec.Benefit}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buffer.Bytes(), nil
}
