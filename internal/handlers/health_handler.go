package handlers

import (
	"time"

	"github.com/ecoreforest/ecoreforest-backend/internal/database"
	"github.com/ecoreforest/ecoreforest-backend/internal/dto"
	"github.com/ecoreforest/ecoreforest-backend/internal/species"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	catalog *species.Catalog
}

func NewHealthHandler(catalog *species.Catalog) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		DB:          dbStatus,
		RegionCount: h.catalog.Len(),
	})
}
