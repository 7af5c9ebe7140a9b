package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ecoreforest/ecoreforest-backend/internal/dto"
	"github.com/ecoreforest/ecoreforest-backend/internal/middleware"
	"github.com/ecoreforest/ecoreforest-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RecommendHandler struct {
	accounts      *services.AccountService
	subscriptions *services.SubscriptionService
	recommender   *services.RecommendationService
}

func NewRecommendHandler(accounts *services.AccountService, subscriptions *services.SubscriptionService, recommender *services.RecommendationService) *RecommendHandler {
	return &RecommendHandler{
		accounts:      accounts,
		subscriptions: subscriptions,
		recommender:   recommender,
	}
}

// Regions is public: the UI needs the region list before login.
func (h *RecommendHandler) Regions(c *fiber.Ctx) error {
	return c.JSON(dto.RegionsResponse{Regions: h.recommender.Regions()})
}

// Generate gates on entitlement before any lookup happens: an active
// subscription grants unlimited use, otherwise a free use is consumed
// per generation. The denial happens before recommend runs.
func (h *RecommendHandler) Generate(c *fiber.Ctx) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Region == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Region is required",
		})
	}

	sub, err := h.subscriptions.GetActive(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	if sub == nil {
		free, err := h.accounts.FreeUses(email)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Error: true, Message: "User not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		if free <= 0 {
			return c.Status(fiber.StatusPaymentRequired).JSON(dto.ErrorResponse{
				Error: true, Message: "Free uses exhausted. Please subscribe to continue.",
			})
		}
	}

	recs := h.recommender.Recommend(&req)

	resp := dto.RecommendResponse{
		Region:          req.Region,
		Recommendations: recs,
	}

	usedFreeUse := sub == nil
	if usedFreeUse {
		remaining, err := h.accounts.ConsumeFreeUse(email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		resp.FreeUsesRemaining = &remaining
	}

	run, err := h.recommender.RecordRun(email, &req, recs, usedFreeUse)
	if err != nil {
		// The generation already happened; history is best effort.
		slog.Error("failed to record recommendation run", "email", email, "error", err)
	} else {
		resp.RunID = run.ID
	}

	return c.JSON(resp)
}

func (h *RecommendHandler) History(c *fiber.Ctx) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	runs, err := h.recommender.History(email, c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load history",
		})
	}

	resp := dto.HistoryResponse{Runs: make([]dto.RunSummary, 0, len(runs))}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, dto.RunSummary{
			ID:           run.ID,
			Region:       run.Region,
			SoilType:     run.SoilType,
			RainfallMm:   run.RainfallMm,
			Goal:         run.Goal,
			SpeciesCount: run.SpeciesCount,
			UsedFreeUse:  run.UsedFreeUse,
			CreatedAt:    run.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(resp)
}

func (h *RecommendHandler) ExportCSV(c *fiber.Ctx) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid run id",
		})
	}

	csvBytes, err := h.recommender.ExportCSV(email, id)
	if err != nil {
		if errors.Is(err, services.ErrRunNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Recommendation run not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to generate export",
		})
	}

	filename := "ecoreforest-recommendations-" + time.Now().Format(dateLayout) + ".csv"
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	c.Set("Cache-Control", "no-cache")

	return c.Send(csvBytes)
}
