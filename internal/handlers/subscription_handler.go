package handlers

import (
	"errors"

	"github.com/ecoreforest/ecoreforest-backend/internal/dto"
	"github.com/ecoreforest/ecoreforest-backend/internal/middleware"
	"github.com/ecoreforest/ecoreforest-backend/internal/models"
	"github.com/ecoreforest/ecoreforest-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

type SubscriptionHandler struct {
	accounts      *services.AccountService
	subscriptions *services.SubscriptionService
}

func NewSubscriptionHandler(accounts *services.AccountService, subscriptions *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{accounts: accounts, subscriptions: subscriptions}
}

// Plans is public: it lists the four fixed plans with prices.
func (h *SubscriptionHandler) Plans(c *fiber.Ctx) error {
	plans := make([]dto.PlanResponse, 0, len(models.PlanOrder))
	for _, p := range models.PlanOrder {
		plans = append(plans, dto.PlanResponse{
			Plan:         string(p),
			PriceUSD:     models.PlanPricesUSD[p],
			DurationDays: models.PlanDurations[p],
		})
	}
	return c.JSON(fiber.Map{"plans": plans})
}

func (h *SubscriptionHandler) Activate(c *fiber.Ctx) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ActivateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	plan, ok := models.ParsePlan(req.Plan)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Unknown plan. Choose Daily, Weekly, Monthly or Yearly.",
		})
	}

	sub, err := h.subscriptions.Activate(email, plan)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPlan) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to activate subscription",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      "Subscribed to " + string(sub.Plan),
		"subscription": mapSubscription(sub),
	})
}

func (h *SubscriptionHandler) Active(c *fiber.Ctx) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	sub, err := h.subscriptions.GetActive(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	if sub == nil {
		return c.JSON(fiber.Map{"subscription": nil})
	}

	return c.JSON(fiber.Map{"subscription": mapSubscription(sub)})
}

// Entitlement reports whether the recommendation tool is accessible.
// It runs the lazy-expiry read, so an expired subscription is flipped
// inactive the moment any gated page asks.
func (h *SubscriptionHandler) Entitlement(c *fiber.Ctx) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	sub, err := h.subscriptions.GetActive(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

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

	return c.JSON(dto.EntitlementResponse{
		HasSubscription: sub != nil,
		Subscription:    mapSubscription(sub),
		FreeUses:        free,
		CanGenerate:     sub != nil || free > 0,
	})
}

func mapSubscription(sub *models.Subscription) *dto.SubscriptionResponse {
	if sub == nil {
		return nil
	}
	return &dto.SubscriptionResponse{
		ID:        sub.ID,
		Plan:      string(sub.Plan),
		StartDate: sub.StartDate.Format(dateLayout),
		EndDate:   sub.EndDate.Format(dateLayout),
		Active:    sub.Active,
	}
}
