package handlers

import (
	"errors"
	"log"

	"zonelink/internal/services"
	"zonelink/pkg/timezone"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for the signed-in user's profile.
type ProfileHandler struct {
	profileService *services.ProfileService
	validate       *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the profile routes with the Fiber app. All routes
// require authentication.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Patch("/timezone", h.HandleUpdateTimezone)
	profileRoutes.Get("/clock", h.HandleGetClock)
}

// HandleGetProfile returns the authenticated user's profile, share code
// included for the share-code distribution flow.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.profileService.GetProfile(currentUserID(c))
	if err != nil {
		log.Printf("Error getting profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve profile",
			"error":   err.Error(),
		})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Profile not found",
		})
	}
	return c.JSON(user)
}

// UpdateTimezoneRequest represents the request body for a timezone change.
type UpdateTimezoneRequest struct {
	Timezone string `json:"timezone" validate:"required,max=64"`
}

// HandleUpdateTimezone applies a partial update of the user's timezone.
func (h *ProfileHandler) HandleUpdateTimezone(c *fiber.Ctx) error {
	var req UpdateTimezoneRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing timezone update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	user, err := h.profileService.UpdateTimezone(currentUserID(c), req.Timezone)
	if err != nil {
		log.Printf("Error updating timezone: %v", err)
		if errors.Is(err, timezone.ErrUnknownTimezone) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Timezone update failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update timezone",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Timezone updated successfully",
		"user":    user,
	})
}

// HandleGetClock returns the user's own timezone rendered at the current
// instant.
func (h *ProfileHandler) HandleGetClock(c *fiber.Ctx) error {
	clock, err := h.profileService.Clock(currentUserID(c))
	if err != nil {
		log.Printf("Error rendering profile clock: %v", err)
		if errors.Is(err, timezone.ErrUnknownTimezone) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not render clock",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not render clock",
			"error":   err.Error(),
		})
	}
	if clock == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Profile not found",
		})
	}
	return c.JSON(clock)
}
