package handlers

import (
	"errors"
	"log"

	"zonelink/internal/apperrors"
	"zonelink/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles HTTP requests for share-code lookups and contacts.
type ContactHandler struct {
	contactService *services.ContactService
	validate       *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the contact routes with the Fiber app. All routes
// require authentication.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/users/share-code/:code", h.HandleLookupShareCode)

	contactRoutes := router.Group("/contacts")
	contactRoutes.Get("/", h.HandleGetContacts)
	contactRoutes.Get("/clocks", h.HandleGetContactClocks)
	contactRoutes.Post("/", h.HandleAddContact)
	contactRoutes.Delete("/:id", h.HandleDeleteContact)
}

// HandleLookupShareCode previews the user behind a share code before the
// caller commits to adding them.
func (h *ContactHandler) HandleLookupShareCode(c *fiber.Ctx) error {
	user, err := h.contactService.LookupByShareCode(c.Params("code"))
	if err != nil {
		log.Printf("Error looking up share code: %v", err)
		if errors.Is(err, apperrors.ErrEmptyShareCode) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Lookup failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not look up share code",
			"error":   err.Error(),
		})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "User not found with this share code",
		})
	}
	return c.JSON(user)
}

// AddContactRequest represents the request body for redeeming a share code.
type AddContactRequest struct {
	ShareCode string `json:"shareCode" validate:"required"`
}

// HandleAddContact redeems a share code and creates a contact edge.
func (h *ContactHandler) HandleAddContact(c *fiber.Ctx) error {
	var req AddContactRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add contact body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	contact, err := h.contactService.AddContact(currentUserID(c), req.ShareCode)
	if err != nil {
		log.Printf("Error adding contact: %v", err)
		switch {
		case errors.Is(err, apperrors.ErrEmptyShareCode), errors.Is(err, apperrors.ErrSelfContact):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Could not add contact",
				"error":   err.Error(),
			})
		case errors.Is(err, apperrors.ErrShareCodeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Could not add contact",
				"error":   err.Error(),
			})
		case errors.Is(err, apperrors.ErrDuplicateContact):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Could not add contact",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add contact",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(contact)
}

// HandleGetContacts retrieves all of the caller's contacts.
func (h *ContactHandler) HandleGetContacts(c *fiber.Ctx) error {
	contacts, err := h.contactService.ListContacts(currentUserID(c))
	if err != nil {
		log.Printf("Error getting contacts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve contacts",
			"error":   err.Error(),
		})
	}
	return c.JSON(contacts)
}

// HandleGetContactClocks retrieves the caller's contacts with each one's
// current local time.
func (h *ContactHandler) HandleGetContactClocks(c *fiber.Ctx) error {
	clocks, err := h.contactService.ListContactClocks(currentUserID(c))
	if err != nil {
		log.Printf("Error getting contact clocks: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve contact clocks",
			"error":   err.Error(),
		})
	}
	return c.JSON(clocks)
}

// HandleDeleteContact removes one of the caller's contact edges by ID.
func (h *ContactHandler) HandleDeleteContact(c *fiber.Ctx) error {
	contactID := c.Params("id")
	if err := h.contactService.RemoveContact(currentUserID(c), contactID); err != nil {
		log.Printf("Error deleting contact %s: %v", contactID, err)
		if errors.Is(err, apperrors.ErrContactNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Contact not found",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete contact",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Contact removed successfully",
	})
}
