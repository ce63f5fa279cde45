package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"log"
	"time"

	"zonelink/internal/services"
	"zonelink/pkg/timezone"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// ClockHandler streams live clock updates for the signed-in user and their
// contacts, the backend of a once-per-second clock display.
type ClockHandler struct {
	profileService *services.ProfileService
	contactService *services.ContactService
}

// NewClockHandler creates a new ClockHandler.
func NewClockHandler(profileService *services.ProfileService, contactService *services.ContactService) *ClockHandler {
	return &ClockHandler{
		profileService: profileService,
		contactService: contactService,
	}
}

// RegisterRoutes registers the clock routes with the Fiber app.
func (h *ClockHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/clocks/stream", h.HandleStreamClocks)
}

// clockFrame is one line of the newline-delimited JSON stream.
type clockFrame struct {
	At       time.Time               `json:"at"`
	Self     *services.ClockView     `json:"self"`
	Contacts []services.ContactClock `json:"contacts"`
}

func (h *ClockHandler) buildFrame(userID string, at time.Time) ([]byte, error) {
	self, err := h.profileService.Clock(userID)
	if err != nil {
		return nil, err
	}
	contacts, err := h.contactService.ListContactClocks(userID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(clockFrame{At: at, Self: self, Contacts: contacts})
}

// HandleStreamClocks writes one clock frame per second until the client
// disconnects. The tick has no side effects on stored state and is stopped
// when the stream ends.
func (h *ClockHandler) HandleStreamClocks(c *fiber.Ctx) error {
	userID := currentUserID(c)
	c.Set(fiber.HeaderContentType, "application/x-ndjson")
	c.Set(fiber.HeaderCacheControl, "no-cache")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		frames := make(chan []byte, 1)
		ticker := timezone.NewTicker(time.Second)
		defer ticker.Stop()
		ticker.Start(context.Background(), func(now time.Time) {
			frame, err := h.buildFrame(userID, now)
			if err != nil {
				log.Printf("Error building clock frame: %v", err)
				return
			}
			select {
			case frames <- frame:
			default: // writer is behind, drop the frame
			}
		})

		// First frame immediately, then one per tick. A failed write or
		// flush means the client is gone and ends the stream.
		frame, err := h.buildFrame(userID, time.Now())
		if err != nil {
			log.Printf("Error building clock frame: %v", err)
			return
		}
		for {
			if _, err := w.Write(frame); err != nil {
				return
			}
			if err := w.WriteByte('\n'); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
			frame = <-frames
		}
	}))
	return nil
}
