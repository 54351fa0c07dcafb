package handlers

import (
	"errors"
	"log"

	"flock/internal/models"
	"flock/internal/repositories"
	"flock/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NecklaceHandler handles HTTP requests for necklace telemetry.
type NecklaceHandler struct {
	necklaceService *services.NecklaceService
}

// NewNecklaceHandler creates a new NecklaceHandler.
func NewNecklaceHandler(necklaceService *services.NecklaceService) *NecklaceHandler {
	return &NecklaceHandler{
		necklaceService: necklaceService,
	}
}

// RegisterRoutes registers the necklace routes with the Fiber app.
func (h *NecklaceHandler) RegisterRoutes(router fiber.Router) {
	necklaceRoutes := router.Group("/necklace")
	necklaceRoutes.Get("/:idNecklace", h.HandleGetNecklaceData)
	necklaceRoutes.Post("/", h.HandleAddNecklaceData)
}

// HandleGetNecklaceData retrieves the necklace document for a device id.
func (h *NecklaceHandler) HandleGetNecklaceData(c *fiber.Ctx) error {
	deviceID := c.Params("idNecklace")
	necklace, err := h.necklaceService.GetByDeviceID(deviceID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Necklace not found",
			})
		}
		log.Printf("Error fetching necklace %s: %v", deviceID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching necklace data",
			"error":   err.Error(),
		})
	}
	return c.JSON(necklace)
}

// ReadingInput mirrors models.Reading with pointer fields so an absent
// sample value can be told apart from a legitimate zero; every field is
// required.
type ReadingInput struct {
	Time  *float64 `json:"time"`
	Acc   *float64 `json:"acc"`
	Gyr   *float64 `json:"gyr"`
	Temp  *float64 `json:"temp"`
	Pulse *float64 `json:"pulse"`
}

// AddNecklaceRequest represents the request body for appending readings.
type AddNecklaceRequest struct {
	IDNecklace string         `json:"idNecklace"`
	Data       []ReadingInput `json:"data"`
}

// HandleAddNecklaceData appends readings to a necklace, creating the
// document if the device id has not been seen before. A reading missing
// any of its five fields rejects the whole request.
func (h *NecklaceHandler) HandleAddNecklaceData(c *fiber.Ctx) error {
	var req AddNecklaceRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing necklace request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.IDNecklace == "" || len(req.Data) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	readings := make([]models.Reading, 0, len(req.Data))
	for _, in := range req.Data {
		if in.Time == nil || in.Acc == nil || in.Gyr == nil || in.Temp == nil || in.Pulse == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
			})
		}
		readings = append(readings, models.Reading{
			Time:  *in.Time,
			Acc:   *in.Acc,
			Gyr:   *in.Gyr,
			Temp:  *in.Temp,
			Pulse: *in.Pulse,
		})
	}

	if err := h.necklaceService.AppendReadings(req.IDNecklace, readings); err != nil {
		log.Printf("Error adding necklace data for %s: %v", req.IDNecklace, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error adding data",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Data added successfully",
	})
}
