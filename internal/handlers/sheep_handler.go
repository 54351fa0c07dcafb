package handlers

import (
	"errors"
	"log"

	"flock/internal/models"
	"flock/internal/repositories"
	"flock/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SheepHandler handles HTTP requests for sheep records.
type SheepHandler struct {
	sheepService *services.SheepService
	validate     *validator.Validate
}

// NewSheepHandler creates a new SheepHandler.
func NewSheepHandler(sheepService *services.SheepService) *SheepHandler {
	return &SheepHandler{
		sheepService: sheepService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the sheep routes with the Fiber app.
func (h *SheepHandler) RegisterRoutes(router fiber.Router) {
	sheepRoutes := router.Group("/sheep")
	sheepRoutes.Post("/", h.HandleAddSheep)
	sheepRoutes.Get("/", h.HandleGetAllSheep)
	sheepRoutes.Get("/:id", h.HandleGetSheepByID)
	sheepRoutes.Put("/:id", h.HandleUpdateSheep)
	sheepRoutes.Delete("/:id", h.HandleDeleteSheep)
}

// HandleAddSheep creates a new sheep record. All attributes except
// vaccinated are required; vaccinated defaults to false.
func (h *SheepHandler) HandleAddSheep(c *fiber.Ctx) error {
	var sheep models.Sheep
	if err := c.BodyParser(&sheep); err != nil {
		log.Printf("Error parsing sheep request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(sheep); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please provide all required fields",
		})
	}

	if err := h.sheepService.CreateSheep(&sheep); err != nil {
		log.Printf("Error creating sheep: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server Error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Sheep added successfully!",
		"sheep":   sheep,
	})
}

// HandleGetAllSheep retrieves all sheep records.
func (h *SheepHandler) HandleGetAllSheep(c *fiber.Ctx) error {
	sheepList, err := h.sheepService.GetAllSheep()
	if err != nil {
		log.Printf("Error getting all sheep: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server Error",
		})
	}
	return c.JSON(sheepList)
}

// HandleGetSheepByID retrieves a single sheep record by its ID.
func (h *SheepHandler) HandleGetSheepByID(c *fiber.Ctx) error {
	id := c.Params("id")
	sheep, err := h.sheepService.GetSheepByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Sheep not found",
			})
		}
		log.Printf("Error getting sheep by ID %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server Error",
		})
	}
	return c.JSON(sheep)
}

// HandleUpdateSheep replaces the named attributes of a sheep record and
// returns the post-update state.
func (h *SheepHandler) HandleUpdateSheep(c *fiber.Ctx) error {
	id := c.Params("id")
	var attrs models.Sheep
	if err := c.BodyParser(&attrs); err != nil {
		log.Printf("Error parsing sheep update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	sheep, err := h.sheepService.UpdateSheep(id, attrs)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Sheep not found",
			})
		}
		log.Printf("Error updating sheep %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server Error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Sheep updated successfully!",
		"sheep":   sheep,
	})
}

// HandleDeleteSheep deletes a sheep record by its ID.
func (h *SheepHandler) HandleDeleteSheep(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.sheepService.DeleteSheep(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Sheep not found",
			})
		}
		log.Printf("Error deleting sheep %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server Error",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Sheep deleted successfully",
	})
}
