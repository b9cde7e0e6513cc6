// handlers/admin_routes.go
package handlers

import (
	"fmt"
	"log"

	"goreal-api/models"
	"goreal-api/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
)

// SetupAdminRoutes registers the dashboard's data layer: full-table reads and
// clear-then-rewrite bulk saves for both worksheets. The rewrite is not
// isolated from concurrent readers.
func SetupAdminRoutes(app *fiber.App, store *services.SheetsClient, catalog *services.CatalogCache) {
	admin := app.Group("/admin")

	admin.Get("/playerlog", func(c *fiber.Ctx) error {
		entries, err := store.GetPlayerLog()
		if err != nil {
			log.Printf("admin playerlog read failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to read player log: " + err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":  "success",
			"entries": entries,
		})
	})

	admin.Put("/playerlog", func(c *fiber.Ctx) error {
		var req struct {
			Entries []models.ChallengeLogEntry `json:"entries"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid JSON payload",
			})
		}

		if err := store.SavePlayerLog(req.Entries); err != nil {
			log.Printf("admin playerlog save failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to save player log: " + err.Error(),
			})
		}

		message := fmt.Sprintf("Player Log updated successfully! %d records saved.", len(req.Entries))
		if len(req.Entries) == 0 {
			message = "Player Log cleared and headers restored."
		}
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": message,
		})
	})

	admin.Get("/challenges", func(c *fiber.Ctx) error {
		challenges, err := store.GetChallenges()
		if err != nil {
			log.Printf("admin challenges read failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to read challenges: " + err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":     "success",
			"challenges": challenges,
		})
	})

	admin.Put("/challenges", func(c *fiber.Ctx) error {
		var req struct {
			Challenges []models.ChallengeDefinition `json:"challenges"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid JSON payload",
			})
		}

		// Rows edited in without an ID get one derived from the title.
		for i := range req.Challenges {
			if req.Challenges[i].ChallengeID == "" && req.Challenges[i].Title != "" {
				req.Challenges[i].ChallengeID = slug.Make(req.Challenges[i].Title)
			}
		}

		if err := store.SaveChallenges(req.Challenges); err != nil {
			log.Printf("admin challenges save failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to save challenges: " + err.Error(),
			})
		}

		catalog.Invalidate()

		return c.JSON(fiber.Map{
			"status":     "success",
			"message":    "Challenge list saved successfully",
			"challenges": req.Challenges,
		})
	})
}
