// handlers/website_routes.go
package handlers

import (
	"log"
	"strings"

	"goreal-api/services"

	"github.com/gofiber/fiber/v2"
)

// SetupWebsiteRoutes registers the public website surface: the knowledge-base
// chatbot and the registration stub. chatbot may be nil when no API key is
// configured.
func SetupWebsiteRoutes(app *fiber.App, chatbot *services.ChatbotClient) {

	app.Post("/ask-goreal", func(c *fiber.Ctx) error {
		var req struct {
			Question string `json:"question"`
		}
		if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Question) == "" {
			return c.JSON(fiber.Map{
				"answer": "Please ask a question.",
			})
		}

		if chatbot == nil {
			return c.JSON(fiber.Map{
				"answer": "Sorry, the chatbot is not configured with an API key yet.",
			})
		}

		answer, err := chatbot.Ask(c.Context(), req.Question)
		if err != nil {
			log.Printf("ask-goreal failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"answer": "Sorry, I'm running into a small hiccup right now.",
			})
		}

		return c.JSON(fiber.Map{
			"answer": answer,
		})
	})

	app.Post("/register", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Registration received!",
		})
	})
}
