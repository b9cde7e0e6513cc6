// handlers/challenge_routes.go
package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"goreal-api/models"
	"goreal-api/services"
	"goreal-api/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SetupChallengeRoutes registers the game-facing API: challenge logging,
// proof submission, status queries, the catalog listing and the health
// check. Every error body is JSON with a status and a human-readable
// message, never a bare HTTP error.
func SetupChallengeRoutes(app *fiber.App, store *services.SheetsClient, catalog *services.CatalogCache) {

	app.Post("/log_challenge", func(c *fiber.Ctx) error {
		if emptyJSONBody(c.Body()) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "No JSON data provided",
			})
		}

		var req models.ChallengeLogRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid JSON payload",
			})
		}

		if verr := utils.ValidateChallengeLog(&req); verr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": verr.Error(),
			})
		}

		if err := store.LogChallenge(*req.PlayerID, *req.PlayerName, *req.ChallengeID, models.StatusReceived, ""); err != nil {
			log.Printf("log_challenge failed for player %s: %v", *req.PlayerID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to log data to sheet store",
			})
		}

		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Data logged successfully",
		})
	})

	app.Post("/submit_challenge", func(c *fiber.Ctx) error {
		if emptyJSONBody(c.Body()) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "No JSON data provided",
			})
		}

		var req models.SubmissionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid JSON payload",
			})
		}

		if verr := utils.ValidateSubmission(&req); verr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": verr.Error(),
			})
		}

		err := store.UpdateSubmission(*req.PlayerID, *req.ChallengeID, *req.SubmissionText, models.StatusSubmitted)
		switch {
		case err == nil:
			return c.JSON(fiber.Map{
				"status":  "success",
				"message": "Submission received.",
			})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": fmt.Sprintf("No matching challenge log found for playerId %s and challengeId %s", *req.PlayerID, *req.ChallengeID),
			})
		default:
			log.Printf("submit_challenge failed for player %s: %v", *req.PlayerID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Internal server error: " + err.Error(),
			})
		}
	})

	app.Get("/get_status", func(c *fiber.Ctx) error {
		playerID := c.Query("playerId")
		challengeID := c.Query("challengeId")

		if verr := utils.ValidateStatusQuery(playerID, challengeID); verr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": verr.Error(),
			})
		}

		status, err := store.GetPlayerStatus(playerID, challengeID)
		switch {
		case err == nil:
			return c.JSON(fiber.Map{
				"status":          "Found",
				"challengeStatus": status.Status,
				"timestamp":       status.Timestamp,
				"playerName":      status.PlayerName,
				"submissionText":  status.SubmissionText,
			})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":          "NotFound",
				"challengeStatus": nil,
			})
		default:
			log.Printf("get_status failed for player %s: %v", playerID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Internal server error: " + err.Error(),
			})
		}
	})

	app.Get("/get_challenges", func(c *fiber.Ctx) error {
		challenges, err := catalog.Get()
		if err != nil {
			log.Printf("get_challenges failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":     "error",
				"message":    "Internal server error: " + err.Error(),
				"challenges": []models.ChallengeDefinition{},
			})
		}

		return c.JSON(fiber.Map{
			"status":     "success",
			"message":    fmt.Sprintf("Retrieved %d challenges successfully", len(challenges)),
			"challenges": challenges,
		})
	})

	app.Post("/upload_proof", func(c *fiber.Ctx) error {
		if !utils.R2Configured() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "error",
				"message": "Proof uploads are not configured",
			})
		}

		file, err := c.FormFile("proof")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "proof file is required",
			})
		}
		if file.Size > 10*1024*1024 { // 10MB
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "file too large (max 10MB)",
			})
		}

		ext := filepath.Ext(file.Filename)
		if ext == "" {
			ext = ".png"
		}
		key := "proofs/" + uuid.NewString() + ext

		url, err := utils.UploadFileToR2(file, key)
		if err != nil {
			log.Printf("upload_proof failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "failed to upload proof",
			})
		}

		return c.JSON(fiber.Map{
			"status": "success",
			"url":    url,
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"message": "GoREAL API is running",
			"endpoints": fiber.Map{
				"POST /log_challenge":    "Log player challenge submissions",
				"POST /submit_challenge": "Submit proof of challenge completion",
				"GET /get_status":        "Query player challenge status",
				"GET /get_challenges":    "Retrieve available challenges list",
				"GET /health":            "Health check",
			},
		})
	})
}

// emptyJSONBody reports a body that carries no payload at all: empty, JSON
// null, or an empty object.
func emptyJSONBody(body []byte) bool {
	trimmed := string(bytes.TrimSpace(body))
	return trimmed == "" || trimmed == "null" || trimmed == "{}"
}
