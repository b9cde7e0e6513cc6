package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"goreal-api/models"
	"goreal-api/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *services.SheetsClient) {
	t.Helper()

	mem := services.NewMemorySpreadsheet(map[string][][]string{
		"PlayerLog":  {models.PlayerLogHeader},
		"Challenges": {models.ChallengesHeader},
	})
	store := services.NewSheetsClient(func() (services.Spreadsheet, error) { return mem, nil }, "PlayerLog", "Challenges")
	catalog := services.NewCatalogCache(store, time.Minute)

	app := fiber.New()
	SetupChallengeRoutes(app, store, catalog)
	SetupAdminRoutes(app, store, catalog)
	SetupWebsiteRoutes(app, nil)
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload), "every response must carry a JSON body: %s", raw)
	return resp.StatusCode, payload
}

func TestLogSubmitStatusScenario(t *testing.T) {
	app, _ := setupTestApp(t)

	code, body := doJSON(t, app, http.MethodPost, "/log_challenge",
		`{"playerId":"P1","playerName":"Alice","challengeId":"C01"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Data logged successfully", body["message"])

	code, body = doJSON(t, app, http.MethodPost, "/submit_challenge",
		`{"playerId":"P1","challengeId":"C01","submissionText":"done"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Submission received.", body["message"])

	code, body = doJSON(t, app, http.MethodGet, "/get_status?playerId=P1&challengeId=C01", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Found", body["status"])
	assert.Equal(t, models.StatusSubmitted, body["challengeStatus"])
	assert.Equal(t, "done", body["submissionText"])
	assert.Equal(t, "Alice", body["playerName"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestLogChallengeValidation(t *testing.T) {
	app, _ := setupTestApp(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "empty body", body: "", message: "No JSON data provided"},
		{name: "empty object", body: `{}`, message: "No JSON data provided"},
		{name: "missing playerId", body: `{"playerName":"Alice","challengeId":"C01"}`, message: "Missing required field: playerId"},
		{name: "missing playerName", body: `{"playerId":"P1","challengeId":"C01"}`, message: "Missing required field: playerName"},
		{name: "empty challengeId", body: `{"playerId":"P1","playerName":"Alice","challengeId":""}`, message: "Empty value for field: challengeId"},
		{name: "bad playerId charset", body: `{"playerId":"bad id!","playerName":"Alice","challengeId":"C01"}`, message: "playerId: ID contains invalid characters (only alphanumeric, underscore, and dash allowed)"},
		{name: "malicious playerName", body: `{"playerId":"P1","playerName":"<script>alert(1)</script>","challengeId":"C01"}`, message: "playerName contains potentially malicious content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := doJSON(t, app, http.MethodPost, "/log_challenge", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestLogChallengeIsNotIdempotent(t *testing.T) {
	app, store := setupTestApp(t)

	payload := `{"playerId":"P1","playerName":"Alice","challengeId":"C01"}`
	code, _ := doJSON(t, app, http.MethodPost, "/log_challenge", payload)
	require.Equal(t, http.StatusOK, code)
	code, _ = doJSON(t, app, http.MethodPost, "/log_challenge", payload)
	require.Equal(t, http.StatusOK, code)

	entries, err := store.GetPlayerLog()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSubmitChallengeWithoutLogIs404(t *testing.T) {
	app, _ := setupTestApp(t)

	code, body := doJSON(t, app, http.MethodPost, "/submit_challenge",
		`{"playerId":"P9","challengeId":"C09","submissionText":"done"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "No matching challenge log found for playerId P9 and challengeId C09", body["message"])
}

func TestSubmitChallengeRejectsScriptPayload(t *testing.T) {
	app, _ := setupTestApp(t)

	code, body := doJSON(t, app, http.MethodPost, "/submit_challenge",
		`{"playerId":"P1","challengeId":"C01","submissionText":"<script>alert(1)</script>"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "submissionText contains potentially malicious content", body["message"])
}

func TestGetStatusValidationAndNotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	code, body := doJSON(t, app, http.MethodGet, "/get_status?playerId=P1", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing required parameter: challengeId", body["message"])

	code, body = doJSON(t, app, http.MethodGet, "/get_status?playerId=P1&challengeId=C01", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NotFound", body["status"])
	assert.Nil(t, body["challengeStatus"])
}

func TestGetStatusReturnsMostRecentRow(t *testing.T) {
	app, store := setupTestApp(t)

	require.NoError(t, store.LogChallenge("P1", "Alice", "C01", models.StatusCompleted, "first attempt"))
	require.NoError(t, store.LogChallenge("P1", "Alice", "C01", models.StatusReceived, ""))

	code, body := doJSON(t, app, http.MethodGet, "/get_status?playerId=P1&challengeId=C01", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.StatusReceived, body["challengeStatus"])
}

func TestGetChallenges(t *testing.T) {
	t.Run("empty catalog is a 200 with an empty array", func(t *testing.T) {
		app, _ := setupTestApp(t)
		code, body := doJSON(t, app, http.MethodGet, "/get_challenges", "")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, "Retrieved 0 challenges successfully", body["message"])
		assert.Empty(t, body["challenges"])
	})

	t.Run("catalog rows come back with reward points", func(t *testing.T) {
		app, store := setupTestApp(t)
		require.NoError(t, store.SaveChallenges([]models.ChallengeDefinition{
			{ChallengeID: "C01", Title: "Clean your room", Description: "Tidy up", RewardPoints: 10},
		}))

		code, body := doJSON(t, app, http.MethodGet, "/get_challenges", "")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Retrieved 1 challenges successfully", body["message"])
		challenges, ok := body["challenges"].([]any)
		require.True(t, ok)
		require.Len(t, challenges, 1)
		first, ok := challenges[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "C01", first["challengeId"])
		assert.Equal(t, float64(10), first["rewardPoints"])
	})
}

func TestHealth(t *testing.T) {
	app, _ := setupTestApp(t)

	code, body := doJSON(t, app, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "GoREAL API is running", body["message"])
	assert.NotEmpty(t, body["endpoints"])
}

func TestUploadProofWithoutR2Is503(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/upload_proof", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestAskGorealWithoutAPIKey(t *testing.T) {
	app, _ := setupTestApp(t)

	code, body := doJSON(t, app, http.MethodPost, "/ask-goreal", `{"question":"What is GoREAL?"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Sorry, the chatbot is not configured with an API key yet.", body["answer"])

	code, body = doJSON(t, app, http.MethodPost, "/ask-goreal", `{"question":""}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Please ask a question.", body["answer"])
}
