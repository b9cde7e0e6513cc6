// services/sheets_client.go
package services

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"goreal-api/models"
)

// Fixed column positions of the PlayerLog worksheet (1-indexed). The proof
// update writes these two cells in place.
const (
	colStatus         = 5
	colSubmissionText = 6
)

const timestampLayout = "2006-01-02 15:04:05"

// SheetsClient adapts challenge operations onto the spreadsheet-backed
// store: a PlayerLog worksheet (append-only attempt history) and a
// Challenges worksheet (the catalog). It is the sole writer to the store.
//
// Matching is a linear scan through the full history on every status or
// update call. The tables are expected to stay in the hundreds to low
// thousands of rows; this is a known scaling ceiling, and adding an index
// would change how duplicate rows are resolved.
type SheetsClient struct {
	open            Opener
	playerLogSheet  string
	challengesSheet string

	mu    sync.Mutex
	sheet Spreadsheet // cached after the first successful Connect
}

// NewSheetsClient creates a client over the given opener. The connection is
// established lazily; a failed open is retried on the next call.
func NewSheetsClient(open Opener, playerLogSheet, challengesSheet string) *SheetsClient {
	return &SheetsClient{
		open:            open,
		playerLogSheet:  playerLogSheet,
		challengesSheet: challengesSheet,
	}
}

// Connect establishes the session with the backing store. Idempotent: a
// cached handle is reused for the lifetime of the client.
func (c *SheetsClient) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sheet != nil {
		return nil
	}
	sheet, err := c.open()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	c.sheet = sheet
	return nil
}

func (c *SheetsClient) worksheet(name string) (Worksheet, error) {
	if err := c.Connect(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	sheet := c.sheet
	c.mu.Unlock()
	ws, err := sheet.Worksheet(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return ws, nil
}

// LogChallenge appends one attempt row with a server-generated timestamp.
// Always appends, even when an identical (playerId, challengeId) pair
// already exists: the full history is retained and logging is deliberately
// not idempotent.
func (c *SheetsClient) LogChallenge(playerID, playerName, challengeID, status, submissionText string) error {
	ws, err := c.worksheet(c.playerLogSheet)
	if err != nil {
		return err
	}

	row := []string{
		time.Now().Format(timestampLayout),
		playerID,
		playerName,
		challengeID,
		status,
		submissionText,
	}
	if err := ws.AppendRow(row); err != nil {
		log.Printf("[Sheets] failed to log challenge for player %s, challenge %s: %v", playerID, challengeID, err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// UpdateSubmission finds the most recent PlayerLog row matching the identity
// pair and overwrites its Status and SubmissionText cells in place.
// Read-modify-write with no locking: two submissions racing on the same pair
// may both match the same row, and the last write wins.
func (c *SheetsClient) UpdateSubmission(playerID, challengeID, submissionText, status string) error {
	ws, err := c.worksheet(c.playerLogSheet)
	if err != nil {
		return err
	}

	rows, err := ws.Rows()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	rowIndex := findLatestMatch(rows, playerID, challengeID)
	if rowIndex == 0 {
		return ErrNotFound
	}

	if err := ws.UpdateCell(rowIndex, colStatus, status); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := ws.UpdateCell(rowIndex, colSubmissionText, submissionText); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// GetPlayerStatus returns the row nearest the end of the table matching the
// identity pair. "Most recent" is physical append order, not the timestamp
// value.
func (c *SheetsClient) GetPlayerStatus(playerID, challengeID string) (*models.PlayerStatus, error) {
	ws, err := c.worksheet(c.playerLogSheet)
	if err != nil {
		return nil, err
	}

	rows, err := ws.Rows()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	rowIndex := findLatestMatch(rows, playerID, challengeID)
	if rowIndex == 0 {
		return nil, ErrNotFound
	}

	row := rows[rowIndex-1]
	status := cell(row, colStatus)
	if status == "" {
		status = "Unknown"
	}
	return &models.PlayerStatus{
		Status:         status,
		Timestamp:      cell(row, 1),
		PlayerName:     cell(row, 3),
		SubmissionText: cell(row, colSubmissionText),
	}, nil
}

// findLatestMatch scans the data rows from the last to the first and returns
// the 1-indexed sheet row of the first match, or 0 when nothing matches.
// Row 1 is the header.
func findLatestMatch(rows [][]string, playerID, challengeID string) int {
	for i := len(rows) - 1; i >= 1; i-- {
		if cell(rows[i], 2) == playerID && cell(rows[i], 4) == challengeID {
			return i + 1
		}
	}
	return 0
}

// GetChallenges returns the full catalog table.
func (c *SheetsClient) GetChallenges() ([]models.ChallengeDefinition, error) {
	ws, err := c.worksheet(c.challengesSheet)
	if err != nil {
		return nil, err
	}

	rows, err := ws.Rows()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	challenges := make([]models.ChallengeDefinition, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		points, _ := strconv.Atoi(cell(row, 4))
		challenges = append(challenges, models.ChallengeDefinition{
			ChallengeID:  cell(row, 1),
			Title:        cell(row, 2),
			Description:  cell(row, 3),
			RewardPoints: points,
		})
	}
	return challenges, nil
}

// GetPlayerLog returns the full attempt history (admin read path).
func (c *SheetsClient) GetPlayerLog() ([]models.ChallengeLogEntry, error) {
	ws, err := c.worksheet(c.playerLogSheet)
	if err != nil {
		return nil, err
	}

	rows, err := ws.Rows()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	entries := make([]models.ChallengeLogEntry, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		entries = append(entries, models.ChallengeLogEntry{
			Timestamp:      cell(row, 1),
			PlayerID:       cell(row, 2),
			PlayerName:     cell(row, 3),
			ChallengeID:    cell(row, 4),
			Status:         cell(row, colStatus),
			SubmissionText: cell(row, colSubmissionText),
		})
	}
	return entries, nil
}

// SaveAll clears the named worksheet and rewrites header plus rows (admin
// bulk path). Not atomic with respect to readers: a read between the clear
// and the rewrite sees an empty table.
func (c *SheetsClient) SaveAll(worksheetName string, header []string, rows [][]string) error {
	ws, err := c.worksheet(worksheetName)
	if err != nil {
		return err
	}

	if err := ws.Clear(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	data := append([][]string{header}, rows...)
	if err := ws.Update(data); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// SavePlayerLog bulk-rewrites the attempt history table.
func (c *SheetsClient) SavePlayerLog(entries []models.ChallengeLogEntry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Timestamp, e.PlayerID, e.PlayerName, e.ChallengeID, e.Status, e.SubmissionText})
	}
	return c.SaveAll(c.playerLogSheet, models.PlayerLogHeader, rows)
}

// SaveChallenges bulk-rewrites the catalog table.
func (c *SheetsClient) SaveChallenges(challenges []models.ChallengeDefinition) error {
	rows := make([][]string, 0, len(challenges))
	for _, ch := range challenges {
		rows = append(rows, []string{ch.ChallengeID, ch.Title, ch.Description, strconv.Itoa(ch.RewardPoints)})
	}
	return c.SaveAll(c.challengesSheet, models.ChallengesHeader, rows)
}

// cell reads a 1-indexed cell from a row, tolerating short rows.
func cell(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return row[col-1]
}
