// models/challenge.go
package models

// Statuses a PlayerLog row can carry. Nothing enforces transition order —
// the admin bulk-edit path may write any of these at any time.
const (
	StatusReceived   = "Received"
	StatusInProgress = "In Progress"
	StatusSubmitted  = "Submitted"
	StatusCompleted  = "Completed"
	StatusFailed     = "Failed"
	StatusReviewed   = "Reviewed"
)

// Header rows of the two backing worksheets. Column order matters: the store
// client updates Status and SubmissionText by fixed column position.
var (
	PlayerLogHeader  = []string{"Timestamp", "PlayerID", "PlayerName", "ChallengeID", "Status", "SubmissionText"}
	ChallengesHeader = []string{"ChallengeID", "Title", "Description", "RewardPoints"}
)

// ChallengeLogEntry is one row of the PlayerLog worksheet. The log is
// append-only: a player can have many rows for the same challenge, and the
// row nearest the end of the table is the current one.
type ChallengeLogEntry struct {
	Timestamp      string `json:"timestamp"`
	PlayerID       string `json:"playerId"`
	PlayerName     string `json:"playerName"`
	ChallengeID    string `json:"challengeId"`
	Status         string `json:"status"`
	SubmissionText string `json:"submissionText"`
}

// ChallengeDefinition is one row of the Challenges catalog worksheet.
type ChallengeDefinition struct {
	ChallengeID  string `json:"challengeId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	RewardPoints int    `json:"rewardPoints"`
}

// PlayerStatus is the answer to a status query: the most recent PlayerLog
// row matching a (playerId, challengeId) pair.
type PlayerStatus struct {
	Status         string `json:"status"`
	Timestamp      string `json:"timestamp"`
	PlayerName     string `json:"playerName"`
	SubmissionText string `json:"submissionText"`
}

// Request payloads. Pointer fields let the validator tell an absent key
// ("Missing required field") apart from an empty value ("Empty value for
// field") after JSON parsing.

type ChallengeLogRequest struct {
	PlayerID    *string `json:"playerId"`
	PlayerName  *string `json:"playerName"`
	ChallengeID *string `json:"challengeId"`
}

type SubmissionRequest struct {
	PlayerID       *string `json:"playerId"`
	ChallengeID    *string `json:"challengeId"`
	SubmissionText *string `json:"submissionText"`
}
