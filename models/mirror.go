// models/mirror.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Relational mirror of the sheet-backed data. Migrated at startup when
// DATABASE_URL is set, but NOT read or written by any HTTP handler — the
// sheet store stays the single source of truth. Kept as a separate
// persistence target for reporting and a possible future migration.

type Player struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	PlayerID    string `json:"player_id" gorm:"size:50;uniqueIndex;not null"`
	PlayerName  string `json:"player_name" gorm:"size:100;not null"`
	Email       string `json:"email" gorm:"size:255"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	TotalPoints int    `json:"total_points" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Challenges   []PlayerChallenge   `json:"challenges,omitempty" gorm:"foreignKey:PlayerID;references:PlayerID"`
	Achievements []PlayerAchievement `json:"achievements,omitempty" gorm:"foreignKey:PlayerID;references:PlayerID"`
}

type Challenge struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	ChallengeID     string `json:"challenge_id" gorm:"size:50;uniqueIndex;not null"`
	Title           string `json:"title" gorm:"size:200;not null"`
	Description     string `json:"description" gorm:"type:text;not null"`
	RewardPoints    int    `json:"reward_points" gorm:"not null;default:0"`
	DifficultyLevel string `json:"difficulty_level" gorm:"size:20;default:'easy'"`
	Category        string `json:"category" gorm:"size:50;default:'general'"`
	IsActive        bool   `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PlayerChallenges []PlayerChallenge `json:"player_challenges,omitempty" gorm:"foreignKey:ChallengeID;references:ChallengeID"`
}

type PlayerChallenge struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	PlayerID       string    `json:"player_id" gorm:"size:50;not null;index"`
	ChallengeID    string    `json:"challenge_id" gorm:"size:50;not null;index"`
	Status         string    `json:"status" gorm:"size:20;default:'Received'"`
	SubmissionText string    `json:"submission_text" gorm:"type:text"`
	SubmittedAt    *time.Time `json:"submitted_at"`
	CompletedAt    *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Achievement struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Code         string         `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Name         string         `json:"name" gorm:"size:100;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	RewardPoints int            `json:"reward_points" gorm:"default:0"`
	Criteria     datatypes.JSON `json:"criteria"`

	CreatedAt time.Time `json:"created_at"`
}

type PlayerAchievement struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	PlayerID      string    `json:"player_id" gorm:"size:50;not null;index"`
	AchievementID uint      `json:"achievement_id" gorm:"not null"`
	AwardedAt     time.Time `json:"awarded_at"`

	Achievement Achievement `json:"achievement,omitempty" gorm:"foreignKey:AchievementID"`
}
