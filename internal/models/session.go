package model

import (
	"database/sql"
	"time"
)

type StudySession struct {
	ID              string         `json:"sessionId"`
	UserID          string         `json:"userId"`
	SubjectID       string         `json:"subjectId"`
	TaskID          *string        `json:"taskId,omitempty"`
	StartTime       time.Time      `json:"startTime"`
	EndTime         time.Time      `json:"endTime"`
	DurationSeconds int            `json:"durationSeconds"`
	Notes           sql.NullString `json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	Creator         *UserCreator   `json:"creator,omitempty"`
	User            *UserCreator   `json:"user,omitempty"`
}

// SessionTotals contient les totaux de sessions d'un utilisateur.
// Tous les champs valent zéro pour un utilisateur sans session enregistrée.
type SessionTotals struct {
	TotalSeconds   int     `json:"totalSeconds"`
	MonthSeconds   int     `json:"monthSeconds"`
	SessionCount   int     `json:"sessionCount"`
	AverageSeconds float64 `json:"averageSeconds"`
}
