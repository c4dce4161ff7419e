package model

import (
	"database/sql"
	"time"
)

type Task struct {
	ID              string         `json:"id"`
	UserID          string         `json:"userId"`
	SubjectID       *string        `json:"subjectId,omitempty"`
	Title           string         `json:"title"`
	Description     sql.NullString `json:"description,omitempty"`
	TargetAmount    int            `json:"targetAmount"`
	CompletedAmount int            `json:"completedAmount"`
	Unit            string         `json:"unit"` // pages, exercices, minutes...
	Tags            []string       `json:"tags,omitempty"`
	DueDate         sql.NullTime   `json:"dueDate,omitempty"`
	Completed       bool           `json:"completed"`
	CreatedBy       sql.NullString `json:"createdBy,omitempty"`
	UpdatedBy       sql.NullString `json:"updatedBy,omitempty"`
	DeletedBy       sql.NullString `json:"deletedBy,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       sql.NullTime   `json:"deletedAt,omitempty"`
}
