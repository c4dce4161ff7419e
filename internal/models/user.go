package model

import (
	"time"
)

// DateFields contient les champs d'audit standard pour toutes les entités
type DateFields struct {
	CreatedBy *string   `json:"createdBy,omitempty"`
	UpdatedBy *string   `json:"updatedBy,omitempty"`
	DeletedAt time.Time `json:"deletedAt,omitempty"`
	DeletedBy *string   `json:"deletedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

type UserProfile struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Avatar     string    `json:"avatar,omitempty"`
	Level      int       `json:"level"`
	XP         int       `json:"xp"`
	WeeklyGoal int       `json:"weeklyGoal,omitempty"` // objectif hebdomadaire en secondes
	Provider   string    `json:"provider,omitempty"`   // email, google, apple
	JoinDate   time.Time `json:"joinDate,omitempty"`
	DateFields
}

// UserCreator contient les informations de l'utilisateur créateur d'une entité
type UserCreator struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
