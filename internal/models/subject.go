package model

import (
	"database/sql"
	"time"
)

// Subject représente une matière du catalogue. UserID nul => matière globale
// partagée, sinon matière privée de l'utilisateur. ParentID nul => matière racine.
type Subject struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	ParentID     *string        `json:"parentId,omitempty"`
	UserID       *string        `json:"userId,omitempty"`
	DisplayOrder sql.NullInt32  `json:"displayOrder,omitempty"`
	CustomColor  *string        `json:"customColor,omitempty"`
	CreatedBy    sql.NullString `json:"createdBy,omitempty"`
	UpdatedBy    sql.NullString `json:"updatedBy,omitempty"`
	DeletedBy    sql.NullString `json:"deletedBy,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    sql.NullTime   `json:"deletedAt,omitempty"`
}

// SubjectNode est une matière avec ses enfants directs. L'arbre est reconstruit
// à chaque appel et n'est jamais muté après construction.
type SubjectNode struct {
	Subject
	Children []*SubjectNode `json:"children"`
}

// SubjectAggregate contient les totaux de temps par matière racine.
// Invariant: TotalSeconds == DirectSeconds + SubtagSeconds.
type SubjectAggregate struct {
	SubjectID     string `json:"subjectId"`
	SubjectName   string `json:"subjectName"`
	TotalSeconds  int    `json:"totalSeconds"`
	DirectSeconds int    `json:"directSeconds"`
	SubtagSeconds int    `json:"subtagSeconds"`
}

// UserSubject lie un utilisateur à une matière visible avec ses préférences d'affichage
type UserSubject struct {
	UserID       string    `json:"userId"`
	SubjectID    string    `json:"subjectId"`
	DisplayOrder int       `json:"displayOrder"`
	CustomColor  *string   `json:"customColor,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
