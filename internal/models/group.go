package model

import (
	"database/sql"
	"time"
)

type Group struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description sql.NullString `json:"description,omitempty"`
	Code        string         `json:"code"` // code court partageable
	HasPassword bool           `json:"hasPassword"`
	OwnerID     string         `json:"ownerId"`
	MemberCount int            `json:"memberCount"`
	CreatedBy   sql.NullString `json:"createdBy,omitempty"`
	UpdatedBy   sql.NullString `json:"updatedBy,omitempty"`
	DeletedBy   sql.NullString `json:"deletedBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   sql.NullTime   `json:"deletedAt,omitempty"`
}

type GroupMember struct {
	GroupID  string         `json:"groupId"`
	UserID   string         `json:"userId"`
	UserName string         `json:"userName"`
	Avatar   sql.NullString `json:"avatar,omitempty"`
	Role     string         `json:"role"` // owner, member
	JoinedAt time.Time      `json:"joinedAt"`
}
