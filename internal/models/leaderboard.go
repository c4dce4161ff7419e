package model

import (
	"database/sql"
)

type LeaderboardEntry struct {
	UserID       string         `json:"userId"`
	UserName     string         `json:"userName"`
	Avatar       sql.NullString `json:"avatar,omitempty"`
	Level        int            `json:"level"`
	Rank         int            `json:"rank"`
	TotalSeconds int            `json:"totalSeconds"` // temps d'étude sur la période
}

type UserRank struct {
	UserID       string  `json:"userId"`
	Rank         int     `json:"rank"`
	TotalSeconds int     `json:"totalSeconds"`
	TotalUsers   int     `json:"totalUsers"`
	Percentile   float64 `json:"percentile"` // Top X%
}
