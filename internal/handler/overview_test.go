package handler

import (
	"testing"

	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
)

func entry(userID string, totalSeconds int) model.LeaderboardEntry {
	return model.LeaderboardEntry{UserID: userID, UserName: userID, TotalSeconds: totalSeconds}
}

func TestRankLabelInsideWindow(t *testing.T) {
	entries := []model.LeaderboardEntry{
		entry("alice", 7200),
		entry("bob", 3600),
		entry("carol", 1800),
	}

	if got := rankLabel(entries, "bob"); got != "#2" {
		t.Fatalf("expected #2 for bob, got %q", got)
	}
	if got := rankLabel(entries, "alice"); got != "#1" {
		t.Fatalf("expected #1 for alice, got %q", got)
	}
}

func TestRankLabelOutsideWindow(t *testing.T) {
	entries := []model.LeaderboardEntry{
		entry("alice", 7200),
	}

	if got := rankLabel(entries, "zoe"); got != "-" {
		t.Fatalf("expected - for unranked user, got %q", got)
	}
}

func TestRankLabelEmptyWindow(t *testing.T) {
	if got := rankLabel(nil, "alice"); got != "-" {
		t.Fatalf("expected - on empty leaderboard, got %q", got)
	}
}

func TestRankLabelTiesGetDistinctPositions(t *testing.T) {
	// Deux utilisateurs ex aequo gardent des positions d'affichage distinctes
	entries := []model.LeaderboardEntry{
		entry("alice", 3600),
		entry("bob", 3600),
	}

	if got := rankLabel(entries, "alice"); got != "#1" {
		t.Fatalf("expected #1, got %q", got)
	}
	if got := rankLabel(entries, "bob"); got != "#2" {
		t.Fatalf("expected #2, got %q", got)
	}
}
