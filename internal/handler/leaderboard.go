package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/database"
	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/scanner"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
	"github.com/gorilla/mux"
)

// DefaultLeaderboardSize est la taille de la fenêtre de classement affichée
const DefaultLeaderboardSize = 50

// periodFilter traduit le paramètre de période en clause SQL.
// Les valeurs inconnues retombent sur le classement global.
func periodFilter(period string) string {
	switch period {
	case "day":
		return `AND ss.start_time >= date_trunc('day', NOW())`
	case "week":
		return `AND ss.start_time >= date_trunc('week', NOW())`
	case "month":
		return `AND ss.start_time >= date_trunc('month', NOW())`
	default:
		return ``
	}
}

// fetchLeaderboard calcule la fenêtre de classement par temps d'étude cumulé
func fetchLeaderboard(ctx context.Context, period string, limit int) ([]model.LeaderboardEntry, error) {
	query := `
		WITH study_totals AS (
			SELECT ss.user_id, SUM(ss.duration_seconds) as total_seconds
			FROM study_sessions ss
			WHERE ss.deleted_at IS NULL ` + periodFilter(period) + `
			GROUP BY ss.user_id
		)
		SELECT
			u.id, u.name, u.avatar, u.level,
			RANK() OVER (ORDER BY st.total_seconds DESC) as rank,
			st.total_seconds
		FROM study_totals st
		INNER JOIN users u ON u.id = st.user_id AND u.deleted_at IS NULL
		ORDER BY st.total_seconds DESC, u.name
		LIMIT $1`

	rows, err := database.DB.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		e, err := scanner.ScanLeaderboardEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// rankLabel retourne "#N" si l'utilisateur est dans la fenêtre de classement,
// "-" sinon. N est la position 1-based dans la fenêtre, pas le rang SQL:
// deux ex aequo affichent des positions distinctes.
func rankLabel(entries []model.LeaderboardEntry, userID string) string {
	for i, e := range entries {
		if e.UserID == userID {
			return "#" + strconv.Itoa(i+1)
		}
	}
	return "-"
}

// GetLeaderboard retourne la fenêtre de classement pour une période donnée
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	limit := DefaultLeaderboardSize
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 200 {
		limit = l
	}

	entries, err := fetchLeaderboard(context.Background(), period, limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute leaderboard", err)
		return
	}

	utils.Success(w, entries)
}

// GetUserRank retourne le rang exact d'un utilisateur, son total et son
// percentile, indépendamment de la fenêtre affichée
func GetUserRank(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]
	period := r.URL.Query().Get("period")

	ctx := context.Background()

	query := `
		WITH study_totals AS (
			SELECT ss.user_id, SUM(ss.duration_seconds) as total_seconds
			FROM study_sessions ss
			WHERE ss.deleted_at IS NULL ` + periodFilter(period) + `
			GROUP BY ss.user_id
		),
		ranked AS (
			SELECT user_id, total_seconds,
				RANK() OVER (ORDER BY total_seconds DESC) as rank,
				COUNT(*) OVER () as total_users
			FROM study_totals
		)
		SELECT user_id, rank, total_seconds, total_users
		FROM ranked
		WHERE user_id = $1`

	var rank model.UserRank
	err := database.DB.QueryRow(ctx, query, userID).Scan(
		&rank.UserID, &rank.Rank, &rank.TotalSeconds, &rank.TotalUsers,
	)
	if err != nil {
		// Aucune session sur la période: l'utilisateur n'est pas classé
		utils.Success(w, model.UserRank{UserID: userID})
		return
	}

	if rank.TotalUsers > 0 {
		rank.Percentile = float64(rank.Rank) / float64(rank.TotalUsers) * 100
	}

	utils.Success(w, rank)
}

// GetGroupLeaderboard classe les membres d'un groupe par temps d'étude
func GetGroupLeaderboard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["id"]
	period := r.URL.Query().Get("period")

	query := `
		WITH study_totals AS (
			SELECT ss.user_id, SUM(ss.duration_seconds) as total_seconds
			FROM study_sessions ss
			INNER JOIN group_members gm ON gm.user_id = ss.user_id AND gm.group_id = $1
			WHERE ss.deleted_at IS NULL ` + periodFilter(period) + `
			GROUP BY ss.user_id
		)
		SELECT
			u.id, u.name, u.avatar, u.level,
			RANK() OVER (ORDER BY st.total_seconds DESC) as rank,
			st.total_seconds
		FROM study_totals st
		INNER JOIN users u ON u.id = st.user_id AND u.deleted_at IS NULL
		ORDER BY st.total_seconds DESC, u.name`

	rows, err := database.DB.Query(context.Background(), query, groupID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute group leaderboard", err)
		return
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		e, err := scanner.ScanLeaderboardEntry(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan leaderboard row", err)
			return
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read leaderboard rows", err)
		return
	}

	utils.Success(w, entries)
}
