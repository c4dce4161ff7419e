package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/database"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/middleware"
	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/realtime"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/scanner"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/subject"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
	"github.com/gorilla/mux"
)

const sessionColumns = `
	s.id, s.user_id, s.subject_id, s.task_id,
	s.start_time, s.end_time, s.duration_seconds, s.notes,
	s.created_at, s.updated_at`

type SaveSessionRequest struct {
	SubjectID       string     `json:"subjectId"`
	TaskID          *string    `json:"taskId,omitempty"`
	StartTime       *time.Time `json:"startTime,omitempty"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	DurationSeconds int        `json:"durationSeconds"`
	Notes           string     `json:"notes,omitempty"`
	ProgressAmount  int        `json:"progressAmount,omitempty"`
}

// SaveSession enregistre une session d'étude terminée.
// Une durée nulle ou négative est remontée à 1 seconde, et un startTime
// manquant est reconstruit à partir de endTime et de la durée.
func SaveSession(w http.ResponseWriter, r *http.Request) {
	var req SaveSessionRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SubjectID == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing subjectId")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	duration := req.DurationSeconds
	if duration < 1 {
		duration = 1
	}

	endTime := time.Now()
	if req.EndTime != nil {
		endTime = *req.EndTime
	}

	startTime := endTime.Add(-time.Duration(duration) * time.Second)
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	ctx := context.Background()

	var s model.StudySession
	err = database.DB.QueryRow(ctx,
		`INSERT INTO study_sessions(user_id, subject_id, task_id, start_time, end_time,
			duration_seconds, notes, created_at, updated_at, created_by)
		 VALUES($1, $2, $3, $4, $5, $6, $7, NOW(), NOW(), $1)
		 RETURNING id, created_at, updated_at`,
		user.ID, req.SubjectID, req.TaskID, startTime, endTime, duration, req.Notes,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save session", err)
		return
	}

	s.UserID = user.ID
	s.SubjectID = req.SubjectID
	s.TaskID = req.TaskID
	s.StartTime = startTime
	s.EndTime = endTime
	s.DurationSeconds = duration
	s.Notes = sql.NullString{String: req.Notes, Valid: req.Notes != ""}

	// La progression de la tâche est un effet secondaire: un échec
	// n'invalide pas la session déjà enregistrée
	if req.TaskID != nil && req.ProgressAmount > 0 {
		if err := utils.IncrementTaskProgress(ctx, user.ID, *req.TaskID, req.ProgressAmount); err != nil {
			utils.LogError("task progress not applied for session %s: %v", s.ID, err)
		}
	}

	realtime.Notify("study_sessions", "insert", s.ID, user.ID)

	utils.Success(w, s)
}

// GetUserSessions liste les sessions d'un utilisateur, les plus récentes
// d'abord, filtrables par matière
func GetUserSessions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	limit := 50
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 200 {
		limit = l
	}
	offset := 0
	if o, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && o > 0 {
		offset = o
	}

	ctx := context.Background()

	query := `
		SELECT ` + sessionColumns + `
		FROM study_sessions s
		WHERE s.user_id = $1 AND s.deleted_at IS NULL`
	args := []interface{}{userID}

	if subjectID := r.URL.Query().Get("subjectId"); subjectID != "" {
		query += ` AND s.subject_id = $2`
		args = append(args, subjectID)
	}

	query += ` ORDER BY s.start_time DESC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query sessions", err)
		return
	}
	defer rows.Close()

	sessions := []model.StudySession{}
	for rows.Next() {
		s, err := scanner.ScanStudySession(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan session row", err)
			return
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read session rows", err)
		return
	}

	utils.Success(w, sessions)
}

// GetSession récupère une session par ID
func GetSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	row := database.DB.QueryRow(context.Background(), `
		SELECT `+sessionColumns+`
		FROM study_sessions s
		WHERE s.id = $1 AND s.deleted_at IS NULL`,
		sessionID,
	)

	session, err := scanner.ScanStudySession(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "session not found")
		return
	}

	utils.Success(w, session)
}

// DeleteSession supprime une session (soft delete, propriétaire uniquement)
func DeleteSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	res, err := database.DB.Exec(context.Background(),
		`UPDATE study_sessions SET deleted_at=NOW(), deleted_by=$1
		 WHERE id=$2 AND user_id=$1 AND deleted_at IS NULL`,
		user.ID, sessionID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete session", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "session not found or not owned by you")
		return
	}

	realtime.Notify("study_sessions", "delete", sessionID, user.ID)

	utils.Success(w, map[string]bool{"success": true})
}

// fetchSessionTotals calcule les totaux de sessions d'un utilisateur.
// Un utilisateur sans session obtient des totaux à zéro, pas une erreur.
func fetchSessionTotals(ctx context.Context, userID string) (model.SessionTotals, error) {
	var totals model.SessionTotals

	err := database.DB.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(duration_seconds), 0) as total_seconds,
			COALESCE(SUM(duration_seconds) FILTER (
				WHERE start_time >= date_trunc('month', NOW())), 0) as month_seconds,
			COUNT(*) as session_count,
			COALESCE(AVG(duration_seconds), 0) as average_seconds
		FROM study_sessions
		WHERE user_id = $1 AND deleted_at IS NULL`,
		userID,
	).Scan(&totals.TotalSeconds, &totals.MonthSeconds, &totals.SessionCount, &totals.AverageSeconds)

	return totals, err
}

// fetchSubjectSeconds retourne les secondes cumulées par matière
func fetchSubjectSeconds(ctx context.Context, userID string) (map[string]int, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT subject_id, COALESCE(SUM(duration_seconds), 0) as seconds
		FROM study_sessions
		WHERE user_id = $1 AND deleted_at IS NULL
		GROUP BY subject_id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seconds := map[string]int{}
	for rows.Next() {
		var subjectID string
		var secs int
		if err := rows.Scan(&subjectID, &secs); err != nil {
			return nil, err
		}
		seconds[subjectID] = secs
	}
	return seconds, rows.Err()
}

// GetUserStats retourne les totaux et la répartition par matière racine
func GetUserStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	ctx := context.Background()

	totals, err := fetchSessionTotals(ctx, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute session totals", err)
		return
	}

	secondsBySubject, err := fetchSubjectSeconds(ctx, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not compute subject seconds", err)
		return
	}

	rows, err := database.DB.Query(ctx, catalogQuery, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query subjects", err)
		return
	}

	subjects, err := scanSubjects(rows)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not scan subject row", err)
		return
	}

	aggregates := subject.BuildAggregates(subjects, secondsBySubject)

	utils.Success(w, map[string]interface{}{
		"totals":     totals,
		"aggregates": aggregates,
	})
}
