package handler

import (
	"context"
	"net/http"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/database"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/middleware"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/realtime"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/timer"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
)

// sessionRecorder persiste les intervalles du chronomètre dans study_sessions
type sessionRecorder struct{}

func (sessionRecorder) Record(ctx context.Context, interval timer.Interval) (string, error) {
	var id string
	err := database.DB.QueryRow(ctx,
		`INSERT INTO study_sessions(user_id, subject_id, task_id, start_time, end_time,
			duration_seconds, notes, created_at, updated_at, created_by)
		 VALUES($1, $2, $3, $4, $5, $6, '', NOW(), NOW(), $1)
		 RETURNING id`,
		interval.UserID, interval.SubjectID, interval.TaskID,
		interval.StartTime, interval.EndTime, interval.DurationSeconds,
	).Scan(&id)
	return id, err
}

// Timers garde le chronomètre serveur de chaque utilisateur
var Timers = timer.NewRegistry(sessionRecorder{})

// StartTimer démarre le chronomètre de l'utilisateur. Sans effet s'il tourne déjà.
func StartTimer(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	t := Timers.Get(user.ID)
	t.Start()

	utils.Success(w, map[string]interface{}{
		"running": true,
		"elapsed": t.Elapsed(),
	})
}

// GetTimerState retourne l'état courant du chronomètre, le temps écoulé
// étant recalculé à la demande
func GetTimerState(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	t := Timers.Get(user.ID)

	utils.Success(w, map[string]interface{}{
		"running": t.Running(),
		"elapsed": t.Elapsed(),
	})
}

// StopTimer arrête le chronomètre et enregistre la session d'étude.
// Le chronomètre reste arrêté même si l'enregistrement échoue.
func StopTimer(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SubjectID      string  `json:"subjectId"`
		TaskID         *string `json:"taskId,omitempty"`
		ProgressAmount int     `json:"progressAmount,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.SubjectID == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing subjectId")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	interval, err := Timers.Get(user.ID).Stop(ctx, payload.SubjectID, payload.TaskID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not record study session", err)
		return
	}

	// Effet secondaire: la progression de tâche n'invalide pas la session
	if payload.TaskID != nil && payload.ProgressAmount > 0 {
		if err := utils.IncrementTaskProgress(ctx, user.ID, *payload.TaskID, payload.ProgressAmount); err != nil {
			utils.LogError("task progress not applied after timer stop: %v", err)
		}
	}

	realtime.Notify("study_sessions", "insert", "", user.ID)

	utils.Success(w, interval)
}

// ResetTimer remet le chronomètre à zéro sans rien enregistrer
func ResetTimer(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	Timers.Get(user.ID).Reset()

	utils.Success(w, map[string]interface{}{
		"running": false,
		"elapsed": 0,
	})
}
