package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/database"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/middleware"
	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/realtime"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/scanner"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
	"github.com/gorilla/mux"
	"github.com/lib/pq"
)

const taskColumns = `
	t.id, t.user_id, t.subject_id, t.title, t.description,
	t.target_amount, t.completed_amount, t.unit, t.tags,
	t.due_date, t.completed,
	t.created_by, t.updated_by, t.created_at, t.updated_at`

type TaskRequest struct {
	SubjectID    *string    `json:"subjectId,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	TargetAmount int        `json:"targetAmount"`
	Unit         string     `json:"unit"`
	Tags         []string   `json:"tags,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
}

// CreateTask crée une tâche pour l'utilisateur authentifié
func CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing task title")
		return
	}
	if req.TargetAmount < 1 {
		utils.ErrorSimple(w, http.StatusBadRequest, "targetAmount must be at least 1")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	row := database.DB.QueryRow(ctx,
		`INSERT INTO tasks(user_id, subject_id, title, description, target_amount,
			completed_amount, unit, tags, due_date, completed,
			created_at, updated_at, created_by)
		 VALUES($1, $2, $3, $4, $5, 0, $6, $7, $8, FALSE, NOW(), NOW(), $1)
		 RETURNING `+taskColumnsNoAlias(),
		user.ID, req.SubjectID, req.Title, req.Description,
		req.TargetAmount, req.Unit, pq.Array(req.Tags), req.DueDate,
	)

	task, err := scanner.ScanTask(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create task", err)
		return
	}

	realtime.Notify("tasks", "insert", task.ID, user.ID)

	utils.Success(w, task)
}

// taskColumnsNoAlias retire le préfixe d'alias pour les clauses RETURNING
func taskColumnsNoAlias() string {
	return `id, user_id, subject_id, title, description,
		target_amount, completed_amount, unit, tags,
		due_date, completed,
		created_by, updated_by, created_at, updated_at`
}

// GetUserTasks liste les tâches d'un utilisateur, non terminées d'abord
func GetUserTasks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	ctx := context.Background()

	query := `
		SELECT ` + taskColumns + `
		FROM tasks t
		WHERE t.user_id = $1 AND t.deleted_at IS NULL`
	args := []interface{}{userID}

	if subjectID := r.URL.Query().Get("subjectId"); subjectID != "" {
		query += ` AND t.subject_id = $2`
		args = append(args, subjectID)
	}

	query += ` ORDER BY t.completed, t.due_date NULLS LAST, t.created_at DESC`

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query tasks", err)
		return
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanner.ScanTask(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan task row", err)
			return
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read task rows", err)
		return
	}

	utils.Success(w, tasks)
}

// GetTask récupère une tâche par ID
func GetTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]

	row := database.DB.QueryRow(context.Background(), `
		SELECT `+taskColumns+`
		FROM tasks t
		WHERE t.id = $1 AND t.deleted_at IS NULL`,
		taskID,
	)

	task, err := scanner.ScanTask(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "task not found")
		return
	}

	utils.Success(w, task)
}

// UpdateTask met à jour une tâche (propriétaire uniquement)
func UpdateTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]

	var req TaskRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	row := database.DB.QueryRow(ctx,
		`UPDATE tasks
		 SET subject_id = $1,
			 title = COALESCE(NULLIF($2, ''), title),
			 description = $3,
			 target_amount = GREATEST($4, 1),
			 completed = completed_amount >= GREATEST($4, 1),
			 unit = COALESCE(NULLIF($5, ''), unit),
			 tags = $6,
			 due_date = $7,
			 updated_at = NOW(), updated_by = $8
		 WHERE id = $9 AND user_id = $8 AND deleted_at IS NULL
		 RETURNING `+taskColumnsNoAlias(),
		req.SubjectID, req.Title, req.Description, req.TargetAmount,
		req.Unit, pq.Array(req.Tags), req.DueDate, user.ID, taskID,
	)

	task, err := scanner.ScanTask(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "task not found or not owned by you")
		return
	}

	realtime.Notify("tasks", "update", taskID, user.ID)

	utils.Success(w, task)
}

// IncrementTask fait avancer la progression d'une tâche de façon atomique
func IncrementTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]

	var payload struct {
		Amount int `json:"amount"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Amount < 1 {
		utils.ErrorSimple(w, http.StatusBadRequest, "amount must be at least 1")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	if err := utils.IncrementTaskProgress(ctx, user.ID, taskID, payload.Amount); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not increment task progress", err)
		return
	}

	row := database.DB.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		WHERE t.id = $1 AND t.deleted_at IS NULL`,
		taskID,
	)

	task, err := scanner.ScanTask(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch updated task", err)
		return
	}

	realtime.Notify("tasks", "update", taskID, user.ID)

	utils.Success(w, task)
}

// DeleteTask supprime une tâche (soft delete, propriétaire uniquement)
func DeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	taskID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	res, err := database.DB.Exec(context.Background(),
		`UPDATE tasks SET deleted_at=NOW(), deleted_by=$1
		 WHERE id=$2 AND user_id=$1 AND deleted_at IS NULL`,
		user.ID, taskID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete task", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "task not found or not owned by you")
		return
	}

	realtime.Notify("tasks", "delete", taskID, user.ID)

	utils.Success(w, map[string]bool{"success": true})
}
