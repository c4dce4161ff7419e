package handler

import (
	"context"
	"net/http"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/database"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/middleware"
	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/realtime"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/scanner"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/subject"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
)

// catalogQuery retourne les matières globales et les matières privées de
// l'utilisateur, avec ses préférences d'affichage jointes
const catalogQuery = `
	SELECT
		s.id, s.name, s.parent_id, s.user_id, us.display_order, us.custom_color,
		s.created_by, s.updated_by, s.created_at, s.updated_at
	FROM subjects s
	LEFT JOIN user_subjects us ON us.subject_id = s.id AND us.user_id = $1
	WHERE s.deleted_at IS NULL
		AND (s.user_id IS NULL OR s.user_id = $1)
	ORDER BY s.name`

// visibleQuery retourne les matières que l'utilisateur a ajoutées à sa liste,
// dans son ordre d'affichage
const visibleQuery = `
	SELECT
		s.id, s.name, s.parent_id, s.user_id, us.display_order, us.custom_color,
		s.created_by, s.updated_by, s.created_at, s.updated_at
	FROM user_subjects us
	INNER JOIN subjects s ON s.id = us.subject_id AND s.deleted_at IS NULL
	WHERE us.user_id = $1
	ORDER BY us.display_order, s.name`

func scanSubjects(rows pgx.Rows) ([]model.Subject, error) {
	defer rows.Close()

	subjects := []model.Subject{}
	for rows.Next() {
		s, err := scanner.ScanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, *s)
	}
	return subjects, rows.Err()
}

// GetSubjectCatalog récupère le catalogue complet visible par l'utilisateur
func GetSubjectCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	// Auth optionnelle: sans utilisateur, seules les matières globales sortent
	user, _ := middleware.GetUserFromContext(r)
	var userID *string
	if user.ID != "" {
		userID = &user.ID
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

	utils.Success(w, subjects)
}

// GetUserSubjects récupère la liste de matières visible d'un utilisateur
func GetUserSubjects(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	rows, err := database.DB.Query(context.Background(), visibleQuery, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query user subjects", err)
		return
	}

	subjects, err := scanSubjects(rows)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not scan subject row", err)
		return
	}

	utils.Success(w, subjects)
}

// GetUserSubjectTree retourne la forêt de matières de l'utilisateur avec les
// couleurs résolues par la palette cyclique
func GetUserSubjectTree(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	rows, err := database.DB.Query(context.Background(), visibleQuery, userID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query user subjects", err)
		return
	}

	subjects, err := scanSubjects(rows)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not scan subject row", err)
		return
	}

	tree := subject.BuildTree(subjects)
	colors := subject.MapColors(tree, subject.DefaultPalette, subject.FallbackColor)

	utils.Success(w, map[string]interface{}{
		"tree":   tree,
		"colors": colors,
	})
}

// CreateSubject crée une matière privée de l'utilisateur
func CreateSubject(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string  `json:"name"`
		ParentID *string `json:"parentId,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Name == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing subject name")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	var s model.Subject
	err = database.DB.QueryRow(ctx,
		`INSERT INTO subjects(name, parent_id, user_id, created_at, updated_at, created_by)
		 VALUES($1, $2, $3, NOW(), NOW(), $3)
		 RETURNING id, name, created_at, updated_at`,
		payload.Name, payload.ParentID, user.ID,
	).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create subject", err)
		return
	}

	s.ParentID = payload.ParentID
	s.UserID = &user.ID

	realtime.Notify("subjects", "insert", s.ID, user.ID)

	utils.Success(w, s)
}

// UpdateSubject renomme ou déplace une matière privée
func UpdateSubject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subjectID := vars["id"]

	var payload struct {
		Name     *string `json:"name,omitempty"`
		ParentID *string `json:"parentId,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	res, err := database.DB.Exec(ctx,
		`UPDATE subjects
		 SET name = COALESCE($1, name), parent_id = $2, updated_at = NOW(), updated_by = $3
		 WHERE id = $4 AND user_id = $3 AND deleted_at IS NULL`,
		payload.Name, payload.ParentID, user.ID, subjectID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update subject", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "subject not found or not owned by you")
		return
	}

	realtime.Notify("subjects", "update", subjectID, user.ID)

	utils.Success(w, map[string]bool{"success": true})
}

// DeleteSubject supprime une matière privée (soft delete)
func DeleteSubject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subjectID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	res, err := database.DB.Exec(ctx,
		`UPDATE subjects SET deleted_at=NOW(), deleted_by=$1
		 WHERE id=$2 AND user_id=$1 AND deleted_at IS NULL`,
		user.ID, subjectID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete subject", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "subject not found or not owned by you")
		return
	}

	realtime.Notify("subjects", "delete", subjectID, user.ID)

	utils.Success(w, map[string]bool{"success": true})
}

// UpsertUserSubject ajoute une matière à la liste visible de l'utilisateur
// ou met à jour ses préférences d'affichage (upsert sur la clé de conflit)
func UpsertUserSubject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subjectID := vars["subjectId"]

	var payload struct {
		DisplayOrder int     `json:"displayOrder"`
		CustomColor  *string `json:"customColor,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	_, err = database.DB.Exec(ctx,
		`INSERT INTO user_subjects(user_id, subject_id, display_order, custom_color, created_at)
		 VALUES($1, $2, $3, $4, NOW())
		 ON CONFLICT (user_id, subject_id)
		 DO UPDATE SET display_order = $3, custom_color = $4`,
		user.ID, subjectID, payload.DisplayOrder, payload.CustomColor,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save user subject", err)
		return
	}

	realtime.Notify("user_subjects", "update", subjectID, user.ID)

	utils.Success(w, map[string]bool{"success": true})
}

// RemoveUserSubject retire une matière de la liste visible de l'utilisateur
func RemoveUserSubject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	subjectID := vars["subjectId"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	res, err := database.DB.Exec(ctx,
		`DELETE FROM user_subjects WHERE user_id=$1 AND subject_id=$2`,
		user.ID, subjectID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not remove user subject", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "subject is not in your list")
		return
	}

	realtime.Notify("user_subjects", "delete", subjectID, user.ID)

	utils.Success(w, map[string]bool{"success": true})
}
