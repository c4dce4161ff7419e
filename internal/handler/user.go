package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/database"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/middleware"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/scanner"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/services"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
	"github.com/gorilla/mux"
)

const userProfileColumns = `
	u.id, u.name, u.email, u.avatar, u.level, u.xp, u.weekly_goal, u.provider,
	u.join_date, u.created_at, u.updated_at, u.created_by, u.updated_by`

// GetUser récupère un utilisateur par ID
func GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	ctx := context.Background()

	row := database.DB.QueryRow(ctx, `
		SELECT `+userProfileColumns+`
		FROM users u
		WHERE u.id = $1 AND u.deleted_at IS NULL`,
		userID,
	)

	user, err := scanner.ScanUserProfile(row)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found")
		return
	}

	utils.Success(w, user)
}

// UpdateUser met à jour le profil (mise à jour partielle)
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if !middleware.IsOwner(r, userID) {
		utils.ErrorSimple(w, http.StatusForbidden, "you are not authorized to update this user")
		return
	}

	var updates map[string]interface{}
	if err := utils.DecodeJSON(r, &updates); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()

	// Construction dynamique de la requête UPDATE
	query := "UPDATE users SET updated_at = NOW()"
	args := []interface{}{}
	argCount := 1

	if name, ok := updates["name"]; ok {
		query += ", name = $" + strconv.Itoa(argCount)
		args = append(args, name)
		argCount++
	}

	if weeklyGoal, ok := updates["weeklyGoal"]; ok {
		query += ", weekly_goal = $" + strconv.Itoa(argCount)
		args = append(args, weeklyGoal)
		argCount++
	}

	if level, ok := updates["level"]; ok {
		query += ", level = $" + strconv.Itoa(argCount)
		args = append(args, level)
		argCount++
	}

	if xp, ok := updates["xp"]; ok {
		query += ", xp = $" + strconv.Itoa(argCount)
		args = append(args, xp)
		argCount++
	}

	query += ", updated_by = $" + strconv.Itoa(argCount)
	args = append(args, userID)
	argCount++

	query += " WHERE id = $" + strconv.Itoa(argCount) + " AND deleted_at IS NULL"
	args = append(args, userID)

	if _, err := database.DB.Exec(ctx, query, args...); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update user", err)
		return
	}

	row := database.DB.QueryRow(ctx, `
		SELECT `+userProfileColumns+`
		FROM users u
		WHERE u.id = $1 AND u.deleted_at IS NULL`,
		userID,
	)

	user, err := scanner.ScanUserProfile(row)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch updated user", err)
		return
	}

	utils.Success(w, user)
}

// DeleteUser supprime un utilisateur (soft delete)
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if !middleware.IsOwner(r, userID) {
		utils.ErrorSimple(w, http.StatusForbidden, "you are not authorized to delete this user")
		return
	}

	ctx := context.Background()

	res, err := database.DB.Exec(ctx,
		`UPDATE users SET deleted_at=NOW(), deleted_by=$1 WHERE id=$1 AND deleted_at IS NULL`,
		userID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete user", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "user not found")
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

// Cloudinary est initialisé au démarrage du serveur; nil si la
// configuration Cloudinary est absente
var Cloudinary *services.CloudinaryService

// UploadAvatar upload l'avatar de l'utilisateur vers Cloudinary
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["id"]

	if Cloudinary == nil {
		utils.ErrorSimple(w, http.StatusServiceUnavailable, "avatar storage is not configured")
		return
	}

	if !middleware.IsOwner(r, userID) {
		utils.ErrorSimple(w, http.StatusForbidden, "you are not authorized to update this avatar")
		return
	}

	// 5 MB maximum
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing avatar file")
		return
	}
	defer file.Close()

	ctx := context.Background()

	avatarURL, err := Cloudinary.UploadAvatar(ctx, file, userID, header.Filename)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not upload avatar", err)
		return
	}

	_, err = database.DB.Exec(ctx,
		`UPDATE users SET avatar=$1, updated_at=NOW(), updated_by=$2 WHERE id=$2`,
		avatarURL, userID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not save avatar URL", err)
		return
	}

	utils.Success(w, map[string]string{"avatar": avatarURL})
}
