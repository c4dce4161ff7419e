package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/database"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/middleware"
	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/realtime"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/scanner"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
	"github.com/gorilla/mux"

	"golang.org/x/crypto/bcrypt"
)

// groupColumns inclut le hash de mot de passe: le scanner le convertit en
// flag hasPassword et ne l'expose jamais dans la réponse
const groupColumns = `
	g.id, g.name, g.description, g.code, g.password_hash, g.owner_id,
	(SELECT COUNT(*) FROM group_members gm WHERE gm.group_id = g.id) as member_count,
	g.created_by, g.updated_by, g.created_at, g.updated_at`

func queryGroup(ctx context.Context, where string, args ...interface{}) (*model.Group, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT `+groupColumns+`
		FROM groups g
		WHERE g.deleted_at IS NULL AND `+where,
		args...,
	)
	return scanner.ScanGroup(row)
}

// insertGroupCode tente de générer un code unique. Les collisions sont rares
// avec un alphabet de 31 sur 6 positions, on retente quelques fois.
func insertGroupCode(ctx context.Context, groupID string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 5; attempt++ {
		code := utils.GenerateGroupCode()

		res, err := database.DB.Exec(ctx,
			`UPDATE groups SET code=$1, updated_at=NOW()
			 WHERE id=$2 AND NOT EXISTS (
				SELECT 1 FROM groups WHERE code=$1 AND deleted_at IS NULL AND id <> $2
			 )`,
			code, groupID,
		)
		if err != nil {
			lastErr = err
			continue
		}
		if res.RowsAffected() == 1 {
			return code, nil
		}
	}
	if lastErr == nil {
		lastErr = errors.New("could not allocate a unique group code")
	}
	return "", lastErr
}

// CreateGroup crée un groupe d'étude avec un code de partage, et un mot de
// passe optionnel haché en bcrypt
func CreateGroup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Password    string `json:"password,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Name == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing group name")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	var passwordHash *string
	if payload.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
			return
		}
		h := string(hashed)
		passwordHash = &h
	}

	var groupID string
	err = database.DB.QueryRow(ctx,
		`INSERT INTO groups(name, description, code, password_hash, owner_id,
			created_at, updated_at, created_by)
		 VALUES($1, $2, '', $3, $4, NOW(), NOW(), $4)
		 RETURNING id`,
		payload.Name, payload.Description, passwordHash, user.ID,
	).Scan(&groupID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create group", err)
		return
	}

	if _, err := insertGroupCode(ctx, groupID); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not assign group code", err)
		return
	}

	// Le créateur est membre d'office avec le rôle owner
	_, err = database.DB.Exec(ctx,
		`INSERT INTO group_members(group_id, user_id, role, joined_at)
		 VALUES($1, $2, 'owner', NOW())`,
		groupID, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not add group owner", err)
		return
	}

	group, err := queryGroup(ctx, `g.id = $1`, groupID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch created group", err)
		return
	}

	realtime.Notify("groups", "insert", groupID, user.ID)

	utils.Success(w, group)
}

// GetGroup récupère un groupe par ID
func GetGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	group, err := queryGroup(context.Background(), `g.id = $1`, vars["id"])
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "group not found")
		return
	}

	utils.Success(w, group)
}

// GetGroupByCode récupère un groupe par son code de partage.
// Le code est normalisé: casse et espaces autour sont ignorés.
func GetGroupByCode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	code := utils.NormalizeGroupCode(vars["code"])

	if len(code) != utils.GroupCodeLength {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid group code format")
		return
	}

	group, err := queryGroup(context.Background(), `g.code = $1`, code)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "group not found")
		return
	}

	utils.Success(w, group)
}

// JoinGroup rejoint un groupe par code, avec vérification du mot de passe
// quand le groupe en a un
func JoinGroup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Code     string `json:"code"`
		Password string `json:"password,omitempty"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	code := utils.NormalizeGroupCode(payload.Code)
	if len(code) != utils.GroupCodeLength {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid group code format")
		return
	}

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	var groupID string
	var passwordHash *string
	err = database.DB.QueryRow(ctx,
		`SELECT id, password_hash FROM groups WHERE code=$1 AND deleted_at IS NULL`,
		code,
	).Scan(&groupID, &passwordHash)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "group not found")
		return
	}

	if passwordHash != nil && *passwordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(*passwordHash), []byte(payload.Password)); err != nil {
			utils.ErrorSimple(w, http.StatusUnauthorized, "invalid group password")
			return
		}
	}

	_, err = database.DB.Exec(ctx,
		`INSERT INTO group_members(group_id, user_id, role, joined_at)
		 VALUES($1, $2, 'member', NOW())
		 ON CONFLICT (group_id, user_id) DO NOTHING`,
		groupID, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not join group", err)
		return
	}

	group, err := queryGroup(ctx, `g.id = $1`, groupID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch group", err)
		return
	}

	realtime.Notify("group_members", "insert", groupID, user.ID)

	utils.Success(w, group)
}

// LeaveGroup quitte un groupe. Le propriétaire ne peut pas quitter son
// propre groupe, il doit le supprimer.
func LeaveGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	res, err := database.DB.Exec(ctx,
		`DELETE FROM group_members WHERE group_id=$1 AND user_id=$2 AND role <> 'owner'`,
		groupID, user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not leave group", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "you are not a member, or you own this group")
		return
	}

	realtime.Notify("group_members", "delete", groupID, user.ID)

	utils.Success(w, map[string]bool{"success": true})
}

// DeleteGroup supprime un groupe (soft delete, propriétaire uniquement)
func DeleteGroup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	res, err := database.DB.Exec(context.Background(),
		`UPDATE groups SET deleted_at=NOW(), deleted_by=$1
		 WHERE id=$2 AND owner_id=$1 AND deleted_at IS NULL`,
		user.ID, groupID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete group", err)
		return
	}
	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "group not found or you are not the owner")
		return
	}

	realtime.Notify("groups", "delete", groupID, user.ID)

	utils.Success(w, map[string]bool{"success": true})
}

// GetGroupMembers liste les membres d'un groupe avec leur profil public
func GetGroupMembers(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["id"]

	rows, err := database.DB.Query(context.Background(), `
		SELECT gm.group_id, gm.user_id, u.name, u.avatar, gm.role, gm.joined_at
		FROM group_members gm
		INNER JOIN users u ON u.id = gm.user_id AND u.deleted_at IS NULL
		WHERE gm.group_id = $1
		ORDER BY gm.joined_at`,
		groupID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query group members", err)
		return
	}
	defer rows.Close()

	members := []model.GroupMember{}
	for rows.Next() {
		m, err := scanner.ScanGroupMember(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan member row", err)
			return
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read member rows", err)
		return
	}

	utils.Success(w, members)
}

// GetUserGroups liste les groupes dont l'utilisateur est membre
func GetUserGroups(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	rows, err := database.DB.Query(context.Background(), `
		SELECT `+groupColumns+`
		FROM groups g
		INNER JOIN group_members gm ON gm.group_id = g.id AND gm.user_id = $1
		WHERE g.deleted_at IS NULL
		ORDER BY gm.joined_at DESC`,
		userID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query user groups", err)
		return
	}
	defer rows.Close()

	groups := []model.Group{}
	for rows.Next() {
		g, err := scanner.ScanGroup(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan group row", err)
			return
		}
		groups = append(groups, *g)
	}
	if err := rows.Err(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read group rows", err)
		return
	}

	utils.Success(w, groups)
}

// RegenerateGroupCode remplace le code de partage d'un groupe.
// L'ancien code devient immédiatement invalide.
func RegenerateGroupCode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groupID := vars["id"]

	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "user not found in context", err)
		return
	}

	ctx := context.Background()

	var ownerID string
	err = database.DB.QueryRow(ctx,
		`SELECT owner_id FROM groups WHERE id=$1 AND deleted_at IS NULL`,
		groupID,
	).Scan(&ownerID)
	if err != nil {
		utils.ErrorSimple(w, http.StatusNotFound, "group not found")
		return
	}
	if ownerID != user.ID {
		utils.ErrorSimple(w, http.StatusForbidden, "only the owner can regenerate the code")
		return
	}

	code, err := insertGroupCode(ctx, groupID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not regenerate group code", err)
		return
	}

	realtime.Notify("groups", "update", groupID, user.ID)

	utils.Success(w, map[string]string{"code": code})
}
