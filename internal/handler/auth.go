package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/database"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/middleware"
	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
	"github.com/google/uuid"

	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()
	var user model.UserProfile
	var hashedPassword string

	err := database.DB.QueryRow(ctx,
		`SELECT id, name, email, COALESCE(avatar,'') as avatar, COALESCE(level,1) as level,
		 COALESCE(xp,0) as xp, COALESCE(weekly_goal,0) as weekly_goal,
		 join_date, created_at, updated_at, password_hash
		 FROM users WHERE email=$1 AND deleted_at IS NULL`,
		req.Email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.Avatar, &user.Level, &user.XP,
		&user.WeeklyGoal, &user.JoinDate, &user.CreatedAt, &user.UpdatedAt, &hashedPassword)

	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing token")
		return
	}

	if err := utils.InvalidateSession(context.Background(), token); err != nil {
		utils.Error(w, http.StatusNotFound, "session not found or already logged out", err)
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

// Register (alias de Signup pour correspondre à l'API mobile)
func Register(w http.ResponseWriter, r *http.Request) {
	Signup(w, r)
}

func Signup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()
	hashed, _ := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)

	var user model.UserProfile
	err := database.DB.QueryRow(ctx,
		`INSERT INTO users(name,email,password_hash,avatar,level,xp,weekly_goal,join_date,created_at,updated_at)
		 VALUES($1,$2,$3,'',1,0,0,NOW(),NOW(),NOW())
		 RETURNING id, name, email, avatar, level, xp, weekly_goal, join_date, created_at, updated_at`,
		payload.Name, payload.Email, string(hashed),
	).Scan(&user.ID, &user.Name, &user.Email, &user.Avatar,
		&user.Level, &user.XP, &user.WeeklyGoal,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create user", err)
		return
	}

	// Lors du signup, l'utilisateur se crée lui-même
	_, err = database.DB.Exec(ctx,
		`UPDATE users SET created_by=$1 WHERE id=$1`,
		user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update created_by", err)
		return
	}

	// Avatar par défaut, non bloquant en cas d'échec
	if avatarURL, err := utils.GenerateDefaultAvatar(user.ID, user.Name); err == nil {
		if _, err := database.DB.Exec(ctx, `UPDATE users SET avatar=$1 WHERE id=$2`, avatarURL, user.ID); err == nil {
			user.Avatar = avatarURL
		}
	}

	// Créer un token pour l'auto-login après inscription
	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

// ExchangeCode échange un code à usage unique contre une session.
// Le code est consommé au premier usage, qu'il soit expiré ou non.
func ExchangeCode(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Code string `json:"code"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Code == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing code")
		return
	}

	ctx := context.Background()

	var userID string
	var expiresAt time.Time
	err := database.DB.QueryRow(ctx,
		`UPDATE login_codes SET used_at=NOW()
		 WHERE code=$1 AND used_at IS NULL
		 RETURNING user_id, expires_at`,
		payload.Code,
	).Scan(&userID, &expiresAt)

	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid or already used code")
		return
	}

	if time.Now().After(expiresAt) {
		utils.ErrorSimple(w, http.StatusUnauthorized, "code expired")
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, userID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]string{"token": token})
}

// ResetPassword envoie un email de réinitialisation de mot de passe
func ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()

	var userID string
	err := database.DB.QueryRow(ctx,
		`SELECT id FROM users WHERE email=$1 AND deleted_at IS NULL`,
		payload.Email,
	).Scan(&userID)

	if err != nil {
		// Pour la sécurité, on ne révèle pas si l'email existe ou non
		utils.Success(w, map[string]bool{"success": true})
		return
	}

	// Code à usage unique, valable 1h, consommé via /auth/exchange
	code := uuid.NewString()
	_, err = database.DB.Exec(ctx,
		`INSERT INTO login_codes(code, user_id, created_at, expires_at)
		 VALUES($1, $2, NOW(), $3)`,
		code, userID, time.Now().Add(time.Hour),
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create reset code", err)
		return
	}

	// TODO: brancher l'envoi d'email quand le service SMTP sera choisi
	utils.LogInfo("password reset code created for user %s", userID)

	utils.Success(w, map[string]bool{"success": true})
}

// VerifyEmail vérifie l'email d'un utilisateur à partir du code reçu
func VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Code string `json:"code"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()

	var userID string
	err := database.DB.QueryRow(ctx,
		`UPDATE login_codes SET used_at=NOW()
		 WHERE code=$1 AND used_at IS NULL AND expires_at > NOW()
		 RETURNING user_id`,
		payload.Code,
	).Scan(&userID)

	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid or expired code")
		return
	}

	_, err = database.DB.Exec(ctx,
		`UPDATE users SET email_verified_at=NOW(), updated_at=NOW() WHERE id=$1`,
		userID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not verify email", err)
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

// UpdatePassword change le mot de passe de l'utilisateur authentifié
func UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
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

	if len(payload.NewPassword) < 8 {
		utils.ErrorSimple(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	ctx := context.Background()

	var currentHash string
	err = database.DB.QueryRow(ctx,
		`SELECT password_hash FROM users WHERE id=$1 AND deleted_at IS NULL`,
		user.ID,
	).Scan(&currentHash)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(payload.CurrentPassword)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid current password")
		return
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	_, err = database.DB.Exec(ctx,
		`UPDATE users SET password_hash=$1, updated_at=NOW(), updated_by=$2 WHERE id=$2`,
		string(hashed), user.ID,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update password", err)
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}
