package api

import (
	"net/http"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/handler"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/middleware"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/realtime"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup", handler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/exchange", handler.ExchangeCode).Methods(http.MethodPost)
	r.HandleFunc("/auth/reset-password", handler.ResetPassword).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify-email", handler.VerifyEmail).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/password", handler.UpdatePassword).Methods(http.MethodPut)

	// Users
	r.HandleFunc("/users/{id}", handler.GetUser).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/users/{id}", handler.UpdateUser).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/users/{id}", handler.DeleteUser).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/users/{id}/avatar", handler.UploadAvatar).Methods(http.MethodPost)

	// Profile overview (instantané composé)
	authenticatedRoutes.HandleFunc("/users/{userId}/overview", handler.GetProfileOverview).Methods(http.MethodGet)

	// Subjects
	r.HandleFunc("/subjects", handler.GetSubjectCatalog).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/subjects", handler.CreateSubject).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/subjects/{id}", handler.UpdateSubject).Methods(http.MethodPatch, http.MethodPut)
	authenticatedRoutes.HandleFunc("/subjects/{id}", handler.DeleteSubject).Methods(http.MethodDelete)

	// User subjects (liste visible et préférences)
	r.HandleFunc("/users/{userId}/subjects", handler.GetUserSubjects).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/subjects/tree", handler.GetUserSubjectTree).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/me/subjects/{subjectId}", handler.UpsertUserSubject).Methods(http.MethodPut)
	authenticatedRoutes.HandleFunc("/me/subjects/{subjectId}", handler.RemoveUserSubject).Methods(http.MethodDelete)

	// Study sessions
	authenticatedRoutes.HandleFunc("/sessions", handler.SaveSession).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}", handler.GetSession).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/sessions/{id}", handler.DeleteSession).Methods(http.MethodDelete)
	r.HandleFunc("/users/{userId}/sessions", handler.GetUserSessions).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/sessions/stats", handler.GetUserStats).Methods(http.MethodGet)

	// Timer (chronomètre serveur)
	authenticatedRoutes.HandleFunc("/timer", handler.GetTimerState).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/timer/state", handler.GetTimerState).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/timer/start", handler.StartTimer).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/timer/stop", handler.StopTimer).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/timer/reset", handler.ResetTimer).Methods(http.MethodPost)

	// Tasks
	authenticatedRoutes.HandleFunc("/tasks", handler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}", handler.GetTask).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/tasks/{id}", handler.UpdateTask).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/tasks/{id}/increment", handler.IncrementTask).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/tasks/{id}", handler.DeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/users/{userId}/tasks", handler.GetUserTasks).Methods(http.MethodGet)

	// Study groups
	authenticatedRoutes.HandleFunc("/groups", handler.CreateGroup).Methods(http.MethodPost)
	r.HandleFunc("/groups/code/{code}", handler.GetGroupByCode).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/groups/join", handler.JoinGroup).Methods(http.MethodPost)
	r.HandleFunc("/groups/{id}", handler.GetGroup).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/groups/{id}", handler.DeleteGroup).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/groups/{id}/leave", handler.LeaveGroup).Methods(http.MethodPost)
	r.HandleFunc("/groups/{id}/members", handler.GetGroupMembers).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/groups/{id}/code", handler.RegenerateGroupCode).Methods(http.MethodPost)
	r.HandleFunc("/groups/{id}/leaderboard", handler.GetGroupLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/groups", handler.GetUserGroups).Methods(http.MethodGet)

	// Leaderboard
	r.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/users/{userId}", handler.GetUserRank).Methods(http.MethodGet)

	// Realtime (websocket de changements)
	r.HandleFunc("/realtime", realtime.DefaultHub.Subscribe).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
