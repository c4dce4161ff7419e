package handler

import (
	"net/http"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "StudyFlow API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
				{"method": "POST", "path": "/auth/signup", "description": "Inscription utilisateur"},
				{"method": "POST", "path": "/auth/register", "description": "Inscription utilisateur (alias)"},
				{"method": "POST", "path": "/auth/exchange", "description": "Échanger un code à usage unique contre une session"},
				{"method": "POST", "path": "/auth/reset-password", "description": "Réinitialiser le mot de passe"},
				{"method": "POST", "path": "/auth/verify-email", "description": "Vérifier l'email"},
				{"method": "PUT", "path": "/auth/password", "description": "Changer le mot de passe"},
			},
			"users": []map[string]string{
				{"method": "GET", "path": "/users/{id}", "description": "Récupérer un utilisateur par ID"},
				{"method": "PATCH", "path": "/users/{id}", "description": "Mettre à jour un utilisateur"},
				{"method": "DELETE", "path": "/users/{id}", "description": "Supprimer un utilisateur (soft delete)"},
				{"method": "POST", "path": "/users/{id}/avatar", "description": "Upload avatar utilisateur"},
				{"method": "GET", "path": "/users/{userId}/overview", "description": "Instantané complet du profil (params: period)"},
				{"method": "GET", "path": "/users/{userId}/subjects", "description": "Matières visibles d'un utilisateur"},
				{"method": "GET", "path": "/users/{userId}/subjects/tree", "description": "Forêt de matières avec couleurs"},
				{"method": "GET", "path": "/users/{userId}/sessions", "description": "Sessions d'étude (params: limit, offset, subjectId)"},
				{"method": "GET", "path": "/users/{userId}/sessions/stats", "description": "Totaux et répartition par matière"},
				{"method": "GET", "path": "/users/{userId}/tasks", "description": "Tâches d'un utilisateur (params: subjectId)"},
				{"method": "GET", "path": "/users/{userId}/groups", "description": "Groupes d'un utilisateur"},
			},
			"subjects": []map[string]string{
				{"method": "GET", "path": "/subjects", "description": "Catalogue des matières"},
				{"method": "POST", "path": "/subjects", "description": "Créer une matière privée"},
				{"method": "PATCH", "path": "/subjects/{id}", "description": "Renommer ou déplacer une matière"},
				{"method": "DELETE", "path": "/subjects/{id}", "description": "Supprimer une matière (soft delete)"},
				{"method": "PUT", "path": "/me/subjects/{subjectId}", "description": "Ajouter/configurer une matière visible"},
				{"method": "DELETE", "path": "/me/subjects/{subjectId}", "description": "Retirer une matière visible"},
			},
			"sessions": []map[string]string{
				{"method": "POST", "path": "/sessions", "description": "Enregistrer une session d'étude"},
				{"method": "GET", "path": "/sessions/{id}", "description": "Récupérer une session par ID"},
				{"method": "DELETE", "path": "/sessions/{id}", "description": "Supprimer une session"},
			},
			"timer": []map[string]string{
				{"method": "POST", "path": "/timer/start", "description": "Démarrer le chronomètre"},
				{"method": "POST", "path": "/timer/stop", "description": "Arrêter le chronomètre et enregistrer la session"},
				{"method": "POST", "path": "/timer/reset", "description": "Remettre le chronomètre à zéro"},
				{"method": "GET", "path": "/timer", "description": "État courant du chronomètre"},
			},
			"tasks": []map[string]string{
				{"method": "POST", "path": "/tasks", "description": "Créer une tâche"},
				{"method": "GET", "path": "/tasks/{id}", "description": "Récupérer une tâche par ID"},
				{"method": "PUT", "path": "/tasks/{id}", "description": "Mettre à jour une tâche"},
				{"method": "POST", "path": "/tasks/{id}/increment", "description": "Faire avancer la progression"},
				{"method": "DELETE", "path": "/tasks/{id}", "description": "Supprimer une tâche (soft delete)"},
			},
			"groups": []map[string]string{
				{"method": "POST", "path": "/groups", "description": "Créer un groupe d'étude"},
				{"method": "GET", "path": "/groups/{id}", "description": "Récupérer un groupe par ID"},
				{"method": "GET", "path": "/groups/code/{code}", "description": "Récupérer un groupe par code de partage"},
				{"method": "POST", "path": "/groups/join", "description": "Rejoindre un groupe par code"},
				{"method": "POST", "path": "/groups/{id}/leave", "description": "Quitter un groupe"},
				{"method": "DELETE", "path": "/groups/{id}", "description": "Supprimer un groupe"},
				{"method": "GET", "path": "/groups/{id}/members", "description": "Membres d'un groupe"},
				{"method": "POST", "path": "/groups/{id}/code", "description": "Régénérer le code de partage"},
				{"method": "GET", "path": "/groups/{id}/leaderboard", "description": "Classement d'un groupe (params: period)"},
			},
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Classement général (params: period, limit)"},
				{"method": "GET", "path": "/leaderboard/users/{userId}", "description": "Rang d'un utilisateur (params: period)"},
			},
			"realtime": []map[string]string{
				{"method": "GET", "path": "/realtime", "description": "Websocket de changements (params: collection, userId)"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour StudyFlow - Application de suivi du temps d'étude",
			"contact":     "support@studyflow.app",
		},
	}

	utils.Success(w, routes)
}
