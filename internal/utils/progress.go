package utils

import (
	"context"
	"fmt"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/database"
)

// IncrementTaskProgress incrémente l'avancement d'une tâche.
// Tentative atomique côté serveur d'abord; en cas d'échec, repli sur un
// lire-puis-écrire compensatoire. Le repli peut perdre une mise à jour sous
// deux enregistrements concurrents pour la même tâche: fenêtre d'incohérence
// acceptée, l'avancement est à terme cohérent avec les sessions.
func IncrementTaskProgress(ctx context.Context, userID, taskID string, amount int) error {
	_, err := database.DB.Exec(ctx,
		`UPDATE tasks
		 SET completed_amount = completed_amount + $1,
		     completed = completed_amount + $1 >= target_amount,
		     updated_at = NOW()
		 WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL`,
		amount, taskID, userID,
	)
	if err == nil {
		return nil
	}

	LogError("atomic task progress update failed for task %s, falling back: %v", taskID, err)

	// Repli: lire l'avancement courant puis réécrire
	var completedAmount, targetAmount int
	err = database.DB.QueryRow(ctx,
		`SELECT completed_amount, target_amount FROM tasks
		 WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`,
		taskID, userID,
	).Scan(&completedAmount, &targetAmount)
	if err != nil {
		return fmt.Errorf("task progress fallback read failed: %w", err)
	}

	newAmount := completedAmount + amount
	_, err = database.DB.Exec(ctx,
		`UPDATE tasks
		 SET completed_amount = $1, completed = $2, updated_at = NOW()
		 WHERE id = $3 AND user_id = $4 AND deleted_at IS NULL`,
		newAmount, newAmount >= targetAmount, taskID, userID,
	)
	if err != nil {
		return fmt.Errorf("task progress fallback write failed: %w", err)
	}

	return nil
}
