package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/MassBabyGeek/StudyFlow-backend/internal/database"
	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/scanner"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/subject"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"golang.org/x/sync/errgroup"
)

// GetProfileOverview compose l'instantané complet du profil en six lectures
// concurrentes: profil, matières visibles, catalogue, secondes par matière,
// totaux de sessions et fenêtre de classement. La première erreur annule
// les lectures restantes via le contexte du groupe.
func GetProfileOverview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	g, ctx := errgroup.WithContext(context.Background())

	var (
		profile          *model.UserProfile
		visible, catalog []model.Subject
		secondsBySubject map[string]int
		totals           model.SessionTotals
		leaderboard      []model.LeaderboardEntry
	)

	g.Go(func() error {
		row := database.DB.QueryRow(ctx, `
			SELECT `+userProfileColumns+`
			FROM users u
			WHERE u.id = $1 AND u.deleted_at IS NULL`,
			userID,
		)
		p, err := scanner.ScanUserProfile(row)
		if errors.Is(err, pgx.ErrNoRows) {
			// Profil pas encore provisionné: l'instantané sort quand même,
			// avec un profil nul
			return nil
		}
		if err != nil {
			return err
		}
		profile = p
		return nil
	})

	g.Go(func() error {
		rows, err := database.DB.Query(ctx, visibleQuery, userID)
		if err != nil {
			return err
		}
		visible, err = scanSubjects(rows)
		return err
	})

	g.Go(func() error {
		rows, err := database.DB.Query(ctx, catalogQuery, userID)
		if err != nil {
			return err
		}
		catalog, err = scanSubjects(rows)
		return err
	})

	g.Go(func() error {
		var err error
		secondsBySubject, err = fetchSubjectSeconds(ctx, userID)
		return err
	})

	g.Go(func() error {
		var err error
		totals, err = fetchSessionTotals(ctx, userID)
		return err
	})

	// La fenêtre de classement est hebdomadaire par défaut
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}

	g.Go(func() error {
		var err error
		leaderboard, err = fetchLeaderboard(ctx, period, DefaultLeaderboardSize)
		return err
	})

	if err := g.Wait(); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not build profile overview", err)
		return
	}

	overview := model.ProfileOverview{
		Profile:    profile,
		Subjects:   visible,
		Catalog:    catalog,
		Aggregates: subject.BuildAggregates(catalog, secondsBySubject),
		Totals:     totals,
		Rank:       rankLabel(leaderboard, userID),
	}

	utils.Success(w, overview)
}
