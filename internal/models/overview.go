package model

// ProfileOverview est l'instantané composé retourné par l'agrégateur de profil.
// Recalculé à chaque requête, jamais mis en cache.
type ProfileOverview struct {
	Profile    *UserProfile       `json:"profile"` // nul si le profil n'est pas encore provisionné
	Subjects   []Subject          `json:"subjects"`
	Catalog    []Subject          `json:"catalog"`
	Aggregates []SubjectAggregate `json:"aggregates"`
	Totals     SessionTotals      `json:"totals"`
	Rank       string             `json:"rank"` // "#N" ou "-" si hors du classement
}
