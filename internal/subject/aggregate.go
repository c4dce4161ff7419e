package subject

import (
	"sort"

	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
)

// BuildAggregates calcule les totaux de temps par matière racine à partir des
// secondes cumulées par matière. Le temps d'une matière racine compte en direct,
// le temps d'un enfant compte en sous-matière de sa racine.
//
// Précondition: l'arbre des matières fait au plus 2 niveaux (racines et enfants
// directs). Une imbrication plus profonde est aplatie en remontant la chaîne de
// parents jusqu'à la racine la plus haute, le temps n'est jamais perdu.
//
// Invariant garanti: TotalSeconds == DirectSeconds + SubtagSeconds pour chaque
// agrégat. Le résultat est trié par TotalSeconds décroissant, tri stable: les
// égalités conservent l'ordre d'apparition des racines dans la liste d'entrée.
func BuildAggregates(subjects []model.Subject, secondsBySubject map[string]int) []model.SubjectAggregate {
	byID := make(map[string]model.Subject, len(subjects))
	for _, s := range subjects {
		if _, ok := byID[s.ID]; !ok {
			byID[s.ID] = s
		}
	}

	type bucket struct {
		agg   *model.SubjectAggregate
		index int
	}
	buckets := make(map[string]*bucket)
	var rootOrder []string

	for _, s := range subjects {
		seconds := secondsBySubject[s.ID]
		if seconds <= 0 {
			continue
		}

		root := rootOf(byID, s)
		b, ok := buckets[root.ID]
		if !ok {
			b = &bucket{
				agg:   &model.SubjectAggregate{SubjectID: root.ID, SubjectName: root.Name},
				index: len(rootOrder),
			}
			buckets[root.ID] = b
			rootOrder = append(rootOrder, root.ID)
		}

		b.agg.TotalSeconds += seconds
		if root.ID == s.ID {
			b.agg.DirectSeconds += seconds
		} else {
			b.agg.SubtagSeconds += seconds
		}
	}

	aggregates := make([]model.SubjectAggregate, 0, len(rootOrder))
	for _, id := range rootOrder {
		aggregates = append(aggregates, *buckets[id].agg)
	}

	sort.SliceStable(aggregates, func(i, j int) bool {
		return aggregates[i].TotalSeconds > aggregates[j].TotalSeconds
	})

	return aggregates
}

// rootOf remonte la chaîne de parents jusqu'à la racine.
// Un parent absent de la liste ou un cycle arrête la remontée
func rootOf(byID map[string]model.Subject, s model.Subject) model.Subject {
	seen := map[string]bool{s.ID: true}
	current := s
	for current.ParentID != nil {
		parent, ok := byID[*current.ParentID]
		if !ok || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		current = parent
	}
	return current
}
