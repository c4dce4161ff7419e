package subject

import (
	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
)

// BuildTree convertit une liste plate de matières en forêt parent → enfants.
// Premier passage: un nœud par matière dans une table id → nœud. Deuxième passage:
// chaque nœud dont le parent est présent dans la table est rattaché à celui-ci,
// sinon il devient racine. L'ordre d'insertion suit l'ordre d'itération de l'entrée,
// aucun tri n'est effectué ici.
//
// Une matière qui se référence elle-même (ou dont la chaîne de parents boucle)
// est rétrogradée en racine avec un avertissement plutôt que de créer un cycle.
func BuildTree(subjects []model.Subject) []*model.SubjectNode {
	nodes := make(map[string]*model.SubjectNode, len(subjects))
	order := make([]*model.SubjectNode, 0, len(subjects))

	for _, s := range subjects {
		node := &model.SubjectNode{Subject: s, Children: []*model.SubjectNode{}}
		nodes[s.ID] = node
		order = append(order, node)
	}

	var roots []*model.SubjectNode
	for _, node := range order {
		// La table peut avoir écrasé ce nœud si l'entrée contenait un id dupliqué
		if nodes[node.ID] != node {
			continue
		}

		if node.ParentID == nil {
			roots = append(roots, node)
			continue
		}

		parent, ok := nodes[*node.ParentID]
		if !ok {
			// Parent absent de la liste fournie => racine
			roots = append(roots, node)
			continue
		}

		if createsCycle(nodes, node) {
			utils.LogInfo("subject %s has a cyclic parent chain, demoting to root", node.ID)
			roots = append(roots, node)
			continue
		}

		parent.Children = append(parent.Children, node)
	}

	if roots == nil {
		roots = []*model.SubjectNode{}
	}
	return roots
}

// createsCycle vérifie si rattacher node à son parent refermerait un cycle,
// en remontant la chaîne des parents déclarés
func createsCycle(nodes map[string]*model.SubjectNode, node *model.SubjectNode) bool {
	seen := map[string]bool{node.ID: true}
	current := node.ParentID
	for current != nil {
		if seen[*current] {
			return true
		}
		seen[*current] = true
		parent, ok := nodes[*current]
		if !ok {
			return false
		}
		current = parent.ParentID
	}
	return false
}
