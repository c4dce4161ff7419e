package subject

import (
	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
)

// DefaultPalette est la palette cyclique appliquée aux matières racines
// sans couleur personnalisée
var DefaultPalette = []string{
	"#4F86F7", "#F76E64", "#53C571", "#F7B32B",
	"#9B5DE5", "#00BBF9", "#F15BB5", "#8AC926",
}

// FallbackColor est utilisée quand la palette fournie est vide
const FallbackColor = "#9E9E9E"

// MapColors assigne une couleur d'affichage à chaque nœud de la forêt.
// La racine en position i reçoit sa couleur personnalisée si elle en a une,
// sinon palette[i mod len(palette)], sinon fallback si la palette est vide.
// Les enfants héritent de la couleur résolue du parent sauf s'ils portent
// leur propre couleur personnalisée.
//
// Le résultat est déterministe pour un ordre d'entrée donné: réordonner les
// racines change l'assignation de palette, l'appelant doit donc garder un
// ordre stable entre deux rendus.
func MapColors(tree []*model.SubjectNode, palette []string, fallback string) map[string]string {
	colors := make(map[string]string, len(tree))

	for i, root := range tree {
		resolved := fallback
		if len(palette) > 0 {
			resolved = palette[i%len(palette)]
		}
		if root.CustomColor != nil && *root.CustomColor != "" {
			resolved = *root.CustomColor
		}
		colors[root.ID] = resolved

		for _, child := range root.Children {
			childColor := resolved
			if child.CustomColor != nil && *child.CustomColor != "" {
				childColor = *child.CustomColor
			}
			colors[child.ID] = childColor
		}
	}

	return colors
}

// MapColorsFlat applique la même règle de résolution par index plat,
// sans héritage parent/enfant. Utilisée quand la hiérarchie est sans importance.
func MapColorsFlat(subjects []model.Subject, palette []string, fallback string) map[string]string {
	colors := make(map[string]string, len(subjects))

	for i, s := range subjects {
		resolved := fallback
		if len(palette) > 0 {
			resolved = palette[i%len(palette)]
		}
		if s.CustomColor != nil && *s.CustomColor != "" {
			resolved = *s.CustomColor
		}
		colors[s.ID] = resolved
	}

	return colors
}
