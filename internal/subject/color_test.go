package subject

import (
	"testing"

	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
)

func TestMapColorsPaletteCycling(t *testing.T) {
	subjects := []model.Subject{
		sub("s0", nil), sub("s1", nil), sub("s2", nil), sub("s3", nil), sub("s4", nil),
	}
	palette := []string{"#111111", "#222222", "#333333"}

	colors := MapColors(BuildTree(subjects), palette, FallbackColor)

	expected := map[string]string{
		"s0": "#111111",
		"s1": "#222222",
		"s2": "#333333",
		"s3": "#111111", // la palette recommence
		"s4": "#222222",
	}
	for id, want := range expected {
		if colors[id] != want {
			t.Fatalf("subject %s: expected %s, got %s", id, want, colors[id])
		}
	}
}

func TestMapColorsChildInheritsParentColor(t *testing.T) {
	subjects := []model.Subject{
		sub("parent", nil),
		sub("child", strPtr("parent")),
	}
	palette := []string{"#abcdef"}

	colors := MapColors(BuildTree(subjects), palette, FallbackColor)

	if colors["child"] != "#abcdef" {
		t.Fatalf("child should inherit parent color, got %s", colors["child"])
	}
}

func TestMapColorsChildOverrideWins(t *testing.T) {
	child := sub("child", strPtr("parent"))
	child.CustomColor = strPtr("#ff0000")
	subjects := []model.Subject{sub("parent", nil), child}
	palette := []string{"#abcdef"}

	colors := MapColors(BuildTree(subjects), palette, FallbackColor)

	if colors["child"] != "#ff0000" {
		t.Fatalf("child override should win over inherited color, got %s", colors["child"])
	}
	if colors["parent"] != "#abcdef" {
		t.Fatalf("parent should keep its palette color, got %s", colors["parent"])
	}
}

func TestMapColorsRootCustomColor(t *testing.T) {
	root := sub("root", nil)
	root.CustomColor = strPtr("#00ff00")

	colors := MapColors(BuildTree([]model.Subject{root}), []string{"#abcdef"}, FallbackColor)

	if colors["root"] != "#00ff00" {
		t.Fatalf("custom color should win over palette, got %s", colors["root"])
	}
}

func TestMapColorsEmptyPaletteUsesFallback(t *testing.T) {
	subjects := []model.Subject{sub("a", nil), sub("b", nil)}

	colors := MapColors(BuildTree(subjects), nil, "#424242")

	if colors["a"] != "#424242" || colors["b"] != "#424242" {
		t.Fatalf("empty palette should resolve to fallback")
	}
}

func TestMapColorsFlatIgnoresHierarchy(t *testing.T) {
	subjects := []model.Subject{
		sub("parent", nil),
		sub("child", strPtr("parent")),
	}
	palette := []string{"#111111", "#222222"}

	colors := MapColorsFlat(subjects, palette, FallbackColor)

	// Pas d'héritage: l'enfant reçoit la couleur de son index plat
	if colors["parent"] != "#111111" || colors["child"] != "#222222" {
		t.Fatalf("flat variant should assign by flat index, got %v", colors)
	}
}

func TestMapColorsFlatCustomColorWins(t *testing.T) {
	s := sub("a", nil)
	s.CustomColor = strPtr("#123456")

	colors := MapColorsFlat([]model.Subject{s}, []string{"#111111"}, FallbackColor)

	if colors["a"] != "#123456" {
		t.Fatalf("custom color should win in flat variant, got %s", colors["a"])
	}
}
