package subject

import (
	"testing"

	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func sub(id string, parentID *string) model.Subject {
	return model.Subject{ID: id, Name: "subject-" + id, ParentID: parentID}
}

func countNodes(nodes []*model.SubjectNode) int {
	total := 0
	for _, n := range nodes {
		total += 1 + countNodes(n.Children)
	}
	return total
}

func findNode(nodes []*model.SubjectNode, id string) *model.SubjectNode {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := findNode(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

func TestBuildTreeEmptyInput(t *testing.T) {
	tree := BuildTree(nil)
	if len(tree) != 0 {
		t.Fatalf("expected empty forest, got %d roots", len(tree))
	}
}

func TestBuildTreeNestsChildrenUnderParents(t *testing.T) {
	subjects := []model.Subject{
		sub("math", nil),
		sub("algebra", strPtr("math")),
		sub("geometry", strPtr("math")),
		sub("history", nil),
	}

	tree := BuildTree(subjects)

	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}
	if tree[0].ID != "math" || tree[1].ID != "history" {
		t.Fatalf("roots should follow input order, got %s, %s", tree[0].ID, tree[1].ID)
	}
	if len(tree[0].Children) != 2 {
		t.Fatalf("math should have 2 children, got %d", len(tree[0].Children))
	}
	if tree[0].Children[0].ID != "algebra" || tree[0].Children[1].ID != "geometry" {
		t.Fatalf("children should follow input order")
	}
}

// Chaque matière de l'entrée doit apparaître exactement une fois dans la forêt
func TestBuildTreeCompleteness(t *testing.T) {
	subjects := []model.Subject{
		sub("a", nil),
		sub("b", strPtr("a")),
		sub("c", strPtr("a")),
		sub("d", nil),
		sub("e", strPtr("d")),
		sub("f", strPtr("missing")),
	}

	tree := BuildTree(subjects)

	if got := countNodes(tree); got != len(subjects) {
		t.Fatalf("expected %d nodes in forest, got %d", len(subjects), got)
	}
	for _, s := range subjects {
		if findNode(tree, s.ID) == nil {
			t.Fatalf("subject %s missing from forest", s.ID)
		}
	}
}

func TestBuildTreeAbsentParentBecomesRoot(t *testing.T) {
	subjects := []model.Subject{
		sub("orphan", strPtr("nowhere")),
	}

	tree := BuildTree(subjects)

	if len(tree) != 1 || tree[0].ID != "orphan" {
		t.Fatalf("subject with absent parent should be a root")
	}
}

func TestBuildTreeSelfReferenceDemotedToRoot(t *testing.T) {
	subjects := []model.Subject{
		sub("loop", strPtr("loop")),
		sub("normal", nil),
	}

	tree := BuildTree(subjects)

	if len(tree) != 2 {
		t.Fatalf("expected self-referencing subject demoted to root, got %d roots", len(tree))
	}
	loop := findNode(tree, "loop")
	if loop == nil || len(loop.Children) != 0 {
		t.Fatalf("loop should be an empty root")
	}
}

func TestBuildTreeCycleDemotedToRoot(t *testing.T) {
	subjects := []model.Subject{
		sub("a", strPtr("b")),
		sub("b", strPtr("a")),
	}

	tree := BuildTree(subjects)

	// Les deux nœuds doivent survivre, aucun rattachement circulaire
	if got := countNodes(tree); got != 2 {
		t.Fatalf("expected 2 nodes, got %d", got)
	}
	if len(tree) == 0 {
		t.Fatalf("cycle should produce at least one root")
	}
}
