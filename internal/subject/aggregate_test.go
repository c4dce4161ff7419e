package subject

import (
	"testing"

	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
)

func TestBuildAggregatesDirectAndSubtagSplit(t *testing.T) {
	subjects := []model.Subject{
		sub("math", nil),
		sub("algebra", strPtr("math")),
		sub("geometry", strPtr("math")),
	}
	seconds := map[string]int{
		"math":     600,
		"algebra":  300,
		"geometry": 100,
	}

	aggregates := BuildAggregates(subjects, seconds)

	if len(aggregates) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(aggregates))
	}
	agg := aggregates[0]
	if agg.SubjectID != "math" || agg.SubjectName != "subject-math" {
		t.Fatalf("aggregate should carry the root subject, got %s", agg.SubjectID)
	}
	if agg.DirectSeconds != 600 || agg.SubtagSeconds != 400 || agg.TotalSeconds != 1000 {
		t.Fatalf("bad split: direct=%d subtag=%d total=%d", agg.DirectSeconds, agg.SubtagSeconds, agg.TotalSeconds)
	}
}

// TotalSeconds == DirectSeconds + SubtagSeconds pour chaque agrégat
func TestBuildAggregatesInvariant(t *testing.T) {
	subjects := []model.Subject{
		sub("a", nil), sub("a1", strPtr("a")), sub("a2", strPtr("a")),
		sub("b", nil), sub("b1", strPtr("b")),
		sub("c", nil),
	}
	seconds := map[string]int{
		"a": 120, "a1": 60, "a2": 30,
		"b1": 500,
		"c": 42,
	}

	for _, agg := range BuildAggregates(subjects, seconds) {
		if agg.TotalSeconds != agg.DirectSeconds+agg.SubtagSeconds {
			t.Fatalf("invariant broken for %s: %d != %d + %d",
				agg.SubjectID, agg.TotalSeconds, agg.DirectSeconds, agg.SubtagSeconds)
		}
	}
}

func TestBuildAggregatesSortedDescendingStable(t *testing.T) {
	subjects := []model.Subject{
		sub("first", nil),
		sub("second", nil),
		sub("third", nil),
		sub("fourth", nil),
	}
	// first et third à égalité: first doit rester devant (tri stable)
	seconds := map[string]int{
		"first":  100,
		"second": 500,
		"third":  100,
		"fourth": 200,
	}

	aggregates := BuildAggregates(subjects, seconds)

	if len(aggregates) != 4 {
		t.Fatalf("expected 4 aggregates, got %d", len(aggregates))
	}
	for i := 1; i < len(aggregates); i++ {
		if aggregates[i].TotalSeconds > aggregates[i-1].TotalSeconds {
			t.Fatalf("aggregates not sorted descending at index %d", i)
		}
	}
	if aggregates[0].SubjectID != "second" || aggregates[1].SubjectID != "fourth" {
		t.Fatalf("bad order: %s, %s", aggregates[0].SubjectID, aggregates[1].SubjectID)
	}
	if aggregates[2].SubjectID != "first" || aggregates[3].SubjectID != "third" {
		t.Fatalf("equal totals should keep input order, got %s before %s",
			aggregates[2].SubjectID, aggregates[3].SubjectID)
	}
}

func TestBuildAggregatesRootWithoutTimeIsOmitted(t *testing.T) {
	subjects := []model.Subject{
		sub("studied", nil),
		sub("untouched", nil),
	}
	seconds := map[string]int{"studied": 60}

	aggregates := BuildAggregates(subjects, seconds)

	if len(aggregates) != 1 || aggregates[0].SubjectID != "studied" {
		t.Fatalf("roots without recorded time should not produce aggregates")
	}
}

func TestBuildAggregatesFlattensDeepNesting(t *testing.T) {
	// Un petit-enfant est replié sur sa racine la plus haute
	subjects := []model.Subject{
		sub("root", nil),
		sub("child", strPtr("root")),
		sub("grandchild", strPtr("child")),
	}
	seconds := map[string]int{"grandchild": 90}

	aggregates := BuildAggregates(subjects, seconds)

	if len(aggregates) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(aggregates))
	}
	if aggregates[0].SubjectID != "root" || aggregates[0].SubtagSeconds != 90 {
		t.Fatalf("grandchild time should roll up to root, got %+v", aggregates[0])
	}
}
