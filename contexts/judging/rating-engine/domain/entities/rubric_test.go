package entities

import "testing"

func TestRubricSharedAcrossKinds(t *testing.T) {
	video := RubricFor(KindVideo)
	essay := RubricFor(KindEssay)
	if len(video) != 4 || len(essay) != 4 {
		t.Fatalf("expected 4 criteria per kind, got %d and %d", len(video), len(essay))
	}
	for i := range video {
		if video[i] != essay[i] {
			t.Fatalf("criterion %d differs between kinds: %+v vs %+v", i, video[i], essay[i])
		}
	}
	if MaxTotal(KindVideo) != 24 {
		t.Fatalf("expected max total 24, got %d", MaxTotal(KindVideo))
	}
}

func TestRubricCriterionBounds(t *testing.T) {
	want := []Criterion{
		{Name: "informativeness", MaxScore: 7},
		{Name: "uniqueness", MaxScore: 7},
		{Name: "theme_compliance", MaxScore: 5},
		{Name: "regulation_compliance", MaxScore: 5},
	}
	got := RubricFor(KindEssay)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("criterion %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}
