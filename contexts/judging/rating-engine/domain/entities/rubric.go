package entities

// Criterion is one scored rubric entry with its maximum point value.
type Criterion struct {
	Name     string
	MaxScore int
}

// SubmissionKind mirrors the submission types the jury scores.
type SubmissionKind string

const (
	KindVideo SubmissionKind = "video"
	KindEssay SubmissionKind = "essay"
)

// The competition rubric. Video and essay entries are scored against
// structurally identical criteria today; keeping a single table behind
// the by-kind lookup guarantees score-count validation stays correct
// if the rubrics ever diverge.
var criteria = []Criterion{
	{Name: "informativeness", MaxScore: 7},
	{Name: "uniqueness", MaxScore: 7},
	{Name: "theme_compliance", MaxScore: 5},
	{Name: "regulation_compliance", MaxScore: 5},
}

var rubricByKind = map[SubmissionKind][]Criterion{
	KindVideo: criteria,
	KindEssay: criteria,
}

// RubricFor returns the ordered criteria for a submission kind.
func RubricFor(kind SubmissionKind) []Criterion {
	if rubric, ok := rubricByKind[kind]; ok {
		return rubric
	}
	return criteria
}

// MaxTotal is the highest total a single rating can reach for a kind.
func MaxTotal(kind SubmissionKind) int {
	total := 0
	for _, criterion := range RubricFor(kind) {
		total += criterion.MaxScore
	}
	return total
}
