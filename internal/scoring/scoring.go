// internal/scoring/scoring.go
package scoring

import (
	"fmt"
	"math"

	"aiready-check/internal/common/errors"
	"aiready-check/pkg/questions"
)

// adoptionIndex is the 0-based position of the adoption axis answer.
const adoptionIndex = questions.AdoptionOrder - 1

// Scored holds every value derived from a completed answer set. It is
// recomputed deterministically and never mutated in place.
type Scored struct {
	Ready        int     `json:"ready_score"`
	Adoption     int     `json:"adoption"`
	ReductionPct float64 `json:"reduction_pct"`
	Phase        Phase   `json:"phase"`
	Hint         string  `json:"hint"`
}

// ComputeReady averages exactly ten answers in [0,100] and rounds half away
// from zero.
func ComputeReady(values []int) (int, error) {
	if len(values) != questions.Count {
		return 0, errors.NewInvalidInputError(
			fmt.Sprintf("expected %d answers, got %d", questions.Count, len(values)))
	}

	sum := 0
	for i, v := range values {
		if v < 0 || v > 100 {
			return 0, errors.NewInvalidInputError(
				fmt.Sprintf("answer %d is out of range: %d", i+1, v))
		}
		sum += v
	}

	return int(math.Round(float64(sum) / float64(questions.Count))), nil
}

// ComputeReduction estimates the simulated share of work time saved, blending
// unexploited readiness with residual optimization of already-adopted
// readiness:
//
//	((1-A)*R*0.9 + A*R*0.3) * 100, R = ready/100, A = adoption/100
//
// The result is rounded to one decimal. Total over [0,100]x[0,100].
func ComputeReduction(ready, adoption int) float64 {
	r := float64(ready) / 100
	a := float64(adoption) / 100
	pct := ((1-a)*r*0.9 + a*r*0.3) * 100
	return math.Round(pct*10) / 10
}

// Score derives the full result set from a completed, ordered answer slice.
// The adoption level is the fourth answer reused as a distinct axis.
func Score(values []int) (Scored, error) {
	ready, err := ComputeReady(values)
	if err != nil {
		return Scored{}, err
	}

	adoption := values[adoptionIndex]

	return Scored{
		Ready:        ready,
		Adoption:     adoption,
		ReductionPct: ComputeReduction(ready, adoption),
		Phase:        PhaseFor(ready),
		Hint:         MatrixHint(ready, adoption),
	}, nil
}

// CategoryScore is the rounded mean of the answered questions in one catalog
// category, in catalog order. Used for the radar view.
type CategoryScore struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// CategoryScores groups answers by question category and averages each group.
// Unanswered questions (nil) are skipped, so partial sets still produce a
// preview.
func CategoryScores(values []*int) []CategoryScore {
	sums := make(map[string]int)
	counts := make(map[string]int)
	var order []string

	for i, q := range questions.All() {
		if i >= len(values) || values[i] == nil {
			continue
		}
		if _, seen := sums[q.Category]; !seen {
			order = append(order, q.Category)
		}
		sums[q.Category] += *values[i]
		counts[q.Category]++
	}

	out := make([]CategoryScore, 0, len(order))
	for _, cat := range order {
		mean := float64(sums[cat]) / float64(counts[cat])
		out = append(out, CategoryScore{
			Category: cat,
			Score:    int(math.Round(mean)),
		})
	}
	return out
}
