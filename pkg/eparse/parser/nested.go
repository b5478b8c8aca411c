package parser

import (
	"github.com/Asipu290/eparse/pkg/eparse/models"
)

// IsInside reports whether the anchor of c lies within b.
func IsInside(c models.Candidate, b models.Bounds) bool {
	return b.Contains(c.Row, c.Col)
}

// FilterNested keeps only top-level candidates. A candidate is dropped when
// its anchor lies inside the bounds of any other candidate with different
// bounds; of candidates with identical bounds the first one is kept.
// Candidates whose anchor no longer resolves against g are dropped.
func FilterNested(cands []models.Candidate, g models.Grid) []models.Candidate {
	bounds := make([]models.Bounds, len(cands))
	valid := make([]bool, len(cands))
	for i, c := range cands {
		b, err := ResolveBounds(g, c.Row, c.Col, Tolerance{})
		bounds[i], valid[i] = b, err == nil
	}

	var out []models.Candidate
	for i, c := range cands {
		if valid[i] && !nestedIn(i, cands, bounds, valid) {
			out = append(out, c)
		}
	}
	return out
}

func nestedIn(i int, cands []models.Candidate, bounds []models.Bounds, valid []bool) bool {
	for j := range cands {
		if j == i || !valid[j] {
			continue
		}
		if bounds[j] == bounds[i] {
			if j < i {
				return true
			}
			continue
		}
		if IsInside(cands[i], bounds[j]) {
			return true
		}
	}
	return false
}
