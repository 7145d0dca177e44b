package engine

import (
	"sort"

	"github.com/cargoplan/loadplanner/internal/model"
)

// point is a candidate origin for the next placement.
type point struct {
	X, Y, Z float64
}

// CandidatePoints returns the ordered extreme-point set for the current
// placement list: the origin, plus for every placed box the point to
// its right, the point in front of it, and the point directly above it.
// The result is deduped and sorted ascending by z, then y, then x so the
// lowest-and-leftmost candidates are tried first.
func CandidatePoints(placements []model.Placement, clearance float64) []point {
	seen := map[point]bool{{0, 0, 0}: true}
	pts := []point{{0, 0, 0}}

	for _, p := range placements {
		candidates := [3]point{
			{p.X + p.Length + clearance, p.Y, p.Z},
			{p.X, p.Y + p.Width + clearance, p.Z},
			{p.X, p.Y, p.Top()},
		}
		for _, c := range candidates {
			if !seen[c] {
				seen[c] = true
				pts = append(pts, c)
			}
		}
	}

	sort.Slice(pts, func(i, j int) bool {
		a, b := pts[i], pts[j]
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return pts
}

// ZLadder returns the ascending set of candidate z-levels: the floor
// plus the top face of every existing placement.
func ZLadder(placements []model.Placement) []float64 {
	seen := map[float64]bool{0: true}
	levels := []float64{0}
	for _, p := range placements {
		top := p.Top()
		if !seen[top] {
			seen[top] = true
			levels = append(levels, top)
		}
	}
	sort.Float64s(levels)
	return levels
}
