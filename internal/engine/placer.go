package engine

import "github.com/cargoplan/loadplanner/internal/model"

// candidateSolution is a feasible (rotation, position) pair under
// evaluation for the current item.
type candidateSolution struct {
	x, y, z, l, w, h float64
	rotated          bool
	score            float64
}

// Place runs the constructive best-fit placer (component C) over an
// ordered sequence of unit items, returning the resulting placement
// list. Items that cannot be placed are silently dropped — they
// reappear as unplaced in the assembled Result.
func Place(units []model.Item, truck model.TruckSpecs, cfg model.PlannerConfig) []model.Placement {
	placements := make([]model.Placement, 0, len(units))
	var placedWeight float64
	maxHeight := truck.Height * cfg.MaxHeightRatio

	for _, u := range units {
		if placedWeight+u.Weight > truck.MaxWeight {
			continue
		}

		best, ok := findBestPosition(u, placements, truck, cfg, maxHeight)
		if !ok {
			continue
		}

		placements = append(placements, model.Placement{
			ItemID:    u.ID,
			Reference: u.Reference,
			X:         best.x,
			Y:         best.y,
			Z:         best.z,
			Length:    best.l,
			Width:     best.w,
			Height:    best.h,
			Rotated:   best.rotated,
			Weight:    u.Weight,
			Stackable: u.Stackable,
		})
		placedWeight += u.Weight
	}

	return placements
}

// findBestPosition searches every rotation of u across the extreme-point
// candidates, falling back to the coarse grid, and returns the
// lowest-scoring feasible solution.
func findBestPosition(u model.Item, placements []model.Placement, truck model.TruckSpecs, cfg model.PlannerConfig, maxHeight float64) (candidateSolution, bool) {
	var best candidateSolution
	haveBest := false

	considerDims := u.Rotations(cfg.AllowRotation)
	for _, dims := range considerDims {
		l, w, h := dims[0], dims[1], dims[2]
		rotated := l != u.Length || w != u.Width

		if l+cfg.ClearanceCM > truck.Length || w+cfg.ClearanceCM > truck.Width {
			continue
		}
		if h > maxHeight {
			continue
		}

		foundForThisRotation := false
		for _, c := range CandidatePoints(placements, cfg.ClearanceCM) {
			if sol, ok := tryPosition(c.X, c.Y, c.Z, l, w, h, rotated, placements, truck, cfg, maxHeight); ok {
				foundForThisRotation = true
				if !haveBest || sol.score < best.score {
					best, haveBest = sol, true
				}
			}
		}

		if foundForThisRotation {
			continue
		}

		// No extreme-point candidate worked for this rotation: fall back
		// to the coarse grid.
		step := cfg.GridStepCM
		if step < 1 {
			step = 1
		}
		for x := 0.0; x <= truck.Length-l+model.Epsilon; x += float64(step) {
			for y := 0.0; y <= truck.Width-w+model.Epsilon; y += float64(step) {
				for _, z := range ZLadder(placements) {
					if sol, ok := tryPosition(x, y, z, l, w, h, rotated, placements, truck, cfg, maxHeight); ok {
						if !haveBest || sol.score < best.score {
							best, haveBest = sol, true
						}
					}
				}
			}
		}
	}

	return best, haveBest
}

func tryPosition(x, y, z, l, w, h float64, rotated bool, placements []model.Placement, truck model.TruckSpecs, cfg model.PlannerConfig, maxHeight float64) (candidateSolution, bool) {
	if x+l+cfg.ClearanceCM > truck.Length+model.Epsilon {
		return candidateSolution{}, false
	}
	if y+w+cfg.ClearanceCM > truck.Width+model.Epsilon {
		return candidateSolution{}, false
	}
	if z+h > maxHeight+model.Epsilon {
		return candidateSolution{}, false
	}
	if Collides(x, y, z, l, w, h, placements, cfg.ClearanceCM) {
		return candidateSolution{}, false
	}
	if !Supported(x, y, z, l, w, placements, cfg.MinSupportRatio) {
		return candidateSolution{}, false
	}

	return candidateSolution{
		x: x, y: y, z: z, l: l, w: w, h: h, rotated: rotated,
		score: scorePosition(x, y, z, l, w, h, placements),
	}, true
}

// scorePosition implements the spec's floor-first, compactness-seeking
// score: z dominates by 10^6 so a higher candidate is only ever chosen
// when no lower-z feasible one exists; the remaining terms favor
// proximity to the origin and a tight overall bounding box.
func scorePosition(x, y, z, l, w, h float64, placements []model.Placement) float64 {
	if len(placements) == 0 {
		return z*1e6 + x + y
	}

	var maxX, maxY, maxZ float64
	for _, p := range placements {
		if v := p.X + p.Length; v > maxX {
			maxX = v
		}
		if v := p.Y + p.Width; v > maxY {
			maxY = v
		}
		if v := p.Top(); v > maxZ {
			maxZ = v
		}
	}

	newMaxX := max(maxX, x+l)
	newMaxY := max(maxY, y+w)
	newMaxZ := max(maxZ, z+h)

	dist := x + y + z*10.0
	compact := 0.5*newMaxX + 0.5*newMaxY + 2*newMaxZ
	return z*1e6 + dist + compact
}
