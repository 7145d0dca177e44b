// Package engine implements the placement core: the geometry kernel,
// candidate-point generation, the constructive placer, and the seeded
// genetic search over item order.
package engine

import "github.com/cargoplan/loadplanner/internal/model"

// Intersects reports whether two axis-aligned boxes overlap once
// inflated by clearance on the horizontal (x/y) plane. Z never gets
// clearance: stacked boxes are legal when their faces exactly touch.
// The six separating-plane tests each allow an Epsilon tolerance, so
// touching faces (on any axis) never count as intersecting.
func Intersects(ax, ay, az, aL, aW, aH, bx, by, bz, bL, bW, bH, clearance float64) bool {
	return !(
		ax+aL+clearance <= bx+model.Epsilon ||
		bx+bL+clearance <= ax+model.Epsilon ||
		ay+aW+clearance <= by+model.Epsilon ||
		by+bW+clearance <= ay+model.Epsilon ||
		az+aH <= bz+model.Epsilon ||
		bz+bH <= az+model.Epsilon)
}

// OverlapArea returns the planar (x/y) intersection area of two
// footprints; 0 if they don't overlap.
func OverlapArea(ax, ay, aL, aW, bx, by, bL, bW float64) float64 {
	ix1 := max(ax, bx)
	iy1 := max(ay, by)
	ix2 := min(ax+aL, bx+bL)
	iy2 := min(ay+aW, by+bW)
	if ix2 <= ix1 || iy2 <= iy1 {
		return 0
	}
	return (ix2 - ix1) * (iy2 - iy1)
}

// Supported reports whether a new footprint at height z is adequately
// held up. At z=0 (the floor) anything is legal. Above the floor, the
// footprint must rest on placements whose top face is at z (within
// Epsilon); their combined overlap area must reach ratio·L·W, and none
// of those supporters may itself be non-stackable with any overlap at
// all (nothing may be loaded above a non-stackable item).
//
// The new item's OWN stackable flag does not gate this check — it only
// controls whether something else may later be placed on top of IT.
// A non-stackable item can sit on z>0 as long as its support is sound.
func Supported(x, y, z, l, w float64, placements []model.Placement, ratio float64) bool {
	if z <= model.Epsilon {
		return true
	}

	need := l * w * ratio
	var supportedArea float64
	for _, p := range placements {
		top := p.Top()
		if abs(top-z) > model.Epsilon {
			continue
		}
		overlap := OverlapArea(x, y, l, w, p.X, p.Y, p.Length, p.Width)
		if overlap <= 0 {
			continue
		}
		if !p.Stackable {
			return false
		}
		supportedArea += overlap
	}
	return supportedArea+1e-9 >= need
}

// Collides reports whether the candidate box intersects any existing
// placement.
func Collides(x, y, z, l, w, h float64, placements []model.Placement, clearance float64) bool {
	for _, p := range placements {
		if Intersects(x, y, z, l, w, h, p.X, p.Y, p.Z, p.Length, p.Width, p.Height, clearance) {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
