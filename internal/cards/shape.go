package cards

import (
	"fmt"

	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/errors"
)

// transform is a 2x2 integer matrix applied to an offset (dx, dy).
type transform [2][2]int

func (t transform) apply(p game.Point) game.Point {
	return game.Point{
		X: t[0][0]*p.X + t[0][1]*p.Y,
		Y: t[1][0]*p.X + t[1][1]*p.Y,
	}
}

var (
	identity  = transform{{1, 0}, {0, 1}}
	rotate90  = transform{{0, -1}, {1, 0}}
	rotate180 = transform{{-1, 0}, {0, -1}}
	rotate270 = transform{{0, 1}, {-1, 0}}
	mirrorX   = transform{{-1, 0}, {0, 1}}
	mirrorY   = transform{{1, 0}, {0, -1}}
	transpose = transform{{0, 1}, {1, 0}}
	antiDiag  = transform{{0, -1}, {-1, 0}}
	shearUp   = transform{{1, 0}, {1, 1}}
	shearDown = transform{{1, 0}, {-1, 1}}
)

var transforms = map[string]transform{
	"r0":    identity,
	"r90":   rotate90,
	"r180":  rotate180,
	"r270":  rotate270,
	"h":     identity,
	"v":     transpose,
	"diag1": shearUp,
	"diag2": shearDown,
	"ur":    identity,
	"ru":    antiDiag,
	"ul":    mirrorX,
	"lu":    rotate270,
	"dr":    mirrorY,
	"rd":    rotate90,
	"dl":    rotate180,
	"ld":    transpose,
}

var (
	rotations = []string{"r0", "r90", "r180", "r270"}
	lines     = []string{"h", "v"}
	jumps     = []string{"h", "v", "diag1", "diag2"}
	knight    = []string{"ur", "ru", "ul", "lu", "dr", "rd", "dl", "ld"}
)

// ScatterCount is how many stones the scatter shape drops.
const ScatterCount = 5

// Shape is the placement geometry of a shape card.
type Shape struct {
	Offsets      []game.Point
	Orientations []string
	// Gap cells lie between the stones of a jump and must be empty.
	Gap []game.Point
	// Scatter shapes ignore geometry and sample random empty cells.
	Scatter bool
}

// Place returns the board cells covered by the shape at anchor in orientation.
// An empty orientation selects the first declared one.
func (s Shape) Place(anchor game.Point, orientation string) ([]game.Point, error) {
	return s.project(s.Offsets, anchor, orientation)
}

// Between returns the gap cells of the shape at anchor in orientation.
func (s Shape) Between(anchor game.Point, orientation string) ([]game.Point, error) {
	return s.project(s.Gap, anchor, orientation)
}

func (s Shape) project(cells []game.Point, anchor game.Point, orientation string) ([]game.Point, error) {
	if s.Scatter {
		return nil, fmt.Errorf("%w: scatter shape has no geometry", errors.ErrInvalidTargets)
	}
	if orientation == "" {
		orientation = s.Orientations[0]
	}
	if !s.allows(orientation) {
		return nil, fmt.Errorf("%w: orientation %q", errors.ErrMissingParameters, orientation)
	}
	t := transforms[orientation]
	out := make([]game.Point, 0, len(cells))
	for _, off := range cells {
		d := t.apply(off)
		out = append(out, game.Point{X: anchor.X + d.X, Y: anchor.Y + d.Y})
	}
	return out, nil
}

func (s Shape) allows(orientation string) bool {
	for _, o := range s.Orientations {
		if o == orientation {
			return true
		}
	}
	return false
}

func offsets(pairs ...[2]int) []game.Point {
	out := make([]game.Point, len(pairs))
	for i, p := range pairs {
		out[i] = game.Point{X: p[0], Y: p[1]}
	}
	return out
}

var shapes = map[int]Shape{
	1:  {Offsets: offsets([2]int{0, 0}), Orientations: []string{"r0"}},
	2:  {Offsets: offsets([2]int{0, 0}, [2]int{1, 0}), Orientations: lines},
	3:  {Offsets: offsets([2]int{0, 0}, [2]int{1, 1}), Orientations: rotations},
	4:  {Offsets: offsets([2]int{0, 0}, [2]int{2, 0}), Orientations: jumps, Gap: offsets([2]int{1, 0})},
	5:  {Offsets: offsets([2]int{0, 0}, [2]int{3, 0}), Orientations: jumps, Gap: offsets([2]int{1, 0})},
	6:  {Offsets: offsets([2]int{0, 0}, [2]int{1, -2}), Orientations: knight},
	7:  {Offsets: offsets([2]int{0, 0}, [2]int{2, 2}), Orientations: rotations},
	8:  {Offsets: offsets([2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{2, 1}), Orientations: rotations},
	9:  {Offsets: offsets([2]int{0, 0}, [2]int{1, 0}, [2]int{1, 1}, [2]int{2, 1}), Orientations: rotations},
	10: {Offsets: offsets([2]int{-1, -1}, [2]int{1, -1}, [2]int{0, 2}, [2]int{0, 1}), Orientations: rotations},
	11: {Offsets: offsets([2]int{-1, 0}, [2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1}), Orientations: rotations},
	12: {Scatter: true},
}

// ShapeOf returns the geometry of a shape card.
func ShapeOf(id int) (Shape, bool) {
	s, ok := shapes[id]
	return s, ok
}
