package board

import (
	"fmt"

	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/errors"
)

// Board is a square grid indexed as cells[y][x].
type Board struct {
	size  int
	cells [][]game.PlayerID
}

func New(size int) *Board {
	cells := make([][]game.PlayerID, size)
	for y := range cells {
		cells[y] = make([]game.PlayerID, size)
	}
	return &Board{size: size, cells: cells}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) InBounds(p game.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.size && p.Y < b.size
}

// At returns the owner of p, or game.None for empty and out of bounds cells.
func (b *Board) At(p game.Point) game.PlayerID {
	if !b.InBounds(p) {
		return game.None
	}
	return b.cells[p.Y][p.X]
}

func (b *Board) Set(p game.Point, owner game.PlayerID) {
	if b.InBounds(p) {
		b.cells[p.Y][p.X] = owner
	}
}

func (b *Board) Clone() *Board {
	c := New(b.size)
	for y := range b.cells {
		copy(c.cells[y], b.cells[y])
	}
	return c
}

// Grid returns a copy of the cells.
func (b *Board) Grid() [][]game.PlayerID {
	return b.Clone().cells
}

func (b *Board) Equal(o *Board) bool {
	if b.size != o.size {
		return false
	}
	for y := range b.cells {
		for x := range b.cells[y] {
			if b.cells[y][x] != o.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Empty lists empty cells in row-major order.
func (b *Board) Empty() []game.Point {
	return b.collect(func(v game.PlayerID) bool { return v == game.None })
}

// Stones lists cells owned by owner, or every stone when owner is game.None.
func (b *Board) Stones(owner game.PlayerID) []game.Point {
	return b.collect(func(v game.PlayerID) bool {
		if owner == game.None {
			return v != game.None
		}
		return v == owner
	})
}

func (b *Board) collect(match func(game.PlayerID) bool) []game.Point {
	var out []game.Point
	for y := range b.cells {
		for x, v := range b.cells[y] {
			if match(v) {
				out = append(out, game.Point{X: x, Y: y})
			}
		}
	}
	return out
}

var orthogonal = [4]game.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

func (b *Board) Neighbors(p game.Point) []game.Point {
	out := make([]game.Point, 0, 4)
	for _, d := range orthogonal {
		n := game.Point{X: p.X + d.X, Y: p.Y + d.Y}
		if b.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// PlaceStones writes owner to every position. Nothing is written unless all positions
// are in bounds, distinct and empty.
func (b *Board) PlaceStones(positions []game.Point, owner game.PlayerID) ([]game.Point, error) {
	seen := make(map[game.Point]struct{}, len(positions))
	for _, p := range positions {
		if !b.InBounds(p) {
			return nil, fmt.Errorf("%w: (%d,%d)", errors.ErrOutOfBounds, p.X, p.Y)
		}
		if b.cells[p.Y][p.X] != game.None {
			return nil, fmt.Errorf("%w: (%d,%d)", errors.ErrCellOccupied, p.X, p.Y)
		}
		if _, dup := seen[p]; dup {
			return nil, fmt.Errorf("%w: duplicate position (%d,%d)", errors.ErrInvalidTargets, p.X, p.Y)
		}
		seen[p] = struct{}{}
	}
	for _, p := range positions {
		b.cells[p.Y][p.X] = owner
	}
	return append([]game.Point(nil), positions...), nil
}

// GroupAndLiberties walks the 4-connected group at p depth first. The group is
// always enumerated in full; hasLiberty reports whether any member touches an empty cell.
func (b *Board) GroupAndLiberties(p game.Point) (group []game.Point, hasLiberty bool) {
	color := b.At(p)
	if color == game.None {
		return nil, false
	}
	visited := map[game.Point]struct{}{p: {}}
	stack := []game.Point{p}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		group = append(group, cur)
		for _, n := range b.Neighbors(cur) {
			switch b.cells[n.Y][n.X] {
			case game.None:
				hasLiberty = true
			case color:
				if _, ok := visited[n]; !ok {
					visited[n] = struct{}{}
					stack = append(stack, n)
				}
			}
		}
	}
	return group, hasLiberty
}

func (b *Board) RemoveGroup(positions []game.Point) {
	for _, p := range positions {
		b.Set(p, game.None)
	}
}
