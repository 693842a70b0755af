package cards

import (
	"fmt"

	"github.com/LanSanter/GO-game-proj/internal/errors"
)

type Kind int

const (
	KindShape Kind = iota + 1
	KindFunction
	KindMagic
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindFunction:
		return "function"
	case KindMagic:
		return "magic"
	}
	return "unknown"
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "shape":
		return KindShape, nil
	case "function":
		return KindFunction, nil
	case "magic":
		return KindMagic, nil
	}
	return 0, fmt.Errorf("%w: card kind %q", errors.ErrMissingParameters, s)
}

const (
	MinID = 1
	MaxID = 51

	// StoneID is the basic single stone shape.
	StoneID = 1
)

type Card struct {
	ID   int
	Name string
	Kind Kind
	Cost int
}

func KindOf(id int) Kind {
	switch {
	case id >= 1 && id <= 12:
		return KindShape
	case id >= 13 && id <= 24:
		return KindFunction
	case id >= 25 && id <= MaxID:
		return KindMagic
	}
	return 0
}

var catalog = map[int]Card{}

func register(id int, name string, cost int) {
	catalog[id] = Card{ID: id, Name: name, Kind: KindOf(id), Cost: cost}
}

func init() {
	register(1, "stone", 1)
	register(2, "pair", 2)
	register(3, "tip", 2)
	register(4, "one-space jump", 2)
	register(5, "two-space jump", 2)
	register(6, "knight", 2)
	register(7, "elephant", 2)
	register(8, "l-shape", 4)
	register(9, "lightning", 4)
	register(10, "y-shape", 4)
	register(11, "t-shape", 4)
	register(12, "catapult", 5)

	register(13, "draw two", 1)
	register(14, "energy to cards", 0)
	register(15, "hand reset", 4)
	register(16, "hand split", 4)
	register(17, "recycle", 3)
	register(18, "steal", 5)
	register(19, "peek", 1)
	register(20, "prepared draw", 5)
	register(21, "cycle", 4)
	register(22, "draw three", 4)
	register(23, "hand swap", 3)
	register(24, "stockpile", 2)

	register(25, "swap", 3)
	register(26, "blast", 5)
	register(27, "line clear", 4)
	register(28, "meteor shower", 4)
	register(29, "reversal", 6)
	register(30, "phantom", 3)
	register(31, "silence", 3)
	register(32, "blind", 4)
	register(33, "inspiration", 6)
	register(34, "seek", 4)
	register(35, "snipe", 2)
	register(36, "purge", 6)
	register(37, "barrier", 4)
	register(38, "wall", 4)
	register(39, "fairy", 4)
	register(40, "convert", 3)
	register(41, "brainwash", 6)
	register(42, "guard", 2)
	register(43, "minefield", 3)
	register(44, "mischief", 2)
	register(45, "rollback", 5)
	register(46, "mana spring", 0)
	register(47, "wild mana", 2)
	register(48, "deep pockets", 2)
	register(49, "discount", 1)
	register(50, "embargo", 4)
	register(51, "mirror", 4)
}

// Lookup returns the catalog entry for id.
func Lookup(id int) (Card, error) {
	c, ok := catalog[id]
	if !ok {
		return Card{}, fmt.Errorf("%w: card %d", errors.ErrUnknownCardOrAction, id)
	}
	return c, nil
}
