package cards

import (
	"fmt"

	"github.com/LanSanter/GO-game-proj/internal/errors"
)

const (
	DeckSize       = 40
	CopyLimit      = 2
	StoneCopyLimit = 20
)

// ValidateDeck checks size, id range and per-card copy limits.
func ValidateDeck(deck []int) error {
	if len(deck) != DeckSize {
		return fmt.Errorf("%w: %d cards, want %d", errors.ErrInvalidDeck, len(deck), DeckSize)
	}
	counts := make(map[int]int, len(deck))
	for _, id := range deck {
		if id < MinID || id > MaxID {
			return fmt.Errorf("%w: card id %d out of range", errors.ErrInvalidDeck, id)
		}
		counts[id]++
		limit := CopyLimit
		if id == StoneID {
			limit = StoneCopyLimit
		}
		if counts[id] > limit {
			return fmt.Errorf("%w: card %d exceeds %d copies", errors.ErrInvalidDeck, id, limit)
		}
	}
	return nil
}

// DefaultDeck is the filler deck for a player who brings none.
func DefaultDeck() []int {
	deck := make([]int, 0, DeckSize)
	for i := 0; i < StoneCopyLimit; i++ {
		deck = append(deck, StoneID)
	}
	for id := 2; len(deck) < DeckSize; id++ {
		deck = append(deck, id)
	}
	return deck
}
