package errors

import "errors"

var (
	ErrSessionNotFound = errors.New("session was not found")
	ErrRecordNotFound  = errors.New("record not found")
	ErrInternal        = errors.New("internal error")

	ErrNotYourTurn         = errors.New("not your turn")
	ErrNotStarted          = errors.New("game has not started")
	ErrRoomFull            = errors.New("room is full")
	ErrRoomBusy            = errors.New("room is busy")
	ErrInvalidDeck         = errors.New("invalid deck")
	ErrUnknownCardOrAction = errors.New("unknown card or action")
	ErrCardNotInHand       = errors.New("card is not in hand")
	ErrInsufficientEnergy  = errors.New("insufficient energy")
	ErrOutOfBounds         = errors.New("position out of bounds")
	ErrCellOccupied        = errors.New("cell is occupied")
	ErrZoneBlocked         = errors.New("cell is inside a blocked zone")
	ErrSuicideMove         = errors.New("suicide move")
	ErrCardKindBanned      = errors.New("card kind is banned")
	ErrMagicBanned         = errors.New("magic cards are banned")
	ErrMissingParameters   = errors.New("missing parameters")
	ErrInvalidTargets      = errors.New("invalid targets")
	ErrDrawUnavailable     = errors.New("draw is not available")
	ErrRateLimited         = errors.New("too many actions")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrNotYourTurn, "NOT_YOUR_TURN"},
	{ErrNotStarted, "NOT_STARTED"},
	{ErrRoomFull, "ROOM_FULL"},
	{ErrRoomBusy, "ROOM_BUSY"},
	{ErrInvalidDeck, "INVALID_DECK"},
	{ErrUnknownCardOrAction, "UNKNOWN_CARD_OR_ACTION"},
	{ErrCardNotInHand, "CARD_NOT_IN_HAND"},
	{ErrInsufficientEnergy, "INSUFFICIENT_ENERGY"},
	{ErrOutOfBounds, "OUT_OF_BOUNDS"},
	{ErrCellOccupied, "CELL_OCCUPIED"},
	{ErrZoneBlocked, "ZONE_BLOCKED"},
	{ErrSuicideMove, "SUICIDE_MOVE"},
	{ErrCardKindBanned, "CARD_KIND_BANNED"},
	{ErrMagicBanned, "MAGIC_BANNED"},
	{ErrMissingParameters, "MISSING_PARAMETERS"},
	{ErrInvalidTargets, "INVALID_TARGETS"},
	{ErrDrawUnavailable, "DRAW_UNAVAILABLE"},
	{ErrRateLimited, "RATE_LIMITED"},
	{ErrSessionNotFound, "SESSION_NOT_FOUND"},
	{ErrRecordNotFound, "RECORD_NOT_FOUND"},
}

// Code returns the stable wire code for err. Unclassified errors map to INTERNAL.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "INTERNAL"
}

// IsRejection reports whether err is a rejected player input rather than a server fault.
func IsRejection(err error) bool {
	return Code(err) != "INTERNAL"
}
