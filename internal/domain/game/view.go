package game

// StateView is the per-player redacted snapshot of a room.
type StateView struct {
	You       PlayerID           `json:"you"`
	Turn      PlayerID           `json:"turn"`
	TurnCount int                `json:"turnCount"`
	Board     [][]PlayerID       `json:"board"`
	Hands     HandsView          `json:"hands"`
	Energy    map[PlayerID]int   `json:"energy"`
	EnergyCap map[PlayerID]int   `json:"energyCap"`
	Grave     map[PlayerID][]int `json:"grave"`
	DeckCount map[PlayerID]int   `json:"deckCount"`
	Plays     map[PlayerID]int   `json:"plays"`
	Effects   EffectsView        `json:"effects"`
}

type HandsView struct {
	Self          []int `json:"self"`
	OpponentCount int   `json:"opponentCount"`
}

type ZoneView struct {
	MinX        int      `json:"minX"`
	MinY        int      `json:"minY"`
	MaxX        int      `json:"maxX"`
	MaxY        int      `json:"maxY"`
	Owner       PlayerID `json:"owner"`
	Until       int      `json:"until"`
	BothPlayers bool     `json:"bothPlayers"`
}

type PhantomView struct {
	Point
	Until int `json:"until"`
}

type KindBanView struct {
	Kind  string `json:"kind"`
	Until int    `json:"until"`
}

// EffectsView publishes the public timers and counters. Mine positions stay hidden.
type EffectsView struct {
	MagicBanUntil  int                     `json:"magicBanUntil"`
	BlindUntil     int                     `json:"blindUntil"`
	KindBan        *KindBanView            `json:"kindBan,omitempty"`
	Zones          []ZoneView              `json:"zones"`
	Guards         []Point                 `json:"guards"`
	Phantoms       []PhantomView           `json:"phantoms"`
	Fairy          map[PlayerID]int        `json:"fairy"`
	Mischief       int                     `json:"mischief"`
	Reversal       map[PlayerID]bool       `json:"reversal"`
	PhantomArmed   map[PlayerID]bool       `json:"phantomArmed"`
	FreeMagic      map[PlayerID]bool       `json:"freeMagic"`
	CostReductions map[PlayerID]map[int]int `json:"costReductions"`
	HandCapBonus   map[PlayerID]int        `json:"handCapBonus"`
	ExtraDraws     map[PlayerID]int        `json:"extraDraws"`
	Mines          int                     `json:"mines"`
}
