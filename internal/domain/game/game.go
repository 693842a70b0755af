package game

import (
	"encoding/json"
	"time"
)

const BoardSize = 19

// PlayerID is a seat in a room. The zero value marks an empty cell.
type PlayerID int

const (
	None  PlayerID = 0
	Black PlayerID = 1
	White PlayerID = 2
)

func (p PlayerID) Valid() bool {
	return p == Black || p == White
}

func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Black:
		return White
	case White:
		return Black
	}
	return None
}

// Color is the SGF color letter of the seat.
func (p PlayerID) Color() string {
	if p == White {
		return "W"
	}
	return "B"
}

type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Placement is one accepted placement action, kept for rollback effects and records.
type Placement struct {
	Turn        int      `json:"turn" bson:"turn"`
	Player      PlayerID `json:"player" bson:"player"`
	Coordinates []Point  `json:"coordinates" bson:"coordinates"`
}

type Move struct {
	X     int      `json:"x" bson:"x"`
	Y     int      `json:"y" bson:"y"`
	Color PlayerID `json:"color" bson:"color"`
}

// Record is the move list handed to storage when a room ends.
type Record struct {
	ID         string      `json:"id" bson:"_id"`
	Room       string      `json:"room" bson:"room"`
	Moves      []Move      `json:"moves" bson:"moves"`
	Placements []Placement `json:"placements" bson:"placements"`
	SGF        string      `json:"sgf" bson:"sgf"`
	StartedAt  time.Time   `json:"startedAt" bson:"started_at"`
	EndedAt    time.Time   `json:"endedAt" bson:"ended_at"`
}

// Params carries the card-specific arguments of a playCard action.
type Params struct {
	X           *int    `json:"x,omitempty"`
	Y           *int    `json:"y,omitempty"`
	Anchor      *Point  `json:"anchor,omitempty"`
	Orientation string  `json:"orientation,omitempty"`
	Dir         string  `json:"dir,omitempty"`
	Discard     []int   `json:"discard,omitempty"`
	Targets     []Point `json:"targets,omitempty"`
	Src         *Point  `json:"src,omitempty"`
	Dst         *Point  `json:"dst,omitempty"`
	Kind        string  `json:"kind,omitempty"`
	CardID      int     `json:"cardId,omitempty"`
}

// AnchorPoint returns the explicit anchor, falling back to the plain x/y pair.
func (p Params) AnchorPoint() (Point, bool) {
	if p.Anchor != nil {
		return *p.Anchor, true
	}
	if p.X != nil && p.Y != nil {
		return Point{X: *p.X, Y: *p.Y}, true
	}
	return Point{}, false
}

const (
	ActionPlayCard = "playCard"
	ActionEndTurn  = "endTurn"
	ActionDraw     = "draw"
)

type Action struct {
	Type   string `json:"type"`
	CardID int    `json:"cardId,omitempty"`
	Params Params `json:"params"`
}

type JoinRequest struct {
	Room   string   `json:"room"`
	Player PlayerID `json:"player"`
	Deck   []int    `json:"deck"`
}

type ActionRequest struct {
	Room   string `json:"room"`
	Action Action `json:"action"`
}

type GrantRequest struct {
	Room  string `json:"room"`
	Cards []int  `json:"cards"`
}

// Inbound and outbound websocket event names.
const (
	EventJoin       = "join"
	EventAction     = "action"
	EventGrant      = "gacha:draw"
	EventWaiting    = "waiting"
	EventStart      = "start"
	EventState      = "state"
	EventError      = "error"
	EventPeekHand   = "peekHand"
	EventHandUpdate = "hand:update"
	EventEnded      = "ended"
)

// Frame is the inbound websocket envelope.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OutFrame is the outbound websocket envelope.
type OutFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type CardsResponse struct {
	CardIDs []int `json:"cardIds"`
}
