package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LanSanter/GO-game-proj/internal/domain/game"
	"github.com/LanSanter/GO-game-proj/internal/domain/sgf"
)

// PrepareSgf builds the game tree of a record: a root node and one setup node per placement.
// Multi-stone placements are written as AB/AW setup properties.
func PrepareSgf(record game.Record) sgf.SGF {
	tree := &sgf.GameTree{
		Nodes: []sgf.Node{{
			Properties: map[string][]string{
				"FF": {"4"},
				"GM": {"1"},
				"SZ": {strconv.Itoa(game.BoardSize)},
				"DT": {record.StartedAt.Format("2006-01-02")},
				"RU": {"Chinese"},
				"C":  {"room " + record.Room},
			},
		}},
	}
	AddPlacementsToSgf(tree, record.Placements)
	return sgf.SGF{Root: tree}
}

func AddPlacementsToSgf(tree *sgf.GameTree, placements []game.Placement) {
	for _, pl := range placements {
		coords := make([]string, 0, len(pl.Coordinates))
		for _, c := range pl.Coordinates {
			coords = append(coords, sgfPoint(c))
		}
		tree.Nodes = append(tree.Nodes, sgf.Node{
			Properties: map[string][]string{
				"A" + pl.Player.Color(): coords,
				"C":                     {fmt.Sprintf("turn %d", pl.Turn)},
			},
		})
	}
}

func sgfPoint(p game.Point) string {
	return string([]byte{byte('a' + p.X), byte('a' + p.Y)})
}

// orderedKeys fixes the property order so the output is stable.
var orderedKeys = []string{"FF", "GM", "SZ", "PB", "PW", "DT", "RE", "KM", "RU", "AB", "AW", "B", "W", "C"}

func SerializeSGF(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")
		for _, key := range orderedKeys {
			values, ok := node.Properties[key]
			if !ok {
				continue
			}
			builder.WriteString(key)
			for _, v := range values {
				builder.WriteString("[" + escapeValue(v) + "]")
			}
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

func escapeValue(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, "]", `\]`)
}
