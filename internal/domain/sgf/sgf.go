package sgf

// GameTree is one SGF sequence of nodes plus its variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node holds SGF properties. A property may repeat values, e.g. AB[aa][bb].
type Node struct {
	Properties map[string][]string
}

type SGF struct {
	Root *GameTree
}
