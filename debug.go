package weft

import (
	"fmt"
	"os"
	"time"
)

// Debug counters are compiled in but quiet unless the environment asks.
// They write to stderr; stdout belongs to the renderer.
var (
	debugFlush  = os.Getenv("WEFT_DEBUG_FLUSH") != ""
	debugLayout = os.Getenv("WEFT_DEBUG_LAYOUT") != ""
)

func reportLayout(root *LayoutNode, d time.Duration) {
	fmt.Fprintf(os.Stderr, "weft: layout %d nodes in %s\n", countNodes(root), d)
}

func countNodes(n *LayoutNode) int {
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}

func reportFlush(bytes, ops, cells int, d time.Duration) {
	fmt.Fprintf(os.Stderr, "weft: flush %d bytes, %d ops, %d cells in %s\n", bytes, ops, cells, d)
}
