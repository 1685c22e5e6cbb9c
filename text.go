package weft

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// grapheme is one user-perceived character reduced to what a cell can hold:
// the base rune and the number of columns the cluster occupies (0 for pure
// combining marks, at most 2).
type grapheme struct {
	r rune
	w int
}

// graphemes splits s into cell-sized units. Combining sequences collapse
// onto their base rune so a cluster never spans more cells than its display
// width.
func graphemes(s string) []grapheme {
	gs := make([]grapheme, 0, len(s))
	iter := uniseg.NewGraphemes(s)
	for iter.Next() {
		runes := iter.Runes()
		if len(runes) == 0 {
			continue
		}
		w := runewidth.StringWidth(iter.Str())
		if w > 2 {
			w = 2
		}
		gs = append(gs, grapheme{r: runes[0], w: w})
	}
	return gs
}

// stringWidth returns the display width of s in columns.
func stringWidth(s string) int {
	total := 0
	iter := uniseg.NewGraphemes(s)
	for iter.Next() {
		w := runewidth.StringWidth(iter.Str())
		if w > 2 {
			w = 2
		}
		total += w
	}
	return total
}

// measureText returns the intrinsic size of a text run: the widest line and
// the line count. A positive maxWidth wraps the text first; otherwise only
// explicit newlines break lines.
func measureText(s string, maxWidth int) Size {
	if s == "" {
		return Size{}
	}
	var lines []string
	if maxWidth > 0 {
		lines = wrapText(s, maxWidth)
	} else {
		lines = strings.Split(s, "\n")
	}
	size := Size{H: len(lines)}
	for _, line := range lines {
		if w := stringWidth(line); w > size.W {
			size.W = w
		}
	}
	return size
}

// wrapText breaks s into lines no wider than width, preferring word
// boundaries. Explicit newlines always break; a word wider than a full line
// breaks mid-word rather than overflowing.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return []string{}
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var line strings.Builder
		lineWidth := 0
		for _, word := range words {
			ww := stringWidth(word)
			if lineWidth > 0 {
				if lineWidth+1+ww <= width {
					line.WriteByte(' ')
					lineWidth++
				} else {
					lines = append(lines, line.String())
					line.Reset()
					lineWidth = 0
				}
			}
			if ww <= width {
				line.WriteString(word)
				lineWidth += ww
				continue
			}
			// Hard-break an overlong word cluster by cluster.
			for _, g := range graphemes(word) {
				if lineWidth+g.w > width && lineWidth > 0 {
					lines = append(lines, line.String())
					line.Reset()
					lineWidth = 0
				}
				line.WriteRune(g.r)
				lineWidth += g.w
			}
		}
		lines = append(lines, line.String())
	}
	return lines
}
