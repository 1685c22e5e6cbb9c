package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	. "github.com/weftworks/weft"
)

func main() {
	cols, rows := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cols, rows = w, h
	}

	pane := func(label string, c Color) *Element {
		return Box(
			Text(label),
		).Justify(JustifyCenter).Align(AlignCenter).
			Border(BorderRounded).BorderForeground(c)
	}

	gridHeight := rows - 3
	if gridHeight > 16 {
		gridHeight = 16
	}
	if gridHeight < 7 {
		gridHeight = 7
	}

	root := Col(
		Textf("grid tracks on a %dx%d terminal", cols, rows).Bold(),
		Grid(
			pane("header: span 3", Cyan).At(1, 1).Span(3, 1),
			pane("nav: 14 cells", Green).At(1, 2),
			pane("main: 1fr", White).At(2, 2),
			pane("aside: 25%", Magenta).At(3, 2),
			pane("footer: auto-placed", Yellow).Span(3, 1),
		).Columns(Cells(14), Fr(1), Pct(25)).
			Rows(Cells(3), Fr(1), Cells(3)).
			Gap(1).
			Height(Cells(gridHeight)),
	)

	app, err := NewApp(WithInline())
	if err != nil {
		log.Fatal(err)
	}
	if err := app.RenderFrame(root); err != nil {
		log.Fatal(err)
	}
	fmt.Println()
}
