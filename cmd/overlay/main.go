package main

import (
	"log"
	"os"
	"time"

	. "github.com/weftworks/weft"
)

func main() {
	var (
		app   *App
		toast string
		modal = true
		lines = []string{
			"the base view keeps rendering underneath",
			"the modal paints on its own layer at z 1",
			"the toast paints above it at z 2",
			"the watermark sits at z -1, behind the base",
		}
	)

	view := func() *Element {
		sz := app.Size()

		body := make([]*Element, 0, len(lines)+1)
		body = append(body, Text("activity").Bold().Underline())
		for i, l := range lines {
			body = append(body, Textf("%2d  %s", i+1, l))
		}

		root := Col(
			Row(
				Text("overlay demo").Bold(),
				Box().Grow(1),
				Text("any key quits").Dim(),
			).Height(Cells(1)).Padding(0, 1).Background(RGB(30, 34, 42)),
			Col(body...).Grow(1).Padding(1, 2),
		)

		root.Add(Text("w e f t").Fixed().Right(4).Bottom(1).Z(-1).Dim())

		if modal {
			mw, mh := 44, 8
			root.Add(Col(
				Text("scheduled maintenance").Bold(),
				Rule(),
				Text("layers merge back to front;"),
				Text("cells this panel never painted stay"),
				Text("transparent, so the base shows through."),
			).Fixed().
				Left((sz.W-mw)/2).Top((sz.H-mh)/2).
				Width(Cells(mw)).Height(Cells(mh)).
				Z(1).
				Border(BorderDouble).BorderForeground(Cyan).
				Background(RGB(40, 40, 58)).
				Padding(0, 2))
		}

		if toast != "" {
			root.Add(Text(" "+toast+" ").
				Fixed().Right(2).Top(2).Z(2).
				Background(Green).Foreground(Black).Bold())
		}

		return root
	}

	app, err := NewApp(WithView(view))
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		tick := time.NewTicker(1200 * time.Millisecond)
		defer tick.Stop()
		n := 0
		for range tick.C {
			n++
			switch n % 4 {
			case 0:
				toast = ""
			case 1:
				toast = "saved"
			case 2:
				modal = !modal
				toast = ""
			case 3:
				toast = "3 new events"
			}
			app.RequestRender()
		}
	}()

	go func() {
		var b [1]byte
		os.Stdin.Read(b[:])
		app.Stop()
	}()

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
