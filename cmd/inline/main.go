package main

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	. "github.com/weftworks/weft"
)

type step struct {
	name string
	pct  int
}

func main() {
	steps := []step{
		{"fetch sources", 0},
		{"compile", 0},
		{"link", 0},
		{"package", 0},
	}

	view := func() *Element {
		rows := make([]*Element, 0, len(steps)+1)
		rows = append(rows, Text("building demo/app").Bold())
		for _, s := range steps {
			status := Text("…").Dim()
			if s.pct >= 100 {
				status = Text("done").Foreground(Green)
			} else if s.pct > 0 {
				status = Textf("%3d%%", s.pct)
			}
			rows = append(rows, Row(
				Text(s.name).Width(Ch(14)).Dim(),
				Text(bar(s.pct)).Foreground(Cyan),
				status,
			).Gap(1))
		}
		return Col(rows...)
	}

	app, err := NewApp(WithInline(), WithView(view))
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		tick := time.NewTicker(50 * time.Millisecond)
		defer tick.Stop()
		for range tick.C {
			done := true
			for i := range steps {
				if steps[i].pct < 100 {
					steps[i].pct += 1 + rand.Intn(4)
					if steps[i].pct > 100 {
						steps[i].pct = 100
					}
					done = false
					break
				}
			}
			app.RequestRender()
			if done {
				time.Sleep(200 * time.Millisecond)
				app.Stop()
				return
			}
		}
	}()

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("build complete")
}

func bar(pct int) string {
	const w = 28
	filled := pct * w / 100
	if filled > w {
		filled = w
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", w-filled)
}
