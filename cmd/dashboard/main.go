package main

import (
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	. "github.com/weftworks/weft"
)

type service struct {
	name   string
	cpu    int
	mem    int
	status string
}

func main() {
	services := []service{
		{"gateway", 12, 31, "ok"},
		{"auth", 4, 22, "ok"},
		{"billing", 57, 68, "degraded"},
		{"search", 23, 45, "ok"},
		{"mailer", 8, 19, "ok"},
	}
	start := time.Now()

	view := func() *Element {
		rows := make([]*Element, 0, len(services))
		avgCPU, avgMem := 0, 0
		for _, s := range services {
			avgCPU += s.cpu
			avgMem += s.mem
			statusColor := Green
			if s.status != "ok" {
				statusColor = Yellow
			}
			rows = append(rows, Row(
				Text(s.name).Width(Ch(10)),
				Text(gauge(s.cpu, 18)).Foreground(Cyan),
				Textf("%3d%%", s.cpu).Width(Ch(4)),
				Text(gauge(s.mem, 18)).Foreground(Magenta),
				Textf("%3d%%", s.mem).Width(Ch(4)),
				Box().Grow(1),
				Text(s.status).Foreground(statusColor).Bold(),
			).Gap(1).Height(Cells(1)))
		}
		avgCPU /= len(services)
		avgMem /= len(services)

		return Col(
			Row(
				Text("weft dashboard").Bold(),
				Box().Grow(1),
				Textf("up %s", time.Since(start).Round(time.Second)).Dim(),
			).Height(Cells(1)).Padding(0, 1).Background(RGB(40, 44, 52)),
			Row(
				Col(append([]*Element{
					Text("services").Bold().Underline(),
				}, rows...)...).Grow(2).Border(BorderSingle).Padding(0, 1),
				Col(
					Text("cluster").Bold().Underline(),
					Textf("cpu %s %3d%%", gauge(avgCPU, 16), avgCPU),
					Textf("mem %s %3d%%", gauge(avgMem, 16), avgMem),
					Rule(),
					Textf("%d services", len(services)).Dim(),
				).Grow(1).Border(BorderSingle).Padding(0, 1),
			).Grow(1).Gap(1),
			Text("press any key to quit").Dim().Height(Cells(1)).Padding(0, 1),
		)
	}

	app, err := NewApp(WithView(view))
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		tick := time.NewTicker(400 * time.Millisecond)
		defer tick.Stop()
		for range tick.C {
			for i := range services {
				services[i].cpu = clampPct(services[i].cpu + rand.Intn(9) - 4)
				services[i].mem = clampPct(services[i].mem + rand.Intn(5) - 2)
				if services[i].cpu >= 80 {
					services[i].status = "degraded"
				} else {
					services[i].status = "ok"
				}
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

func gauge(pct, width int) string {
	filled := pct * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func clampPct(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
