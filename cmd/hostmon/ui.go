package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/digineo/go-hostmon/monitor"
)

const statusCols = 8

// runUI renders the host table with tview, refreshing it once per
// monitoring round until q, Escape or Ctrl-C is pressed.
func runUI(mon *monitor.Monitor, interval time.Duration) error {
	li := interceptLog(20)
	defer func() {
		log.SetOutput(os.Stderr)
		li.flush(os.Stderr)
	}()

	app := tview.NewApplication()
	table := tview.NewTable().SetBorders(false).SetFixed(2, 0)
	table.SetTitle(" hostmon (press [q] to exit) ")

	table.SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("%-40s", "Host")).SetAlign(tview.AlignLeft))
	table.SetCell(0, 1, tview.NewTableCell("  status").SetAlign(tview.AlignLeft))
	table.SetCell(0, 2, tview.NewTableCell("  last").SetAlign(tview.AlignRight))
	table.SetCell(0, 3, tview.NewTableCell("  best").SetAlign(tview.AlignRight))
	table.SetCell(0, 4, tview.NewTableCell("  worst").SetAlign(tview.AlignRight))
	table.SetCell(0, 5, tview.NewTableCell("  mean").SetAlign(tview.AlignRight))
	table.SetCell(0, 6, tview.NewTableCell("  loss").SetAlign(tview.AlignRight))
	table.SetCell(0, 7, tview.NewTableCell("  rounds").SetAlign(tview.AlignRight))

	for r, h := range mon.Hosts() {
		for c := 0; c < statusCols; c++ {
			var cell *tview.TableCell
			switch c {
			case 0:
				cell = tview.NewTableCell(h.Label()).SetAlign(tview.AlignLeft)
			case 1:
				cell = tview.NewTableCell("n/a").SetAlign(tview.AlignLeft)
			default:
				cell = tview.NewTableCell("n/a").SetAlign(tview.AlignRight)
			}
			table.SetCell(r+2, c, cell)
		}
	}

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})

	mon.Start()
	defer mon.Stop()

	go func() {
		time.Sleep(interval)
		for {
			for i, hs := range mon.Snapshot() {
				r := i + 2

				table.GetCell(r, 1).SetText(statusText(hs))
				table.GetCell(r, 2).SetText(ts(hs.Stats.Last))
				table.GetCell(r, 3).SetText(ts(hs.Stats.Best))
				table.GetCell(r, 4).SetText(ts(hs.Stats.Worst))
				table.GetCell(r, 5).SetText(ts(hs.Stats.Mean))
				table.GetCell(r, 6).SetText(fmt.Sprintf("%0.2f%%", hs.Stats.Loss()*100))
				table.GetCell(r, 7).SetText(strconv.Itoa(hs.Stats.Rounds))
			}
			app.Draw()
			time.Sleep(interval)
		}
	}()

	return app.SetRoot(table, true).SetFocus(table).Run()
}

func statusText(hs monitor.HostStatus) string {
	if !hs.Probed {
		return "n/a"
	}
	return hs.Result.String()
}

const tsDividend = float64(time.Millisecond) / float64(time.Nanosecond)

func ts(dur time.Duration) string {
	if dur == 0 {
		return "n/a"
	}
	if 10*time.Microsecond < dur && dur < time.Second {
		return fmt.Sprintf("%0.2fms", float64(dur.Nanoseconds())/tsDividend)
	}
	return dur.String()
}
