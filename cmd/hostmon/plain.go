package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/digineo/go-hostmon/monitor"
)

// runPlain re-renders a status table after every monitoring round
// until SIGINT or SIGTERM arrives.
func runPlain(mon *monitor.Monitor, out io.Writer) error {
	rounds := make(chan time.Time, 1)
	mon.OnRound = func(at time.Time) {
		select {
		case rounds <- at:
		default:
		}
	}

	mon.Start()
	defer mon.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sig:
			fmt.Fprintln(out)
			return nil
		case at := <-rounds:
			render(out, mon.Snapshot(), at)
		}
	}
}

func render(out io.Writer, snapshot []monitor.HostStatus, at time.Time) {
	fmt.Fprintf(out, "\nRequesting each host for echo every %s. Press Ctrl+C to exit.\n", opts.interval)
	fmt.Fprintf(out, "[latest refresh] %s\n\n", at.Format("15:04:05"))

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Host", "Status", "Loss", "Rounds"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, hs := range snapshot {
		table.Append([]string{
			hs.Label(),
			statusCell(hs),
			fmt.Sprintf("%0.f%%", hs.Stats.Loss()*100),
			strconv.Itoa(hs.Stats.Rounds),
		})
	}

	table.Render()
}

func statusCell(hs monitor.HostStatus) string {
	if !hs.Probed {
		return "n/a"
	}
	if hs.Result.Reachable() {
		return color.GreenString("reachable, ping: %s", hs.Result)
	}
	return color.RedString("not reachable: %s", hs.Result)
}
