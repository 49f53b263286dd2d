package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/digineo/go-hostmon/monitor"
)

// collectHosts reads addresses or hostnames from in, one per line,
// resolving and registering each as it arrives. An empty line finishes
// the input phase once at least one host has been accepted.
func collectHosts(mon *monitor.Monitor, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Insert addresses separated by newlines, or an empty line to start monitoring:")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(mon.Hosts()) > 0 {
				return nil
			}
			fmt.Fprintln(out, "no host has been added yet")
			continue
		}

		addr, err := resolve(line)
		if err != nil {
			fmt.Fprintf(out, "host %s: %v; not added\n", line, err)
			continue
		}

		name := displayName(line, addr)
		switch {
		case !mon.AddHost(addr, name):
			fmt.Fprintf(out, "host %s already tracked\n", addr)
		case name != "":
			fmt.Fprintf(out, "hostname %s resolved to %s and added\n", name, addr)
		default:
			fmt.Fprintf(out, "address %s added\n", addr)
		}
	}

	// EOF without an empty line: the caller rejects an empty host list
	return scanner.Err()
}
