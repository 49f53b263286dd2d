package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	pb "gopkg.in/cheggaaa/pb.v1"

	hostmon "github.com/digineo/go-hostmon"
)

func main() {
	var attempts uint
	var timeout time.Duration
	var id uint
	flag.UintVar(&attempts, "attempts", 10, "number of echo requests to send")
	flag.DurationVar(&timeout, "timeout", 2*time.Second, "timeout for a single echo request")
	flag.UintVar(&id, "id", 0, "echo request identifier (default: process id)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 || attempts == 0 || attempts > 0xffff {
		fmt.Fprintln(os.Stderr, "usage:", os.Args[0], "[options] host")
		flag.PrintDefaults()
		os.Exit(1)
	}

	remote, err := net.ResolveIPAddr("ip4", args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "host %s: %v\n", args[0], err)
		os.Exit(1)
	}

	prober := hostmon.New(hostmon.Config{
		Identifier: uint16(id),
		Timeout:    timeout,
	})

	bar := pb.StartNew(int(attempts))
	results := sweep(prober, remote, attempts, func() { bar.Increment() })
	bar.Finish()

	var received int
	var best, worst, total time.Duration
	for _, r := range results {
		if !r.Reachable() {
			continue
		}
		if received == 0 || r.Latency < best {
			best = r.Latency
		}
		if r.Latency > worst {
			worst = r.Latency
		}
		total += r.Latency
		received++
	}

	lost := len(results) - received
	fmt.Printf("%s: %d sent, %d received, %0.f%% loss\n",
		remote, len(results), received, float64(lost)/float64(len(results))*100)

	if received == 0 {
		fmt.Println("last status:", results[len(results)-1].Status.Reason())
		os.Exit(1)
	}

	fmt.Printf("rtt min/avg/max = %s/%s/%s\n", best, total/time.Duration(received), worst)
}

// sweep probes remote once per attempt, with sequence numbers counting
// up from 1. The loop counter is wider than the 16-bit wire sequence so
// the full range of 65535 attempts terminates.
func sweep(prober *hostmon.Prober, remote *net.IPAddr, attempts uint, tick func()) []hostmon.Result {
	results := make([]hostmon.Result, 0, attempts)
	for i := uint(0); i < attempts; i++ {
		results = append(results, prober.Probe(remote, uint16(i+1)))
		if tick != nil {
			tick()
		}
	}
	return results
}
