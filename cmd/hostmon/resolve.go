package main

import (
	"context"
	"fmt"
	"net"
	"time"
)

const resolveTimeout = 5 * time.Second

// resolve looks up the first IPv4 address for host. Literal IPv4
// addresses pass through unchanged.
func resolve(host string) (*net.IPAddr, error) {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}

	for i := range addrs {
		if ip4 := addrs[i].IP.To4(); ip4 != nil {
			return &net.IPAddr{IP: ip4, Zone: addrs[i].Zone}, nil
		}
	}

	return nil, fmt.Errorf("no IPv4 address for %s", host)
}
