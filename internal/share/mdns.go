package share

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_orthomark._tcp"

// Advertise announces this workstation's mirror on the LAN so viewers can
// find it without typing an address. Callers shut the server down when the
// editor closes.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	info := []string{"OrthoMark mirror"}
	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, info)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}

// Browse reports every mirror host found on the LAN as "host:port". It
// blocks for the duration of the lookup.
func Browse(found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	go func() {
		for e := range entries {
			if addr, ok := entryAddr(e); ok {
				found(addr)
			}
		}
	}()
	return mdns.Lookup(serviceType, entries)
}

// Discover browses the LAN and returns the first mirror host found, for
// viewers started without an explicit address.
func Discover() (string, error) {
	addrs := make(chan string, 1)
	if err := Browse(func(addr string) {
		select {
		case addrs <- addr:
		default:
		}
	}); err != nil {
		return "", fmt.Errorf("mDNS lookup failed: %w", err)
	}
	select {
	case addr := <-addrs:
		return addr, nil
	default:
		return "", fmt.Errorf("no %s host found on this network", serviceType)
	}
}

// entryAddr extracts the dialable "host:port" from a discovery entry.
// Entries without an IPv4 address or port are incomplete responses and are
// skipped.
func entryAddr(e *mdns.ServiceEntry) (string, bool) {
	if e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port), true
}
