package share

import (
	"fmt"
	"net"
)

// OutgoingIP picks the address viewers should dial in the share link. A
// throwaway UDP "connection" selects whichever interface the OS would route
// out of; nothing is ever sent on it.
func OutgoingIP() (string, error) {
	if conn, err := net.Dial("udp4", "8.8.8.8:80"); err == nil {
		defer conn.Close()
		if ua, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			return ua.IP.String(), nil
		}
	}

	// Clinic network with no default route: take the first non-loopback
	// IPv4 instead.
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", fmt.Errorf("listing interfaces: %w", err)
	}
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "127.0.0.1", nil
}
