// Package privacy masks client network identifiers before they reach logs.
package privacy

import (
	"fmt"
	"net/netip"
)

// AnonymizeIP truncates an address to its network prefix: /24 for IPv4
// (including IPv4-mapped IPv6) and /48 for IPv6. It mirrors the IP
// anonymization the analytics provider is configured with, so request logs
// never hold more than the tracker would.
//
// Returns "unknown" for empty input and "invalid" for unparseable values.
func AnonymizeIP(ip string) string {
	if ip == "" || ip == "unknown" {
		return "unknown"
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "invalid"
	}
	addr = addr.Unmap()

	if addr.Is4() {
		b := addr.As4()
		return fmt.Sprintf("%d.%d.%d.0", b[0], b[1], b[2])
	}

	b := addr.As16()
	return fmt.Sprintf("%02x%02x:%02x%02x:%02x%02x::", b[0], b[1], b[2], b[3], b[4], b[5])
}
