package client

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"syscall"
)

// ErrBlockedAddress is returned when a dial targets a non-public address
var ErrBlockedAddress = errors.New("destination address not allowed")

var (
	thisNetwork = netip.MustParsePrefix("0.0.0.0/8")
	sharedCGNAT = netip.MustParsePrefix("100.64.0.0/10")
	nat64       = netip.MustParsePrefix("64:ff9b::/96")
)

// PublicOnly is a net.Dialer Control hook refusing loopback, private,
// link-local, multicast and unspecified addresses. It runs after DNS
// resolution for every connection, redirects included.
func PublicOnly(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	ip := net.ParseIP(host)
	if ip == nil || !IsPublicIP(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	return nil
}

// IsPublicIP reports whether ip is routable on the public internet.
// NAT64 addresses are judged by the IPv4 address they embed.
func IsPublicIP(ip net.IP) bool {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return false
	}
	addr = addr.Unmap()

	if nat64.Contains(addr) {
		raw := addr.As16()
		return IsPublicIP(net.IP(raw[12:16]))
	}
	if thisNetwork.Contains(addr) || sharedCGNAT.Contains(addr) {
		return false
	}

	return !(addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsInterfaceLocalMulticast() ||
		addr.IsMulticast() ||
		addr.IsUnspecified())
}
