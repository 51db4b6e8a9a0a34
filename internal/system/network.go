package system

import (
	"errors"
	"net"
	"strings"
)

// ErrNoLANAddress is returned when no interface carries a usable IPv4 address.
var ErrNoLANAddress = errors.New("no LAN IPv4 address")

// LANIPv4 returns the IPv4 address other devices on the network can reach the gallery at.
// Wireless interfaces are preferred over wired ones, loopback and link-local
// addresses are skipped.
func LANIPv4() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}

	var wired string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		ip := firstIPv4(addrs)
		if ip == "" {
			continue
		}
		if isWireless(iface.Name) {
			return ip, nil
		}
		if wired == "" {
			wired = ip
		}
	}
	if wired == "" {
		return "", ErrNoLANAddress
	}
	return wired, nil
}

func firstIPv4(addrs []net.Addr) string {
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP.To4()
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
			continue
		}
		return ip.String()
	}
	return ""
}

func isWireless(name string) bool {
	return strings.HasPrefix(name, "wlan") || strings.HasPrefix(name, "wl")
}

// GalleryHost picks the host for the gallery URL: the configured one when set,
// otherwise the LAN address, otherwise loopback.
func GalleryHost(configured string, log logger) string {
	if configured != "" {
		return configured
	}
	ip, err := LANIPv4()
	if err != nil {
		if log != nil {
			log.Infof("system", "gallery host: %v, using loopback", err)
		}
		return "127.0.0.1"
	}
	return ip
}
