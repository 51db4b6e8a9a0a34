package system

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ipNet(s string) *net.IPNet {
	ip, n, _ := net.ParseCIDR(s)
	n.IP = ip
	return n
}

func TestFirstIPv4(t *testing.T) {
	addrs := []net.Addr{
		ipNet("fe80::1/64"),
		ipNet("127.0.0.1/8"),
		ipNet("169.254.3.4/16"),
		ipNet("192.168.1.20/24"),
		ipNet("10.0.0.2/8"),
	}
	assert.Equal(t, "192.168.1.20", firstIPv4(addrs))
	assert.Empty(t, firstIPv4(addrs[:3]))
}

func TestIsWireless(t *testing.T) {
	assert.True(t, isWireless("wlan0"))
	assert.True(t, isWireless("wlp2s0"))
	assert.False(t, isWireless("eth0"))
	assert.False(t, isWireless("enp3s0"))
}

func TestGalleryHost_Configured(t *testing.T) {
	assert.Equal(t, "pixelpad.local", GalleryHost("pixelpad.local", nil))
}
