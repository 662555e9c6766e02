package data

import (
	"fmt"
	"net/netip"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// NA is shown for anything the OS did not report.
const NA = "N/A"

// FormatAddr renders ip:port with IPv6 compressed. An empty ip is N/A.
func FormatAddr(ip string, port uint32) string {
	if ip == "" {
		return NA
	}
	return CompressIPv6(ip) + ":" + strconv.FormatUint(uint64(port), 10)
}

// CompressIPv6 returns the canonical compressed form of an IPv6 address and
// any other input unchanged.
func CompressIPv6(addr string) string {
	ip, err := netip.ParseAddr(addr)
	if err != nil || !ip.Is6() || ip.Is4In6() {
		return addr
	}
	return ip.String()
}

// FormatBytes renders a byte count in IEC units.
func FormatBytes(n uint64) string {
	return humanize.IBytes(n)
}

// FormatUptime renders d as hh:mm:ss. Hours are not wrapped.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}

// FormatPID renders a pid, or N/A for 0.
func FormatPID(pid int32) string {
	if pid == 0 {
		return NA
	}
	return strconv.Itoa(int(pid))
}
