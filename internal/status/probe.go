package status

import (
	"net"
	"strconv"
	"time"
)

// ProbePort reports whether a TCP listener accepts connections on host:port.
// The gateway's API socket is probed directly so a frozen process that keeps
// its status endpoint alive still shows a dead port.
func ProbePort(host string, port int, timeout time.Duration) bool {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
