package proxy

import (
	"net"
	"time"
)

// enableKeepalive turns on TCP keepalive for conn and raises its idle and
// interval timers to at least threshold, never lowering them. Non-TCP connections (e.g. in tests, a net.Pipe) are left
// untouched.
func enableKeepalive(conn net.Conn, threshold time.Duration) error {
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}
	if err := tc.SetKeepAlive(true); err != nil {
		return err
	}
	return raiseKeepaliveTimers(tc, threshold)
}
