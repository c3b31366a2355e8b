//go:build !linux && !darwin

package proxy

import (
	"net"
	"time"
)

// raiseKeepaliveTimers falls back to Go's portable keepalive period on
// platforms without a Linux/Darwin-specific raise-only implementation.
// This cannot honour the "raise, never lower" rule portably since the
// standard library does not expose a getter for the current timer.
func raiseKeepaliveTimers(tc *net.TCPConn, threshold time.Duration) error {
	return tc.SetKeepAlivePeriod(threshold)
}
