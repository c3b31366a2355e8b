//go:build darwin

package proxy

import (
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// raiseKeepaliveTimers raises macOS's single combined keepalive-idle
// knob, TCP_KEEPALIVE, to at least threshold seconds. Darwin has no
// separate TCP_KEEPINTVL-equivalent socket option exposed the way Linux
// does.
func raiseKeepaliveTimers(tc *net.TCPConn, threshold time.Duration) error {
	raw, err := tc.SyscallConn()
	if err != nil {
		return err
	}

	secs := int(threshold / time.Second)
	var sockErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		cur, err := unix.GetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_KEEPALIVE)
		if err != nil {
			sockErr = err
			return
		}
		if cur >= secs {
			return
		}
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_KEEPALIVE, secs)
	})
	if ctrlErr != nil {
		return ctrlErr
	}
	return sockErr
}
