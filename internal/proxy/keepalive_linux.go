//go:build linux

package proxy

import (
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// raiseKeepaliveTimers increases TCP_KEEPIDLE and TCP_KEEPINTVL to at
// least threshold seconds, reading each option first so an existing,
// larger value is never lowered.
func raiseKeepaliveTimers(tc *net.TCPConn, threshold time.Duration) error {
	raw, err := tc.SyscallConn()
	if err != nil {
		return err
	}

	secs := int(threshold / time.Second)
	var sockErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		if sockErr = raiseIfBelow(int(fd), unix.TCP_KEEPIDLE, secs); sockErr != nil {
			return
		}
		sockErr = raiseIfBelow(int(fd), unix.TCP_KEEPINTVL, secs)
	})
	if ctrlErr != nil {
		return ctrlErr
	}
	return sockErr
}

func raiseIfBelow(fd, opt, target int) error {
	cur, err := unix.GetsockoptInt(fd, unix.IPPROTO_TCP, opt)
	if err != nil {
		return err
	}
	if cur >= target {
		return nil
	}
	return unix.SetsockoptInt(fd, unix.IPPROTO_TCP, opt, target)
}
