// transport/tcp/sockopt_linux.go
//go:build linux
// +build linux

//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux socket tuning via raw setsockopt on the connection's descriptor.

package tcp

import (
	"net"

	"golang.org/x/sys/unix"
)

// setNoDelay sets TCP_NODELAY directly on the socket descriptor.
func setNoDelay(conn *net.TCPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	})
	if ctrlErr != nil {
		return ctrlErr
	}
	return sockErr
}
