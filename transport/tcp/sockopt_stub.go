// transport/tcp/sockopt_stub.go
//go:build !linux
// +build !linux

//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package tcp

import "net"

// setNoDelay falls back to the portable net.TCPConn knob.
func setNoDelay(conn *net.TCPConn) error {
	return conn.SetNoDelay(true)
}
