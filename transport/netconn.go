// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package transport

import (
	"net"

	"github.com/momentics/hioload-wsc/api"
)

// NetConn implements api.NetConn over a standard net.Conn, optionally
// drawing read buffers from a pool.
type NetConn struct {
	conn net.Conn
	pool api.BytePool
}

// NewNetConn initializes a new NetConn.
func NewNetConn(conn net.Conn, pool api.BytePool) *NetConn {
	return &NetConn{
		conn: conn,
		pool: pool,
	}
}

// Read: Zero-copy buffer fill.
func (n *NetConn) Read(buf []byte) (int, error) {
	return n.conn.Read(buf)
}

// Write: Zero-copy.
func (n *NetConn) Write(buf []byte) (int, error) {
	return n.conn.Write(buf)
}

// Close the connection.
func (n *NetConn) Close() error {
	return n.conn.Close()
}

// AcquireBuffer draws a read buffer from the attached pool, if any.
func (n *NetConn) AcquireBuffer(size int) []byte {
	if n.pool == nil {
		return make([]byte, size)
	}
	return n.pool.Acquire(size)
}

// ReleaseBuffer returns a buffer obtained from AcquireBuffer.
func (n *NetConn) ReleaseBuffer(buf []byte) {
	if n.pool != nil {
		n.pool.Release(buf)
	}
}
