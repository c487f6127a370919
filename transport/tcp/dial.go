// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

package tcp

import (
	"net"
	"time"
)

// DialConfig holds configuration for the TCP dialer.
type DialConfig struct {
	Addr        string        // host:port to connect to
	DialTimeout time.Duration // 0 = no timeout
	NoDelay     bool          // disable Nagle batching for latency-bound frames
}

// Dial opens a TCP connection and applies socket tuning per cfg.
func Dial(cfg *DialConfig) (net.Conn, error) {
	d := net.Dialer{Timeout: cfg.DialTimeout}
	conn, err := d.Dial("tcp", cfg.Addr)
	if err != nil {
		return nil, err
	}
	if cfg.NoDelay {
		if tc, ok := conn.(*net.TCPConn); ok {
			if err := setNoDelay(tc); err != nil {
				conn.Close()
				return nil, err
			}
		}
	}
	return conn, nil
}
