// File: api/transport.go
// Author: momentics <momentics@gmail.com>
//
// Defines the byte-stream abstraction (NetConn) the codec and client run
// over, for compatibility with custom dialers and zero-copy pipelines.

package api

// NetConn abstracts a full-duplex byte stream that may or may not be
// backed by Go's net.Conn.
type NetConn interface {
	// Read reads into a preallocated buffer
	Read(p []byte) (n int, err error)

	// Write writes buffer contents into the connection
	Write(p []byte) (n int, err error)

	// Close shuts down the connection
	Close() error
}
