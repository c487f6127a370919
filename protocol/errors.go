// File: protocol/errors.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Terminal handshake errors and codec argument errors.

package protocol

import "errors"

var (
	// ErrScratchTooSmall is returned by NewCodec when the caller-supplied
	// scratch buffer is shorter than MinScratchSize.
	ErrScratchTooSmall = errors.New("scratch buffer too small")

	// ErrWrongResponse indicates the server answered the Upgrade request
	// with something other than a well-formed 101 response.
	ErrWrongResponse = errors.New("wrong handshake response")

	// ErrInvalidConnectionHeader indicates the Connection header was
	// missing or did not equal "upgrade".
	ErrInvalidConnectionHeader = errors.New("invalid Connection header")

	// ErrFailedChallenge indicates the Sec-WebSocket-Accept value was
	// missing or did not match the expected challenge digest.
	ErrFailedChallenge = errors.New("failed Sec-WebSocket-Accept challenge")

	// ErrConnectionClosed indicates the peer closed the stream before the
	// handshake response completed.
	ErrConnectionClosed = errors.New("connection closed during handshake")
)
