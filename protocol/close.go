// File: protocol/close.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Close frame payload helpers. The codec reports close payloads and leaves
// all close-code policy to the caller.

package protocol

import "encoding/binary"

// EncodeClosePayload builds a close frame payload from a status code and
// an optional reason. The result fits a control frame only while
// len(reason) <= MaxControlPayloadLen-2; the caller owns that bound.
func EncodeClosePayload(code uint16, reason string) []byte {
	p := make([]byte, 2+len(reason))
	binary.BigEndian.PutUint16(p, code)
	copy(p[2:], reason)
	return p
}

// DecodeClosePayload splits a close frame payload into status code and
// reason. An empty payload maps to CloseNoStatusRcvd per RFC 6455
// Section 7.1.5; a 1-byte payload is malformed and maps to
// CloseProtocolError.
func DecodeClosePayload(p []byte) (uint16, string) {
	switch {
	case len(p) == 0:
		return CloseNoStatusRcvd, ""
	case len(p) == 1:
		return CloseProtocolError, ""
	default:
		return binary.BigEndian.Uint16(p[:2]), string(p[2:])
	}
}
