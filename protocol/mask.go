// File: protocol/mask.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Payload masking per RFC 6455 Section 5.3. The XOR key stream is a
// property of absolute position within the frame payload, so the same
// routine serves read de-masking and write masking regardless of how the
// payload is chunked.

package protocol

// MaskBytes XORs buf in place with key, starting at the given absolute
// payload offset: buf[i] ^= key[(offset+i) mod 4]. Applying it twice with
// the same offset restores the original bytes.
func MaskBytes(buf []byte, key [4]byte, offset uint64) {
	pos := int(offset & 3)
	for i := range buf {
		buf[i] ^= key[pos]
		pos = (pos + 1) & 3
	}
}
