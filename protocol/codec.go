// File: protocol/codec.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Codec ties the frame reader, frame writer, and handshake driver to one
// reader/writer pair and one caller-owned scratch buffer. A Codec holds no
// heap allocations of its own and is not safe for concurrent use: the
// parser state must observe a total order of calls.

package protocol

import (
	"crypto/rand"
	"io"
)

// parserState is the receive-side position of the codec.
type parserState uint8

const (
	awaitingHeader parserState = iota
	readingPayload
)

// Codec is a streaming RFC 6455 client codec over a byte reader/writer.
//
// The scratch buffer is reused for header bytes and payload chunks; slices
// handed out through Chunk events are invalidated by the next codec call.
type Codec struct {
	r       io.Reader
	w       io.Writer
	scratch []byte

	// Receive-side frame state. chunkRead never exceeds chunkNeed; once
	// the final chunk is delivered they are equal and the next event is
	// parsed in awaitingHeader. A zero-length frame starts readingPayload
	// with both at 0 and yields one empty final chunk.
	state        parserState
	chunkNeed    uint64
	chunkRead    uint64
	chunkHasMask bool
	chunkMask    [4]byte

	// Send-side masking state for the frame currently being written.
	writeMasked     bool
	writeMask       [4]byte
	writeMaskOffset uint64

	handshaken bool

	entropy io.Reader
}

// NewCodec constructs a Codec borrowing scratch, r, and w for its lifetime.
// The scratch buffer must be at least MinScratchSize bytes.
func NewCodec(scratch []byte, r io.Reader, w io.Writer) (*Codec, error) {
	if len(scratch) < MinScratchSize {
		return nil, ErrScratchTooSmall
	}
	return &Codec{
		r:       r,
		w:       w,
		scratch: scratch,
		entropy: rand.Reader,
	}, nil
}

// Handshaken reports whether the Upgrade handshake completed successfully.
// It is advisory: the frame paths do not gate on it.
func (c *Codec) Handshaken() bool {
	return c.handshaken
}

// SetEntropy replaces the randomness source used for the handshake key and
// for NewMaskKey. The default is crypto/rand; tests install deterministic
// streams.
func (c *Codec) SetEntropy(src io.Reader) {
	c.entropy = src
}

// NewMaskKey draws a fresh 4-byte masking key for one outgoing frame.
func (c *Codec) NewMaskKey() ([4]byte, error) {
	var key [4]byte
	if _, err := io.ReadFull(c.entropy, key[:]); err != nil {
		return key, err
	}
	return key, nil
}
