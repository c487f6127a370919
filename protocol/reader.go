// File: protocol/reader.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Resumable pull parser for incoming frames. Two states: awaitingHeader
// reads and decodes one frame header; readingPayload delivers the payload
// in scratch-sized chunks, de-masking at absolute payload offsets.

package protocol

import (
	"encoding/binary"
	"errors"
	"io"
)

// ReadEvent advances the parser by one event.
//
// In awaitingHeader it consumes exactly one frame header and returns an
// EventHeader. In readingPayload it consumes up to one scratch buffer of
// payload and returns an EventChunk whose Final flag marks payload
// completion; a zero-length frame yields a single empty final chunk.
// A stream that ends where bytes were demanded yields EventClosed rather
// than an error. Transport errors pass through unchanged.
//
// The parser does not police protocol violations: RSV bits, reserved
// opcodes, and server-side masking are surfaced in the header for the
// caller to act on.
func (c *Codec) ReadEvent() (Event, error) {
	if c.state == readingPayload {
		return c.readChunk()
	}
	return c.readHeader()
}

// readHeader decodes the fixed prefix, the extended length, and the mask
// key, then arms the payload state.
func (c *Codec) readHeader() (Event, error) {
	if ok, err := c.readExact(c.scratch[:2]); !ok {
		return Event{Kind: EventClosed}, err
	}
	b0, b1 := c.scratch[0], c.scratch[1]

	hdr := FrameHeader{
		Fin:    b0&FinBit != 0,
		Rsv1:   b0&Rsv1Bit != 0,
		Rsv2:   b0&Rsv2Bit != 0,
		Rsv3:   b0&Rsv3Bit != 0,
		Opcode: b0 & 0x0F,
		Masked: b1&MaskBit != 0,
	}

	switch len7 := b1 & 0x7F; len7 {
	case len16Marker:
		if ok, err := c.readExact(c.scratch[:2]); !ok {
			return Event{Kind: EventClosed}, err
		}
		hdr.Length = uint64(binary.BigEndian.Uint16(c.scratch[:2]))
	case len64Marker:
		if ok, err := c.readExact(c.scratch[:8]); !ok {
			return Event{Kind: EventClosed}, err
		}
		hdr.Length = binary.BigEndian.Uint64(c.scratch[:8])
	default:
		hdr.Length = uint64(len7)
	}

	c.chunkHasMask = hdr.Masked
	if hdr.Masked {
		if ok, err := c.readExact(c.chunkMask[:]); !ok {
			return Event{Kind: EventClosed}, err
		}
	}

	c.chunkNeed = hdr.Length
	c.chunkRead = 0
	c.state = readingPayload

	// The mask key stays internal to the parser.
	return Event{Kind: EventHeader, Header: hdr}, nil
}

// readChunk delivers the next slice of the current frame's payload.
func (c *Codec) readChunk() (Event, error) {
	left := c.chunkNeed - c.chunkRead

	if left <= uint64(len(c.scratch)) {
		buf := c.scratch[:left]
		if left > 0 {
			if ok, err := c.readExact(buf); !ok {
				return Event{Kind: EventClosed}, err
			}
			if c.chunkHasMask {
				MaskBytes(buf, c.chunkMask, c.chunkRead)
			}
		}
		c.state = awaitingHeader
		c.chunkRead = c.chunkNeed
		return Event{Kind: EventChunk, Data: buf, Final: true}, nil
	}

	n, err := c.r.Read(c.scratch)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return Event{Kind: EventClosed}, nil
		}
		return Event{}, err
	}
	buf := c.scratch[:n]
	if c.chunkHasMask {
		MaskBytes(buf, c.chunkMask, c.chunkRead)
	}
	c.chunkRead += uint64(n)
	return Event{Kind: EventChunk, Data: buf, Final: false}, nil
}

// readExact fills buf completely. A short read reports ok=false with a nil
// error so the caller can surface EventClosed; other reader errors are
// passed through with ok=false.
func (c *Codec) readExact(buf []byte) (bool, error) {
	if _, err := io.ReadFull(c.r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
