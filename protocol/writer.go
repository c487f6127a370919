// File: protocol/writer.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Frame serialization. A header write arms the per-frame masking state;
// payload writes stream through a bounded stack buffer when masking so the
// caller's bytes are never mutated.

package protocol

import "encoding/binary"

// maskCopySize bounds the stack buffer used to mask outgoing payload
// bytes without touching the caller's slice.
const maskCopySize = 512

// WriteMessageHeader serializes h: the 2-byte fixed prefix, the extended
// length in the shortest form that fits (<126 literal, <65536 16-bit, else
// 64-bit), and the 4-byte mask key when h.Masked. It stores the mask for
// the payload writes that follow and resets the write offset.
func (c *Codec) WriteMessageHeader(h FrameHeader) error {
	var hdr [MaxFrameHeaderLen]byte

	var b0 byte
	if h.Fin {
		b0 |= FinBit
	}
	if h.Rsv1 {
		b0 |= Rsv1Bit
	}
	if h.Rsv2 {
		b0 |= Rsv2Bit
	}
	if h.Rsv3 {
		b0 |= Rsv3Bit
	}
	b0 |= h.Opcode & 0x0F
	hdr[0] = b0

	var maskBit byte
	if h.Masked {
		maskBit = MaskBit
	}

	n := 2
	switch {
	case h.Length < len16Marker:
		hdr[1] = byte(h.Length) | maskBit
	case h.Length <= 0xFFFF:
		hdr[1] = len16Marker | maskBit
		binary.BigEndian.PutUint16(hdr[n:], uint16(h.Length))
		n += 2
	default:
		hdr[1] = len64Marker | maskBit
		binary.BigEndian.PutUint64(hdr[n:], h.Length)
		n += 8
	}

	if h.Masked {
		copy(hdr[n:], h.MaskKey[:])
		n += 4
	}

	c.writeMasked = h.Masked
	c.writeMask = h.MaskKey
	c.writeMaskOffset = 0

	return c.writeAll(hdr[:n])
}

// WriteMessagePayload writes payload bytes for the most recent header.
// With a mask armed, bytes are XORed with the key at the running payload
// offset before hitting the wire; p itself is left untouched. Several
// calls may follow one header. The writer does not check the cumulative
// length against the header; that contract stays with the caller.
func (c *Codec) WriteMessagePayload(p []byte) error {
	if !c.writeMasked {
		return c.writeAll(p)
	}

	var buf [maskCopySize]byte
	for len(p) > 0 {
		n := copy(buf[:], p)
		MaskBytes(buf[:n], c.writeMask, c.writeMaskOffset)
		if err := c.writeAll(buf[:n]); err != nil {
			return err
		}
		c.writeMaskOffset += uint64(n)
		p = p[n:]
	}
	return nil
}

// writeAll pushes buf to the underlying writer, insisting on full delivery.
func (c *Codec) writeAll(buf []byte) error {
	for len(buf) > 0 {
		n, err := c.w.Write(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}
