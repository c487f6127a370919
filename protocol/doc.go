// Package protocol
// Author: momentics <momentics@gmail.com>
//
// Implements the client-side WebSocket wire protocol (RFC 6455) for
// hioload-wsc as a streaming, allocation-free codec.
//
// The codec operates over a caller-supplied reader/writer pair and a single
// caller-owned scratch buffer. Payloads of unbounded size are delivered in
// chunks bounded by the scratch buffer; the parser is resumable between any
// two byte reads and never buffers a whole message.
//
// Includes:
//   - HTTP/1.1 Upgrade handshake with Sec-WebSocket-Accept verification
//   - Frame header encoding/decoding with all three length forms
//   - Offset-correct XOR masking across chunk boundaries
//   - Close payload encode/decode helpers
package protocol
