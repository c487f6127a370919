// File: client/client.go
// Package client provides a connecting WebSocket client over the streaming
// codec in package protocol.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The client owns the TCP dial, the Upgrade handshake, and a pooled
// scratch buffer, and exposes both the raw event stream of the codec and
// message-level helpers. Like the codec it wraps, a Client is
// single-threaded: reads and writes must observe a total order of calls.

package client

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-wsc/api"
	"github.com/momentics/hioload-wsc/internal/httphead"
	"github.com/momentics/hioload-wsc/pool"
	"github.com/momentics/hioload-wsc/protocol"
	"github.com/momentics/hioload-wsc/transport"
	"github.com/momentics/hioload-wsc/transport/tcp"
)

// ConnEventHandler defines lifecycle callback signatures.
type ConnEventHandler interface {
	OnConnect()
	OnClose()
	OnError(err error)
}

// Config holds all configurable parameters for the WebSocket client.
type Config struct {
	Addr        string           // WebSocket URL or bare host:port
	Headers     []httphead.Field // extra handshake headers, sent in order
	ScratchSize int              // scratch buffer size for chunked reads
	DialTimeout time.Duration    // TCP dial deadline (0 = none)
	NoDelay     bool             // disable Nagle batching on the socket
}

// DefaultScratchSize is used when Config.ScratchSize is zero.
const DefaultScratchSize = 64 * 1024

var scratchPool = pool.NewBytePool(DefaultScratchSize)

// pendingFrame is one queued outbound message awaiting Flush.
type pendingFrame struct {
	opcode  byte
	payload []byte
	fin     bool
}

// Client is a connected WebSocket client.
type Client struct {
	cfg     Config
	conn    *transport.NetConn
	codec   *protocol.Codec
	scratch []byte
	pooled  bool

	outbox *queue.Queue

	status   api.ClientStatus
	stats    api.ClientStats
	handlers []ConnEventHandler
}

// Dial connects and handshakes with default configuration.
func Dial(addr string) (*Client, error) {
	return DialWithConfig(Config{Addr: addr})
}

// DialWithConfig connects a TCP socket, performs the Upgrade handshake,
// and returns a ready client. It blocks until the handshake completes or
// fails.
func DialWithConfig(cfg Config) (*Client, error) {
	host, path, err := splitAddr(cfg.Addr)
	if err != nil {
		return nil, err
	}

	raw, err := tcp.Dial(&tcp.DialConfig{
		Addr:        host,
		DialTimeout: cfg.DialTimeout,
		NoDelay:     cfg.NoDelay,
	})
	if err != nil {
		return nil, err
	}
	conn := transport.NewNetConn(raw, scratchPool)

	scratch, pooled := acquireScratch(cfg.ScratchSize)

	codec, err := protocol.NewCodec(scratch, conn, conn)
	if err != nil {
		releaseScratch(scratch, pooled)
		conn.Close()
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		conn:    conn,
		codec:   codec,
		scratch: scratch,
		pooled:  pooled,
		outbox:  queue.New(),
		status:  api.StatusConnecting,
	}

	fields := make([]httphead.Field, 0, len(cfg.Headers)+1)
	if !hasField(cfg.Headers, "Host") {
		fields = append(fields, httphead.Field{Name: "Host", Value: host})
	}
	fields = append(fields, cfg.Headers...)

	if err := codec.Handshake(fields, path); err != nil {
		c.teardown()
		return nil, fmt.Errorf("handshake: %w", err)
	}
	c.status = api.StatusActive
	for _, h := range c.handlers {
		h.OnConnect()
	}
	return c, nil
}

// RegisterHandler adds a lifecycle event handler. If already connected,
// OnConnect fires immediately.
func (c *Client) RegisterHandler(h ConnEventHandler) {
	c.handlers = append(c.handlers, h)
	if c.status == api.StatusActive {
		h.OnConnect()
	}
}

// ReadEvent pulls the next codec event, keeping traffic counters current.
// Chunk data borrows the client's scratch buffer and is invalidated by the
// next call.
func (c *Client) ReadEvent() (protocol.Event, error) {
	if c.status != api.StatusActive {
		return protocol.Event{}, api.ErrNotConnected
	}
	ev, err := c.codec.ReadEvent()
	if err != nil {
		c.notifyError(err)
		return ev, err
	}
	switch ev.Kind {
	case protocol.EventHeader:
		c.stats.FramesReceived++
	case protocol.EventChunk:
		c.stats.BytesReceived += uint64(len(ev.Data))
	case protocol.EventClosed:
		c.status = api.StatusClosing
	}
	return ev, nil
}

// ReadMessage collects the header and full payload of the next frame.
// It concatenates the chunks of exactly one frame; fragmented messages
// come back one frame at a time with Fin reporting the fragment position.
func (c *Client) ReadMessage() (protocol.FrameHeader, []byte, error) {
	ev, err := c.ReadEvent()
	if err != nil {
		return protocol.FrameHeader{}, nil, err
	}
	if ev.Kind == protocol.EventClosed {
		return protocol.FrameHeader{}, nil, api.ErrTransportClosed
	}
	if ev.Kind != protocol.EventHeader {
		return protocol.FrameHeader{}, nil, api.ErrInvalidArgument
	}
	hdr := ev.Header

	payload := make([]byte, 0, hdr.Length)
	for {
		ev, err = c.ReadEvent()
		if err != nil {
			return hdr, nil, err
		}
		if ev.Kind == protocol.EventClosed {
			return hdr, nil, api.ErrTransportClosed
		}
		payload = append(payload, ev.Data...)
		if ev.Final {
			return hdr, payload, nil
		}
	}
}

// WriteMessage sends one complete frame with a fresh mask key.
func (c *Client) WriteMessage(opcode byte, payload []byte, fin bool) error {
	if c.status != api.StatusActive && c.status != api.StatusClosing {
		return api.ErrNotConnected
	}
	key, err := c.codec.NewMaskKey()
	if err != nil {
		return err
	}
	hdr := protocol.FrameHeader{
		Fin:     fin,
		Opcode:  opcode,
		Length:  uint64(len(payload)),
		Masked:  true,
		MaskKey: key,
	}
	if err := c.codec.WriteMessageHeader(hdr); err != nil {
		c.notifyError(err)
		return err
	}
	if err := c.codec.WriteMessagePayload(payload); err != nil {
		c.notifyError(err)
		return err
	}
	c.stats.FramesSent++
	c.stats.BytesSent += uint64(len(payload))
	return nil
}

// Enqueue buffers one outbound message for a later Flush. The payload is
// copied, so the caller's slice may be reused immediately.
func (c *Client) Enqueue(opcode byte, payload []byte, fin bool) {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	c.outbox.Add(pendingFrame{opcode: opcode, payload: buf, fin: fin})
}

// Flush drains the outbound queue in order. It stops at the first write
// error, leaving the failed frame at the head of the queue.
func (c *Client) Flush() error {
	for c.outbox.Length() > 0 {
		f := c.outbox.Peek().(pendingFrame)
		if err := c.WriteMessage(f.opcode, f.payload, f.fin); err != nil {
			return err
		}
		c.outbox.Remove()
	}
	return nil
}

// Pending reports the number of frames waiting in the outbound queue.
func (c *Client) Pending() int {
	return c.outbox.Length()
}

// Ping sends a ping frame with the given application data.
func (c *Client) Ping(data []byte) error {
	return c.WriteMessage(protocol.OpcodePing, data, true)
}

// Pong sends a pong frame. The codec never auto-replies to pings; callers
// that want RFC-conformant keepalive answer surfaced pings with this.
func (c *Client) Pong(data []byte) error {
	return c.WriteMessage(protocol.OpcodePong, data, true)
}

// CloseWithCode sends a close frame carrying code and reason if the client
// is active, then tears the connection down.
func (c *Client) CloseWithCode(code uint16, reason string) error {
	if c.status == api.StatusActive {
		payload := protocol.EncodeClosePayload(code, reason)
		_ = c.WriteMessage(protocol.OpcodeClose, payload, true)
	}
	return c.Close()
}

// Close tears down the connection; idempotent.
func (c *Client) Close() error {
	if c.status == api.StatusClosed {
		return nil
	}
	c.teardown()
	for _, h := range c.handlers {
		h.OnClose()
	}
	return nil
}

// Status returns the connection state.
func (c *Client) Status() api.ClientStatus {
	return c.status
}

// Stats returns a snapshot of traffic counters.
func (c *Client) Stats() api.ClientStats {
	return c.stats
}

func (c *Client) teardown() {
	c.status = api.StatusClosed
	releaseScratch(c.scratch, c.pooled)
	c.scratch = nil
	_ = c.conn.Close()
}

func (c *Client) notifyError(err error) {
	for _, h := range c.handlers {
		h.OnError(err)
	}
}

// splitAddr accepts "ws://host/path", "host:port/path", or bare
// "host:port" and returns the dial address and request path.
func splitAddr(addr string) (host, path string, err error) {
	if strings.Contains(addr, "://") {
		u, err := url.Parse(addr)
		if err != nil {
			return "", "", err
		}
		if u.Scheme != "ws" {
			return "", "", fmt.Errorf("unsupported scheme %q: %w", u.Scheme, api.ErrNotSupported)
		}
		host = u.Host
		if !strings.Contains(host, ":") {
			host += ":80"
		}
		return host, u.RequestURI(), nil
	}
	host = addr
	path = "/"
	if slash := strings.IndexByte(addr, '/'); slash >= 0 {
		host, path = addr[:slash], addr[slash:]
	}
	return host, path, nil
}

func hasField(fields []httphead.Field, name string) bool {
	for _, f := range fields {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

func acquireScratch(size int) ([]byte, bool) {
	if size == 0 || size == DefaultScratchSize {
		return scratchPool.Acquire(DefaultScratchSize), true
	}
	return make([]byte, size), false
}

func releaseScratch(buf []byte, pooled bool) {
	if pooled && buf != nil {
		scratchPool.Release(buf)
	}
}
