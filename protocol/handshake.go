// File: protocol/handshake.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Client side of the RFC 6455 opening handshake: composes the HTTP/1.1
// Upgrade request, consumes the response head, and verifies the
// Sec-WebSocket-Accept challenge.

package protocol

import (
	"crypto/sha1"
	"encoding/base64"
	"io"
	"strings"

	"github.com/momentics/hioload-wsc/internal/httphead"
)

const (
	headerConnection = "connection"
	headerAccept     = "sec-websocket-accept"

	valueUpgrade = "upgrade"
)

// ComputeAcceptKey derives the Sec-WebSocket-Accept value for an encoded
// client key, per RFC 6455 Section 1.3.
func ComputeAcceptKey(encodedKey string) string {
	hash := sha1.Sum([]byte(encodedKey + WebSocketGUID))
	return base64.StdEncoding.EncodeToString(hash[:])
}

// Handshake performs the client Upgrade exchange on the codec's stream.
//
// The request carries the caller's header fields first, in order, followed
// by Connection, Upgrade, Sec-WebSocket-Version and a freshly generated
// Sec-WebSocket-Key. The caller supplies Host and any Origin, subprotocol,
// or authorization fields it needs.
//
// The response is accepted iff the status is 101, the Connection value
// case-insensitively equals "upgrade", and Sec-WebSocket-Accept matches
// the challenge digest of the sent key. The Upgrade response header and
// subprotocol negotiation are not validated. On success Handshaken
// becomes true; every failure is terminal.
func (c *Codec) Handshake(headers []httphead.Field, path string) error {
	var raw [8]byte
	if _, err := io.ReadFull(c.entropy, raw[:]); err != nil {
		return err
	}
	encodedKey := base64.StdEncoding.EncodeToString(raw[:])

	fields := make([]httphead.Field, 0, len(headers)+4)
	fields = append(fields, headers...)
	fields = append(fields,
		httphead.Field{Name: "Connection", Value: "Upgrade"},
		httphead.Field{Name: "Upgrade", Value: "websocket"},
		httphead.Field{Name: "Sec-WebSocket-Version", Value: "13"},
		httphead.Field{Name: "Sec-WebSocket-Key", Value: encodedKey},
	)
	if err := httphead.WriteRequestHead(c.w, "GET", path, fields); err != nil {
		return err
	}

	expected := ComputeAcceptKey(encodedKey)
	upgradeSeen := false
	acceptSeen := false

	parser := httphead.NewParser(c.r)
	for {
		ev, err := parser.Next()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case httphead.EventStatus:
			if ev.Code != 101 {
				return ErrWrongResponse
			}
		case httphead.EventHeader:
			switch strings.ToLower(ev.Name) {
			case headerConnection:
				upgradeSeen = true
				if !strings.EqualFold(ev.Value, valueUpgrade) {
					return ErrInvalidConnectionHeader
				}
			case headerAccept:
				acceptSeen = true
				if ev.Value != expected {
					return ErrFailedChallenge
				}
			}
		case httphead.EventInvalid:
			return ErrWrongResponse
		case httphead.EventClosed:
			return ErrConnectionClosed
		case httphead.EventEnd:
			if !upgradeSeen {
				return ErrInvalidConnectionHeader
			}
			if !acceptSeen {
				return ErrFailedChallenge
			}
			c.handshaken = true
			return nil
		}
	}
}
