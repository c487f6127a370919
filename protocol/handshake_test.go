package protocol_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/momentics/hioload-wsc/internal/httphead"
	"github.com/momentics/hioload-wsc/protocol"
)

// stubKey is the deterministic 8-byte entropy used across handshake tests;
// base64 of 00..07 is "AAECAwQFBgc=".
var stubKey = []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}

const encodedStubKey = "AAECAwQFBgc="

func handshakeCodec(t *testing.T, response string, out *bytes.Buffer) *protocol.Codec {
	t.Helper()
	c, err := protocol.NewCodec(make([]byte, 64), strings.NewReader(response), out)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	c.SetEntropy(bytes.NewReader(stubKey))
	return c
}

func acceptFor(key string) string {
	return protocol.ComputeAcceptKey(key)
}

// TestHandshake_Success covers the full happy path, the exact request
// bytes, and the handshaken flag.
func TestHandshake_Success(t *testing.T) {
	response := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + acceptFor(encodedStubKey) + "\r\n" +
		"\r\n"

	var out bytes.Buffer
	c := handshakeCodec(t, response, &out)

	headers := []httphead.Field{
		{Name: "Host", Value: "example.com"},
		{Name: "Origin", Value: "http://example.com"},
	}
	if err := c.Handshake(headers, "/chat"); err != nil {
		t.Fatalf("Handshake: %v", err)
	}
	if !c.Handshaken() {
		t.Error("handshaken flag not set")
	}

	wantRequest := "GET /chat HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Origin: http://example.com\r\n" +
		"Connection: Upgrade\r\n" +
		"Upgrade: websocket\r\n" +
		"Sec-WebSocket-Version: 13\r\n" +
		"Sec-WebSocket-Key: " + encodedStubKey + "\r\n" +
		"\r\n"
	if out.String() != wantRequest {
		t.Errorf("request:\n%q\nwant:\n%q", out.String(), wantRequest)
	}
}

// TestHandshake_FrameAfterResponse checks the response parser stops at the
// head's blank line so a frame following it is read intact.
func TestHandshake_FrameAfterResponse(t *testing.T) {
	response := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + acceptFor(encodedStubKey) + "\r\n" +
		"\r\n" +
		"\x82\x02hi"

	var out bytes.Buffer
	c := handshakeCodec(t, response, &out)
	if err := c.Handshake(nil, "/"); err != nil {
		t.Fatalf("Handshake: %v", err)
	}

	ev, err := c.ReadEvent()
	if err != nil || ev.Kind != protocol.EventHeader || ev.Header.Length != 2 {
		t.Fatalf("post-handshake header: ev=%+v err=%v", ev, err)
	}
	ev, err = c.ReadEvent()
	if err != nil || string(ev.Data) != "hi" || !ev.Final {
		t.Fatalf("post-handshake chunk: ev=%+v err=%v", ev, err)
	}
}

// TestHandshake_HeaderCaseInsensitive accepts any case variant of the
// significant response headers and values.
func TestHandshake_HeaderCaseInsensitive(t *testing.T) {
	response := "HTTP/1.1 101 Switching Protocols\r\n" +
		"CONNECTION: UPGRADE\r\n" +
		"sec-websocket-accept: " + acceptFor(encodedStubKey) + "\r\n" +
		"\r\n"

	var out bytes.Buffer
	c := handshakeCodec(t, response, &out)
	if err := c.Handshake(nil, "/"); err != nil {
		t.Fatalf("Handshake: %v", err)
	}
}

// TestHandshake_Failures drives each terminal handshake error.
func TestHandshake_Failures(t *testing.T) {
	accept := acceptFor(encodedStubKey)
	corrupted := "x" + accept[1:]

	tests := []struct {
		name     string
		response string
		want     error
	}{
		{
			name: "wrong status",
			response: "HTTP/1.1 200 OK\r\n" +
				"Connection: Upgrade\r\n" +
				"Sec-WebSocket-Accept: " + accept + "\r\n\r\n",
			want: protocol.ErrWrongResponse,
		},
		{
			name:     "garbage status line",
			response: "ICY 200 OK\r\n\r\n",
			want:     protocol.ErrWrongResponse,
		},
		{
			name: "bad connection value",
			response: "HTTP/1.1 101 Switching Protocols\r\n" +
				"Connection: keep-alive\r\n" +
				"Sec-WebSocket-Accept: " + accept + "\r\n\r\n",
			want: protocol.ErrInvalidConnectionHeader,
		},
		{
			name: "missing connection header",
			response: "HTTP/1.1 101 Switching Protocols\r\n" +
				"Sec-WebSocket-Accept: " + accept + "\r\n\r\n",
			want: protocol.ErrInvalidConnectionHeader,
		},
		{
			name: "corrupted accept",
			response: "HTTP/1.1 101 Switching Protocols\r\n" +
				"Connection: Upgrade\r\n" +
				"Sec-WebSocket-Accept: " + corrupted + "\r\n\r\n",
			want: protocol.ErrFailedChallenge,
		},
		{
			name: "missing accept",
			response: "HTTP/1.1 101 Switching Protocols\r\n" +
				"Connection: Upgrade\r\n\r\n",
			want: protocol.ErrFailedChallenge,
		},
		{
			name:     "closed mid-response",
			response: "HTTP/1.1 101 Switching Protocols\r\nConnection: Upgra",
			want:     protocol.ErrConnectionClosed,
		},
		{
			name:     "closed before response",
			response: "",
			want:     protocol.ErrConnectionClosed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := handshakeCodec(t, tt.response, &out)
			err := c.Handshake(nil, "/")
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if c.Handshaken() {
				t.Error("handshaken must stay false on failure")
			}
		})
	}
}

// TestHandshake_IgnoresUnrelatedHeaders lets arbitrary extra headers pass.
func TestHandshake_IgnoresUnrelatedHeaders(t *testing.T) {
	response := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Server: test/1.0\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Protocol: chat\r\n" +
		"Sec-WebSocket-Accept: " + acceptFor(encodedStubKey) + "\r\n" +
		"X-Extra: 1\r\n" +
		"\r\n"

	var out bytes.Buffer
	c := handshakeCodec(t, response, &out)
	if err := c.Handshake(nil, "/"); err != nil {
		t.Fatalf("Handshake: %v", err)
	}
}

// TestComputeAcceptKey pins the challenge digest against the RFC 6455
// Section 1.3 worked example.
func TestComputeAcceptKey(t *testing.T) {
	got := protocol.ComputeAcceptKey("dGhlIHNhbXBsZSBub25jZQ==")
	want := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	if got != want {
		t.Errorf("accept = %q, want %q", got, want)
	}
}
