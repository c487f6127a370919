package protocol_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/momentics/hioload-wsc/protocol"
)

// TestNewCodec_ScratchBound rejects scratch buffers below the minimum.
func TestNewCodec_ScratchBound(t *testing.T) {
	_, err := protocol.NewCodec(make([]byte, protocol.MinScratchSize-1), bytes.NewReader(nil), io.Discard)
	if !errors.Is(err, protocol.ErrScratchTooSmall) {
		t.Fatalf("err = %v, want ErrScratchTooSmall", err)
	}

	c, err := protocol.NewCodec(make([]byte, protocol.MinScratchSize), bytes.NewReader(nil), io.Discard)
	if err != nil || c == nil {
		t.Fatalf("minimum scratch rejected: %v", err)
	}
}

// TestNewMaskKey_Deterministic draws keys from a stubbed entropy stream.
func TestNewMaskKey_Deterministic(t *testing.T) {
	c, err := protocol.NewCodec(make([]byte, 16), bytes.NewReader(nil), io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	c.SetEntropy(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8}))

	key, err := c.NewMaskKey()
	if err != nil {
		t.Fatal(err)
	}
	if key != [4]byte{1, 2, 3, 4} {
		t.Errorf("key = %v", key)
	}
	key, err = c.NewMaskKey()
	if err != nil {
		t.Fatal(err)
	}
	if key != [4]byte{5, 6, 7, 8} {
		t.Errorf("key = %v", key)
	}

	if _, err = c.NewMaskKey(); err == nil {
		t.Error("exhausted entropy should error")
	}
}

// TestClosePayload covers encode/decode including the degenerate payloads.
func TestClosePayload(t *testing.T) {
	p := protocol.EncodeClosePayload(protocol.CloseGoingAway, "bye")
	if !bytes.Equal(p, []byte{0x03, 0xE9, 'b', 'y', 'e'}) {
		t.Errorf("payload = % X", p)
	}

	code, reason := protocol.DecodeClosePayload(p)
	if code != protocol.CloseGoingAway || reason != "bye" {
		t.Errorf("decoded %d %q", code, reason)
	}

	code, reason = protocol.DecodeClosePayload(nil)
	if code != protocol.CloseNoStatusRcvd || reason != "" {
		t.Errorf("empty payload: %d %q", code, reason)
	}

	code, _ = protocol.DecodeClosePayload([]byte{0x01})
	if code != protocol.CloseProtocolError {
		t.Errorf("1-byte payload: %d", code)
	}
}
