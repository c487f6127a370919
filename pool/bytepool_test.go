package pool

import "testing"

func TestBytePool_AcquireRelease(t *testing.T) {
	bp := NewBytePool(64)

	buf := bp.Acquire(16)
	if len(buf) != 64 {
		t.Fatalf("len = %d, want pool class 64", len(buf))
	}
	bp.Release(buf)

	again := bp.Acquire(64)
	if len(again) != 64 {
		t.Fatalf("len = %d, want 64", len(again))
	}
}

func TestBytePool_Oversize(t *testing.T) {
	bp := NewBytePool(64)

	buf := bp.Acquire(128)
	if len(buf) != 128 {
		t.Fatalf("len = %d, want 128", len(buf))
	}
	// Oversized buffers bypass the pool on release.
	bp.Release(buf)

	pooled := bp.Acquire(1)
	if cap(pooled) != 64 {
		t.Fatalf("cap = %d, want 64", cap(pooled))
	}
}
