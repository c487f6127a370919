// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>

package pool

import "sync"

// BytePool hands out fixed-size byte buffers backed by sync.Pool.
// Implements api.BytePool.
type BytePool struct {
	size int
	p    sync.Pool
}

// NewBytePool creates a pool of buffers of the given size.
func NewBytePool(size int) *BytePool {
	bp := &BytePool{size: size}
	bp.p.New = func() any {
		return make([]byte, size)
	}
	return bp
}

// Acquire returns a buffer of at least n bytes. Requests larger than the
// pool's class fall back to a plain allocation.
func (b *BytePool) Acquire(n int) []byte {
	if n > b.size {
		return make([]byte, n)
	}
	return b.p.Get().([]byte)[:b.size]
}

// Release returns a buffer to the pool. Oversized buffers are dropped and
// left to the GC.
func (b *BytePool) Release(buf []byte) {
	if cap(buf) != b.size {
		return
	}
	b.p.Put(buf[:b.size])
}
