// Package pool
// Author: momentics <momentics@gmail.com>
//
// Buffer pooling for hioload-wsc. Supplies reusable scratch buffers so a
// caller can run one codec per connection without per-connection
// allocations. See bytepool.go for implementation details.
package pool
