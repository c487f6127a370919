// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values shared across the hioload-wsc library.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrTransportClosed = fmt.Errorf("transport is closed")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrNotConnected    = fmt.Errorf("client is not connected")
	ErrNotSupported    = fmt.Errorf("operation not supported")
)
