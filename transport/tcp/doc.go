// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package tcp implements the client-side TCP dialer for hioload-wsc with
// low-latency socket tuning. Platform-specific tuning is separated by
// build tags.
package tcp
