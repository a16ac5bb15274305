// Package lifecycle holds shared settings for start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start hooks (store ping, index creation) and graceful shutdown.
const DefaultTimeout = 10 * time.Second
