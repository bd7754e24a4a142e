// Package lifecycle holds shared limits for start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every shutdown step.
const DefaultTimeout = 10 * time.Second
