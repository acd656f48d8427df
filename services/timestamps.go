package services

import "time"

// timestampLayout is RFC3339 with fixed nine-digit fractional seconds.
// RFC3339Nano trims trailing zeros, so its output does not order
// lexicographically across second boundaries.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func nowTimestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}
