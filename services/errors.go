package services

import "errors"

// ErrFutureTimestamp is returned when a meal or weight sample is dated
// strictly after the current instant. The policy rejects instead of clamping
// so the client can tell the user rather than silently moving the entry.
var ErrFutureTimestamp = errors.New("timestamp is in the future")

// ErrNotFound is returned when a record does not exist or belongs to another
// user. Ownership mismatches are indistinguishable from absence on purpose.
var ErrNotFound = errors.New("record not found")
