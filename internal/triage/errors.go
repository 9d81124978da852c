package triage

import "errors"

// ErrNotFound is returned when a referenced item filename or approval id
// does not resolve to an existing document. Callers surface it as a 404;
// it is never retried.
var ErrNotFound = errors.New("not found")
