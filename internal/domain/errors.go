package domain

import (
	"fmt"
)

// RecordError reports a malformed input record. A single RecordError
// fails the whole pipeline run; nothing is partially computed. Silently
// coercing a bad record (for example an empty merchant name) would
// mis-group spending, so the run stops at the first offender.
type RecordError struct {
	Record string // "transaction" or "offer"
	ID     string // ID of the offending record, if it has one
	Field  string
	Reason string
}

func (e *RecordError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: field %q %s", e.Record, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: field %q %s", e.Record, e.ID, e.Field, e.Reason)
}
