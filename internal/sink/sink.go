// internal/sink/sink.go
package sink

import (
	"context"
	"errors"
	"fmt"
)

// RowSink is the contract of the external append-only row store. Rows from
// independent sessions may interleave in any order; a single submission's
// retries are strictly sequential.
type RowSink interface {
	// AppendRow appends one ordered row of scalar fields.
	AppendRow(ctx context.Context, values []interface{}) error
	// Name identifies the backend for logs and metrics.
	Name() string
}

// TransientError marks a sink failure worth retrying (I/O, rate limits,
// upstream 5xx). Anything not wrapped in it is treated as permanent.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient sink error: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a retryable sink failure.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
