// internal/wizard/store.go
package wizard

import "context"

// Store persists in-progress sessions between interactions. A given session
// is only ever touched by one interaction at a time, but the store itself
// must be safe for concurrent use by independent sessions.
type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Put(ctx context.Context, session Session) error
	Delete(ctx context.Context, id string) error
}
