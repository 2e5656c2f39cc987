package audit

import (
	"context"
)

// Logger is the audit collaborator. Callers log and swallow its errors:
// an audit failure never rolls back the primary mutation.
type Logger interface {
	Record(ctx context.Context, e Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}
