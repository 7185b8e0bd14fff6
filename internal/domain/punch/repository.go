package punch

import (
	"context"
	"time"
)

// PunchRepository defines access to raw biometric punches.
type PunchRepository interface {
	// CreateBatch inserts a batch of ingested punches.
	CreateBatch(ctx context.Context, punches []Punch) error

	// ListByDate retrieves all punches for a date regardless of the
	// processed flag, ordered by biometric code then clock time
	// ascending. The evening run needs the morning run's punches, so
	// the flag never filters reads.
	ListByDate(ctx context.Context, date time.Time) ([]Punch, error)

	// MarkProcessed flags the given punches processed in one statement.
	MarkProcessed(ctx context.Context, ids []string) error
}
