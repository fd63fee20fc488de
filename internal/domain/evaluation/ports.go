package evaluation

import "context"

// RunRepository defines persistence operations for evaluation runs
type RunRepository interface {
	// Save persists a run and its per-blueprint outcomes
	Save(ctx context.Context, run *Run) error

	// FindByID retrieves a run by id, returning *ErrRunNotFound if absent
	FindByID(ctx context.Context, id string) (*Run, error)

	// List returns the most recent runs first
	List(ctx context.Context, opts ListOptions) ([]*Run, error)
}

// ListOptions filters and paginates run listings
type ListOptions struct {
	// Mode restricts results to one aggregation mode when non-empty
	Mode string

	Limit  int
	Offset int
}

// DefaultListOptions returns the listing defaults used by the CLI
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 20}
}
