package ports

import (
	"context"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
)

// ProjectRepository defines persistence for the project store.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns matching projects newest first.
	List(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error)
	// UpdateStatus applies the update in one find-and-modify and returns the new document.
	UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	// CountByStatus counts projects in status; an empty status counts all.
	CountByStatus(ctx context.Context, status domain.ProjectStatus) (int64, error)
}

// StatsCache holds the last computed dashboard counts.
//
// Every Invalidate bumps a generation. Get reports the current generation
// with the cached counts (nil on a miss) and Set stores counts under the
// generation they were computed in, so counts taken before an Invalidate are
// never served after it.
type StatsCache interface {
	Get(ctx context.Context) (stats *domain.Stats, generation int64, err error)
	Set(ctx context.Context, generation int64, stats *domain.Stats) error
	Invalidate(ctx context.Context) error
}
