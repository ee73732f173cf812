package ports

import (
	"context"
	"time"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
)

// CreateProjectInput is the DTO passed from the transport layer to ProjectService.
type CreateProjectInput struct {
	Title        string
	Description  string
	ClientID     string
	ClientName   string
	ClientEmail  string
	Service      string
	Budget       *float64
	DeadlineFrom *time.Time
	DeadlineTo   *time.Time
}

// UpdateStatusInput carries an admin status change. Progress is optional and
// a blank Note appends nothing.
type UpdateStatusInput struct {
	ID       string
	Status   string
	Progress *int
	Note     string
}

type ProjectService interface {
	Create(ctx context.Context, in CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	ListAll(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error)
	ListByClient(ctx context.Context, clientID string, filter domain.ProjectFilter) ([]*domain.Project, error)
	UpdateStatus(ctx context.Context, in UpdateStatusInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.Stats, error)
}
