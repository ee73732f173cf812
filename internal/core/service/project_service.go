package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/ports"
)

type ProjectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	cache    ports.StatsCache
	logger   zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, users ports.UserRepository, cache ports.StatsCache, logger zerolog.Logger) *ProjectService {
	if cache == nil {
		cache = noopStatsCache{}
	}
	return &ProjectService{projects: projects, users: users, cache: cache, logger: logger}
}

// Create validates the request, resolves the client and stores a new pending
// project. Blank client name and email are copied from the client's account.
func (s *ProjectService) Create(ctx context.Context, in ports.CreateProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	project := &domain.Project{
		Title:        in.Title,
		Description:  in.Description,
		ClientID:     strings.TrimSpace(in.ClientID),
		ClientName:   strings.TrimSpace(in.ClientName),
		ClientEmail:  strings.TrimSpace(in.ClientEmail),
		Service:      strings.TrimSpace(in.Service),
		Status:       domain.StatusPending,
		Priority:     domain.PriorityMedium,
		Budget:       in.Budget,
		DeadlineFrom: in.DeadlineFrom,
		DeadlineTo:   in.DeadlineTo,
		AssignedTeam: []domain.TeamMember{},
		Documents:    []domain.Document{},
		Notes:        []domain.Note{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	if project.ClientID == "" {
		return nil, domain.ValidationErrorf("client is required")
	}

	client, err := s.users.FindByID(ctx, project.ClientID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ValidationErrorf("client %s does not exist", project.ClientID)
	}
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if project.ClientName == "" {
		project.ClientName = client.Username
	}
	if project.ClientEmail == "" {
		project.ClientEmail = client.Email
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	s.invalidateStats(ctx)

	s.logger.Info().
		Str("project_id", project.ID).
		Str("client_id", project.ClientID).
		Str("service", project.Service).
		Msg("project created")
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

// ListAll returns every project joined with its owner's summary.
func (s *ProjectService) ListAll(ctx context.Context, filter domain.ProjectFilter) ([]*domain.Project, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	filter.ClientID = ""
	filter.WithClient = true
	return s.projects.List(ctx, filter)
}

func (s *ProjectService) ListByClient(ctx context.Context, clientID string, filter domain.ProjectFilter) ([]*domain.Project, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	filter.ClientID = clientID
	filter.WithClient = false
	return s.projects.List(ctx, filter)
}

// UpdateStatus sets the status, optionally overwrites progress and appends a
// note authored by "Admin" when the trimmed text is not blank.
func (s *ProjectService) UpdateStatus(ctx context.Context, in ports.UpdateStatusInput) (*domain.Project, error) {
	status := domain.ProjectStatus(strings.TrimSpace(in.Status))
	if !status.Valid() {
		return nil, domain.ValidationErrorf("status must be one of: pending, in-progress, completed, cancelled")
	}
	if in.Progress != nil {
		if err := domain.ValidateProgress(*in.Progress); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	update := domain.StatusUpdate{Status: status, Progress: in.Progress, UpdatedAt: now}
	if text := strings.TrimSpace(in.Note); text != "" {
		update.Note = &domain.Note{Content: text, Author: domain.NoteAuthorAdmin, Date: now}
	}

	project, err := s.projects.UpdateStatus(ctx, in.ID, update)
	if err != nil {
		return nil, err
	}
	s.invalidateStats(ctx)

	s.logger.Info().
		Str("project_id", project.ID).
		Str("status", string(project.Status)).
		Int("progress", project.Progress).
		Msg("project status updated")
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateStats(ctx)
	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

// Stats serves the dashboard counts from cache when present, otherwise
// counts concurrently and refreshes the cache.
func (s *ProjectService) Stats(ctx context.Context) (*domain.Stats, error) {
	cached, generation, cacheErr := s.cache.Get(ctx)
	if cacheErr != nil {
		s.logger.Warn().Err(cacheErr).Msg("stats cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	stats, err := s.countStats(ctx)
	if err != nil {
		return nil, err
	}
	if cacheErr != nil {
		return stats, nil
	}
	if err := s.cache.Set(ctx, generation, stats); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache write failed")
	}
	return stats, nil
}

func (s *ProjectService) countStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int64, status domain.ProjectStatus) {
		g.Go(func() error {
			n, err := s.projects.CountByStatus(gctx, status)
			*dst = n
			return err
		})
	}
	count(&stats.TotalProjects, "")
	count(&stats.PendingProjects, domain.StatusPending)
	count(&stats.InProgressProjects, domain.StatusInProgress)
	count(&stats.CompletedProjects, domain.StatusCompleted)

	g.Go(func() error {
		n, err := s.users.CountByRole(gctx, domain.RoleUser)
		stats.TotalUsers = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("count stats: %w", err)
	}
	return &stats, nil
}

func (s *ProjectService) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}

func validateFilter(filter domain.ProjectFilter) error {
	if filter.Status != "" && !filter.Status.Valid() {
		return domain.ValidationErrorf("unknown status filter %q", filter.Status)
	}
	if filter.Service != "" && !domain.IsValidService(filter.Service) {
		return domain.ValidationErrorf("unknown service filter %q", filter.Service)
	}
	return nil
}

type noopStatsCache struct{}

func (noopStatsCache) Get(context.Context) (*domain.Stats, int64, error) { return nil, 0, nil }
func (noopStatsCache) Set(context.Context, int64, *domain.Stats) error   { return nil }
func (noopStatsCache) Invalidate(context.Context) error                  { return nil }
