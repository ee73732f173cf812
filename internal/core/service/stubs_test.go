package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type memUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	seq       int
	createErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("%024x", r.seq)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Profile != nil {
		p := *update.Profile
		u.Profile = &p
	}
	u.UpdatedAt = time.Now().UTC()
	out := *u
	return &out, nil
}

func (r *memUserRepo) ToggleActive(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.IsActive = !u.IsActive
	out := *u
	return &out, nil
}

func (r *memUserRepo) List(_ context.Context, filter domain.UserFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Active != nil && u.IsActive != *filter.Active {
			continue
		}
		if q := strings.ToLower(filter.Search); q != "" &&
			!strings.Contains(strings.ToLower(u.Username), q) && !strings.Contains(u.Email, q) {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type memProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*domain.Project
	seq      int
	countErr error
	counts   int
}

func newMemProjectRepo() *memProjectRepo {
	return &memProjectRepo{projects: make(map[string]*domain.Project)}
}

func cloneProject(p *domain.Project) *domain.Project {
	out := *p
	out.Notes = append([]domain.Note{}, p.Notes...)
	return &out
}

func (r *memProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = fmt.Sprintf("%024x", 0x1000+r.seq)
	r.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *memProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *memProjectRepo) List(_ context.Context, filter domain.ProjectFilter) ([]*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		if filter.ClientID != "" && p.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Service != "" && p.Service != filter.Service {
			continue
		}
		clone := cloneProject(p)
		if filter.WithClient {
			clone.ClientUser = &domain.ClientSummary{ID: p.ClientID}
		}
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memProjectRepo) UpdateStatus(_ context.Context, id string, update domain.StatusUpdate) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	p.Status = update.Status
	if update.Progress != nil {
		p.Progress = *update.Progress
	}
	if update.Note != nil {
		p.Notes = append(p.Notes, *update.Note)
	}
	p.UpdatedAt = update.UpdatedAt
	return cloneProject(p), nil
}

func (r *memProjectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *memProjectRepo) CountByStatus(_ context.Context, status domain.ProjectStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts++
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, p := range r.projects {
		if status == "" || p.Status == status {
			n++
		}
	}
	return n, nil
}

type memStatsCache struct {
	mu          sync.Mutex
	stats       *domain.Stats
	storedGen   int64
	generation  int64
	invalidated int
	// beforeSet runs ahead of every Set, outside the lock.
	beforeSet func()
}

func (c *memStatsCache) Get(context.Context) (*domain.Stats, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil || c.storedGen != c.generation {
		return nil, c.generation, nil
	}
	out := *c.stats
	return &out, c.generation, nil
}

func (c *memStatsCache) Set(_ context.Context, generation int64, s *domain.Stats) error {
	if c.beforeSet != nil {
		c.beforeSet()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := *s
	c.stats = &out
	c.storedGen = generation
	return nil
}

func (c *memStatsCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = nil
	c.generation++
	c.invalidated++
	return nil
}

// ---------------------------------------------------------------------------
// Token stubs
// ---------------------------------------------------------------------------

type stubIssuer struct{}

func (stubIssuer) Issue(u *domain.User) (string, time.Time, error) {
	return "token-" + u.ID, time.Now().Add(time.Hour), nil
}

type stubRevoker struct {
	revoked map[string]time.Duration
}

func (r *stubRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if r.revoked == nil {
		r.revoked = make(map[string]time.Duration)
	}
	r.revoked[id] = ttl
	return nil
}

type stubSessionRevoker struct {
	users map[string]time.Duration
	err   error
}

func (r *stubSessionRevoker) RevokeUser(_ context.Context, userID string, _ time.Time, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	if r.users == nil {
		r.users = make(map[string]time.Duration)
	}
	r.users[userID] = ttl
	return nil
}
