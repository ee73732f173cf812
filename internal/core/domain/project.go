package domain

import (
	"errors"
	"strings"
	"time"
)

// ProjectStatus represents where a project stands. Any status may follow any other.
type ProjectStatus string

const (
	StatusPending    ProjectStatus = "pending"
	StatusInProgress ProjectStatus = "in-progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusCancelled  ProjectStatus = "cancelled"
)

var projectStatuses = []ProjectStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	for _, known := range projectStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Services offered by the company. A project must name exactly one.
const (
	ServiceResidentialConstruction = "Residential Construction"
	ServiceCommercialConstruction  = "Commercial Construction"
	ServiceHomeRemodeling          = "Home Remodeling"
	ServiceInteriorDesign          = "Interior Design"
	ServiceStructuralRepairs       = "Structural Repairs"
	ServiceIndustrialProject       = "Industrial Project"
	ServiceInfrastructure          = "Infrastructure & Heavy Construction"
	ServiceRenovationProject       = "Renovation Project"
)

var services = []string{
	ServiceResidentialConstruction,
	ServiceCommercialConstruction,
	ServiceHomeRemodeling,
	ServiceInteriorDesign,
	ServiceStructuralRepairs,
	ServiceIndustrialProject,
	ServiceInfrastructure,
	ServiceRenovationProject,
}

// Services returns a copy of the offered service names.
func Services() []string {
	out := make([]string, len(services))
	copy(out, services)
	return out
}

func IsValidService(name string) bool {
	for _, s := range services {
		if s == name {
			return true
		}
	}
	return false
}

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MinProgress          = 0
	MaxProgress          = 100

	// NoteAuthorAdmin is stamped on every note appended through a status update.
	NoteAuthorAdmin = "Admin"
)

var ErrProjectNotFound = errors.New("project not found")

type TeamMember struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Contact string `json:"contact"`
}

type Document struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadDate time.Time `json:"uploadDate"`
}

// Note is an append-only remark on a project.
type Note struct {
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

// ClientSummary is the owner's public identity joined onto admin listings.
type ClientSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Project is a client's construction request and its tracking state.
// ClientName and ClientEmail are a snapshot taken at creation.
type Project struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	ClientID     string         `json:"client"`
	ClientName   string         `json:"clientName"`
	ClientEmail  string         `json:"clientEmail"`
	Service      string         `json:"service"`
	Status       ProjectStatus  `json:"status"`
	Priority     Priority       `json:"priority"`
	Budget       *float64       `json:"budget,omitempty"`
	StartDate    *time.Time     `json:"startDate,omitempty"`
	EndDate      *time.Time     `json:"endDate,omitempty"`
	DeadlineFrom *time.Time     `json:"deadlineFrom,omitempty"`
	DeadlineTo   *time.Time     `json:"deadlineTo,omitempty"`
	Progress     int            `json:"progress"`
	AssignedTeam []TeamMember   `json:"assignedTeam"`
	Documents    []Document     `json:"documents"`
	Notes        []Note         `json:"notes"`
	ClientUser   *ClientSummary `json:"clientUser,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Validate checks the fields a caller supplies at creation time.
func (p *Project) Validate() error {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)

	switch {
	case p.Title == "":
		return ValidationErrorf("title is required")
	case len([]rune(p.Title)) > MaxTitleLength:
		return ValidationErrorf("title must be at most %d characters", MaxTitleLength)
	case p.Description == "":
		return ValidationErrorf("description is required")
	case len([]rune(p.Description)) > MaxDescriptionLength:
		return ValidationErrorf("description must be at most %d characters", MaxDescriptionLength)
	case !IsValidService(p.Service):
		return ValidationErrorf("service must be one of: %s", strings.Join(services, ", "))
	case p.Budget != nil && *p.Budget < 0:
		return ValidationErrorf("budget must not be negative")
	case p.DeadlineFrom != nil && p.DeadlineTo != nil && p.DeadlineTo.Before(*p.DeadlineFrom):
		return ValidationErrorf("deadlineTo must not be before deadlineFrom")
	}
	return ValidateProgress(p.Progress)
}

func ValidateProgress(progress int) error {
	if progress < MinProgress || progress > MaxProgress {
		return ValidationErrorf("progress must be between %d and %d", MinProgress, MaxProgress)
	}
	return nil
}

// StatusUpdate is applied to a project in one atomic write.
type StatusUpdate struct {
	Status    ProjectStatus
	Progress  *int
	Note      *Note
	UpdatedAt time.Time
}

// ProjectFilter narrows project listings. WithClient joins the owner's summary.
type ProjectFilter struct {
	ClientID   string
	Status     ProjectStatus
	Service    string
	WithClient bool
}

// Stats are the dashboard counts.
type Stats struct {
	TotalProjects      int64 `json:"totalProjects"`
	PendingProjects    int64 `json:"pendingProjects"`
	InProgressProjects int64 `json:"inProgressProjects"`
	CompletedProjects  int64 `json:"completedProjects"`
	TotalUsers         int64 `json:"totalUsers"`
}
