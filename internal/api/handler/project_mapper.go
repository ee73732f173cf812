package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
	"github.com/LSiluvaiSiprin/ReCon/internal/core/ports"
)

// dateLayouts are tried in order: HTML date inputs first, then RFC 3339.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// --- Request → Service input ---

func toCreateProjectInput(req createProjectRequest, clientID string) (ports.CreateProjectInput, error) {
	from, err := parseDate("deadlineFrom", req.DeadlineFrom)
	if err != nil {
		return ports.CreateProjectInput{}, err
	}
	to, err := parseDate("deadlineTo", req.DeadlineTo)
	if err != nil {
		return ports.CreateProjectInput{}, err
	}

	return ports.CreateProjectInput{
		Title:        req.Title,
		Description:  req.Description,
		ClientID:     clientID,
		ClientName:   req.ClientName,
		ClientEmail:  req.ClientEmail,
		Service:      req.Service,
		Budget:       req.Budget.Ptr(),
		DeadlineFrom: from,
		DeadlineTo:   to,
	}, nil
}

func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD or RFC 3339)", field)
}

// projectFilter reads the optional status and service query parameters.
func projectFilter(c echo.Context) domain.ProjectFilter {
	return domain.ProjectFilter{
		Status:  domain.ProjectStatus(strings.TrimSpace(c.QueryParam("status"))),
		Service: strings.TrimSpace(c.QueryParam("service")),
	}
}
