package handler

import "github.com/LSiluvaiSiprin/ReCon/internal/core/domain"

// --- Request / Response types ---

type createProjectRequest struct {
	Title        string        `json:"title" validate:"required,max=100"`
	Description  string        `json:"description" validate:"required,max=500"`
	ClientID     string        `json:"clientId"`
	ClientName   string        `json:"clientName" validate:"max=100"`
	ClientEmail  string        `json:"clientEmail" validate:"omitempty,email"`
	Service      string        `json:"service" validate:"required"`
	Budget       flexibleFloat `json:"budget" swaggertype:"number" validate:"omitempty,gte=0"`
	DeadlineFrom string        `json:"deadlineFrom"`
	DeadlineTo   string        `json:"deadlineTo"`
}

type updateStatusRequest struct {
	Status   string `json:"status" validate:"required,oneof=pending in-progress completed cancelled"`
	Progress *int   `json:"progress" validate:"omitempty,min=0,max=100"`
	Notes    string `json:"notes" validate:"max=1000"`
}

type projectEnvelope struct {
	Msg     string          `json:"msg"`
	Project *domain.Project `json:"project"`
}
