package handler

import "github.com/LSiluvaiSiprin/ReCon/internal/core/domain"

type profileRequest struct {
	FirstName string `json:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" validate:"max=50"`
	Phone     string `json:"phone" validate:"max=30"`
	Address   string `json:"address" validate:"max=200"`
	City      string `json:"city" validate:"max=100"`
	State     string `json:"state" validate:"max=100"`
	ZipCode   string `json:"zipCode" validate:"max=20"`
}

// updateUserRequest accepts only the self-service fields; password, role and
// email in the payload are ignored.
type updateUserRequest struct {
	Username *string        `json:"username" validate:"omitempty,min=1,max=50"`
	Profile  *profileRequest `json:"profile"`
}

type userEnvelope struct {
	Msg  string       `json:"msg"`
	User *domain.User `json:"user"`
}

type toggleUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`
}

type toggleResponse struct {
	Msg  string     `json:"msg"`
	User toggleUser `json:"user"`
}

func (r updateUserRequest) toUpdate() domain.ProfileUpdate {
	update := domain.ProfileUpdate{Username: r.Username}
	if r.Profile != nil {
		update.Profile = &domain.Profile{
			FirstName: r.Profile.FirstName,
			LastName:  r.Profile.LastName,
			Phone:     r.Profile.Phone,
			Address:   r.Profile.Address,
			City:      r.Profile.City,
			State:     r.Profile.State,
			ZipCode:   r.Profile.ZipCode,
		}
	}
	return update
}
