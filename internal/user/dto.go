// AngelaMos | 2026
// dto.go

package user

import (
	"encoding/json"
	"time"
)

// ActionRequest is the JSON body accepted by the write verbs of the
// directory endpoint. Absent string fields decode as empty and leave the
// stored value untouched on update.
type ActionRequest struct {
	Action    *string     `json:"action"`
	ID        json.Number `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
}

type CreateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name"  validate:"required,max=30"`
	Email     string `json:"email"      validate:"required,email,max=254"`
	Phone     string `json:"phone"      validate:"required,max=15"`
}

type UpdateUserRequest struct {
	FirstName string `json:"first_name" validate:"max=30"`
	LastName  string `json:"last_name"  validate:"max=30"`
	Email     string `json:"email"      validate:"omitempty,email,max=254"`
	Phone     string `json:"phone"      validate:"max=15"`
}

func (r ActionRequest) toCreate() CreateUserRequest {
	return CreateUserRequest{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

func (r ActionRequest) toUpdate() UpdateUserRequest {
	return UpdateUserRequest{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

type UserResponse struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Phone:       u.Phone,
		DateCreated: u.DateCreated,
		DateUpdated: u.DateUpdated,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
