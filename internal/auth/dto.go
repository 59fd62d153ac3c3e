// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type RegisterRequest struct {
	FirstName       string `json:"first_name"       validate:"max=30"`
	LastName        string `json:"last_name"        validate:"max=30"`
	Email           string `json:"email"            validate:"omitempty,email,max=254"`
	Phone           string `json:"phone"            validate:"max=15"`
	Password        string `json:"password"         validate:"max=128"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r RegisterRequest) complete() bool {
	return r.FirstName != "" &&
		r.LastName != "" &&
		r.Email != "" &&
		r.Phone != "" &&
		r.Password != ""
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RegisterResponse is the new account merged with its first token pair.
type RegisterResponse struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	DateCreated time.Time `json:"date_created"`
	DateUpdated time.Time `json:"date_updated"`
	Access      string    `json:"access"`
	Refresh     string    `json:"refresh"`
}
