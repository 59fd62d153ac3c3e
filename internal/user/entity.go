// AngelaMos | 2026
// entity.go

package user

import (
	"strings"
	"time"
)

type User struct {
	ID           int64     `db:"id"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	PasswordHash string    `db:"password_hash"`
	IsActive     bool      `db:"is_active"`
	IsStaff      bool      `db:"is_staff"`
	IsSuperuser  bool      `db:"is_superuser"`
	DateCreated  time.Time `db:"date_created"`
	DateUpdated  time.Time `db:"date_updated"`
}

// HasUsablePassword reports whether the account can log in. Accounts
// created through the directory carry no password.
func (u *User) HasUsablePassword() bool {
	return u.PasswordHash != ""
}

// ListFilter narrows a directory listing. A nil ID and an empty
// EmailPrefix impose no constraint.
type ListFilter struct {
	ID          *int64
	EmailPrefix string
}

func (f ListFilter) match(u *User) bool {
	if f.ID != nil && u.ID != *f.ID {
		return false
	}
	if f.EmailPrefix != "" && !strings.HasPrefix(u.Email, f.EmailPrefix) {
		return false
	}
	return true
}
