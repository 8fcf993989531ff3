package models

import "time"

// User represents an application account
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DateCreated  time.Time `json:"date_created"`
}

// GuestUsername is the reserved account for the passwordless demo login
const GuestUsername = "guest"

// IsGuest reports whether this is the demo account
func (u *User) IsGuest() bool {
	return u.Username == GuestUsername
}
