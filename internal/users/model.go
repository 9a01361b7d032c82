package users

import "time"

// User is an employer account.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	PasswordHash       string    `json:"-"`
	GoogleSub          string    `json:"-"`
	GoogleRefreshToken string    `json:"-"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// GmailConnected reports whether the user granted offline Gmail access.
func (u User) GmailConnected() bool {
	return u.GoogleRefreshToken != ""
}
