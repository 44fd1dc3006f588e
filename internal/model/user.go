package model

import "time"

// User is the profile of an authenticated account, immutable once built
// from a login response.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// FullName joins the first and last name with a single space.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserFromAuth builds a User from the login response payload. The backend
// sends createdAt/lastLogin as RFC 3339 strings; a value that fails to parse
// falls back to now.
func UserFromAuth(info AuthUser, now time.Time) User {
	return User{
		ID:        info.ID,
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Email:     info.Email,
		CreatedAt: parseServerTime(info.CreatedAt, now),
		LastLogin: parseServerTime(info.LastLogin, now),
	}
}

func parseServerTime(s string, fallback time.Time) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fallback
	}
	return t
}
