package domain

import "errors"

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrDeveloperNotFound = errors.New("developer not found")
)

// Client is the company a project is delivered for.
type Client struct {
	ID           int64  `json:"clientID"`
	CompanyName  string `json:"companyName"`
	ContactEmail string `json:"contactEmail,omitempty"`
}

// Developer can be assigned to projects and tasks.
type Developer struct {
	ID        int64  `json:"developerID"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// FullName joins first and last name, or returns "" when either is missing.
func (d Developer) FullName() string {
	if d.FirstName == "" || d.LastName == "" {
		return ""
	}
	return d.FirstName + " " + d.LastName
}
