package model

type User struct {
	ID       int64    `json:"id"`
	FullName string   `json:"full_name"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}
