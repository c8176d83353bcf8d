package model

type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
