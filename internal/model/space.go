package model

type Space struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
