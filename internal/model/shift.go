package model

type Shift struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
