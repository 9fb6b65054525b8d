package models

import "time"

type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ImageID   string    `json:"imageId"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
