package models

import "time"

// Star values as persisted. A rating row stores exactly one value between
// OneStar and FiveStars.
const (
	OneStar    = 1
	TwoStars   = 2
	ThreeStars = 3
	FourStars  = 4
	FiveStars  = 5
)

type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ImageID   string    `json:"imageId"`
	Stars     int       `json:"stars"`
	CreatedAt time.Time `json:"createdAt"`
}
