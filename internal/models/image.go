package models

import "time"

type Image struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	URL         string    `json:"url"`
	PublicName  string    `json:"publicName"`
	Description string    `json:"description"`
	Tags        []Tag     `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TransformedImage struct {
	ID           string    `json:"id"`
	ImageID      string    `json:"imageId"`
	TransformURL string    `json:"transformUrl"`
	QRCodeURL    string    `json:"qrCodeUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}
