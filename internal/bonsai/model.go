package bonsai

import "time"

// Bonsai is a tracked specimen owned by a user. Species is free text and is
// used as the matching key for seasonal recommendation rules.
type Bonsai struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Description string    `json:"description,omitempty"`
	ImageURLs   []string  `json:"imageUrls"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
