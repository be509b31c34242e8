package workrecords

import "time"

// WorkRecord is a logged past care action on a bonsai. A record carries one or
// more work-type tags and a single date.
type WorkRecord struct {
	ID          string     `json:"id"`
	BonsaiID    string     `json:"bonsaiId"`
	WorkTypes   []WorkType `json:"workTypes"`
	Date        time.Time  `json:"date"`
	Description string     `json:"description,omitempty"`
	ImageURLs   []string   `json:"imageUrls"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
