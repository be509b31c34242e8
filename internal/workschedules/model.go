package workschedules

import (
	"time"

	"bonsai-backend/internal/workrecords"
)

// WorkSchedule is a planned future care action on a bonsai.
type WorkSchedule struct {
	ID            string                 `json:"id"`
	BonsaiID      string                 `json:"bonsaiId"`
	WorkTypes     []workrecords.WorkType `json:"workTypes"`
	ScheduledDate time.Time              `json:"scheduledDate"`
	Note          string                 `json:"note,omitempty"`
	Completed     bool                   `json:"completed"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}
