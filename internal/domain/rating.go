package domain

import "time"

// Rating represents user feedback for a completed pickup. At most one rating
// exists per pickup.
type Rating struct {
	ID        string
	PickupID  string
	Stars     int // 1 to 5
	Feedback  string
	CreatedAt time.Time
}
