package notes

import "time"

// Note belongs to exactly one owner for its whole lifetime; OwnerID is set
// at creation and never changes afterwards.
type Note struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Patch describes a partial update of a note. Nil fields are left unchanged.
// The owner is deliberately absent: ownership cannot be reassigned.
type Patch struct {
	Title       *string
	Description *string
}
