package entity

import "time"

type TodoStatus string

const (
	TodoActive TodoStatus = "active"
	TodoDone   TodoStatus = "done"
)

// Todo is a personal to-do item owned by exactly one user.
type Todo struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TodoStatus `json:"status"`
	Date        *time.Time `json:"date,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
