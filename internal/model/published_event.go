package model

import "time"

// PublishedEvent announces that a post became published. It carries the
// resolved author so subscribers never have to look it up themselves.
type PublishedEvent struct {
	Post       *Post     `json:"post"`
	Author     *User     `json:"author"`
	OccurredAt time.Time `json:"occurred_at"`
}
