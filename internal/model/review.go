package model

import "time"

// Review is a user-submitted phone and text pair.
type Review struct {
	ID        int64     `json:"id"`
	Phone     string    `json:"phone"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
