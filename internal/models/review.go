package models

import "time"

// RatingMin and RatingMax bound review ratings.
const (
	RatingMin = 1
	RatingMax = 5
)

type Review struct {
	ID           int       `json:"id"`
	CampgroundID int       `json:"campground_id"`
	AuthorID     int       `json:"author_id"`
	Rating       int       `json:"rating"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`

	// AuthorName is joined in on reads for display.
	AuthorName string `json:"author_name,omitempty"`
}
