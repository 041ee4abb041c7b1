package models

import "time"

type Campground struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	// Longitude/Latitude are nil when the location could not be geocoded.
	Longitude *float64  `json:"longitude"`
	Latitude  *float64  `json:"latitude"`
	AuthorID  int       `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`

	// Populated by the repository on reads that join related rows.
	AuthorName string  `json:"author_name,omitempty"`
	Images     []Image `json:"images,omitempty"`
}

// HasGeometry reports whether the campground was geocoded.
func (c Campground) HasGeometry() bool {
	return c.Longitude != nil && c.Latitude != nil
}

// Lng and Lat return the coordinates for template use, zero when not geocoded.
func (c Campground) Lng() float64 {
	if c.Longitude == nil {
		return 0
	}
	return *c.Longitude
}

func (c Campground) Lat() float64 {
	if c.Latitude == nil {
		return 0
	}
	return *c.Latitude
}

// Image is one uploaded campground photo. Filename is the object-store key
// so the object can be removed when the campground (or the image) goes away.
type Image struct {
	ID           int    `json:"id"`
	CampgroundID int    `json:"campground_id"`
	URL          string `json:"url"`
	Filename     string `json:"filename"`
}
