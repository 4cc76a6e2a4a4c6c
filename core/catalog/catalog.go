package catalog

import (
	"fmt"
	"strings"
	"time"
)

type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Videos    []Video   `json:"videos"`
	CreatedAt time.Time `json:"createdAt"`
}

type CategoryNew struct {
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon" validate:"required"`
}

type CategoryUp struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
	Icon *string `json:"icon" validate:"omitempty,min=1"`
}

type Video struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Thumbnail   string     `json:"thumbnail"`
	Duration    string     `json:"duration"`
	YoutubeID   string     `json:"youtubeId"`
	Match       string     `json:"match"`
	Difficulty  Difficulty `json:"difficulty"`
	Rating      float64    `json:"rating"`
	Views       int        `json:"views"`
	ReleaseDate Date       `json:"releaseDate"`
	CategoryID  string     `json:"categoryId"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type VideoNew struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	Thumbnail   string     `json:"thumbnail" validate:"required,url"`
	Duration    string     `json:"duration" validate:"required"`
	YoutubeID   string     `json:"youtubeId" validate:"required"`
	Match       string     `json:"match"`
	Difficulty  Difficulty `json:"difficulty" validate:"required,oneof=Beginner Intermediate Advanced"`
	Rating      float64    `json:"rating" validate:"gte=0,lte=5"`
	Views       int        `json:"views" validate:"gte=0"`
	ReleaseDate Date       `json:"releaseDate"`
	CategoryID  string     `json:"categoryId" validate:"required"`
}

type VideoUp struct {
	Title       *string     `json:"title" validate:"omitempty,min=1"`
	Description *string     `json:"description"`
	Thumbnail   *string     `json:"thumbnail" validate:"omitempty,url"`
	Duration    *string     `json:"duration" validate:"omitempty,min=1"`
	YoutubeID   *string     `json:"youtubeId" validate:"omitempty,min=1"`
	Match       *string     `json:"match"`
	Difficulty  *Difficulty `json:"difficulty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Rating      *float64    `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Views       *int        `json:"views" validate:"omitempty,gte=0"`
	ReleaseDate *Date       `json:"releaseDate"`
	CategoryID  *string     `json:"categoryId" validate:"omitempty,min=1"`
}

// BannerVideo fills the single hero slot at the top of the catalog.
type BannerVideo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	YoutubeID   string    `json:"youtubeId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BannerNew struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail" validate:"required,url"`
	YoutubeID   string `json:"youtubeId" validate:"required"`
}

// Date is a calendar day, encoded as "YYYY-MM-DD".
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// Today returns the current UTC calendar day.
func Today() Date {
	return NewDate(time.Now())
}

// NewDate truncates t to its UTC calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	// Tolerate full timestamps from older records.
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
