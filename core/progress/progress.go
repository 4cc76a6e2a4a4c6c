package progress

import "time"

// CompletionThreshold is the percentage at which a video counts as watched,
// leaving room for credits and outros.
const CompletionThreshold = 90.0

// Progress is one user's position in one video.
type Progress struct {
	UserEmail  string    `json:"user_email" validate:"required,email"`
	VideoID    string    `json:"video_id" validate:"required"`
	Percentage float64   `json:"progress_percentage" validate:"gte=0,lte=100"`
	WatchTime  int       `json:"watch_time" validate:"gte=0"`
	Completed  bool      `json:"completed"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CategoryStats struct {
	CategoryID     string  `json:"category_id"`
	CategoryName   string  `json:"category_name"`
	TotalVideos    int     `json:"total_videos"`
	Started        int     `json:"started"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

// Dashboard summarizes a user's progress across the catalog.
type Dashboard struct {
	UserEmail       string          `json:"user_email"`
	TotalVideos     int             `json:"total_videos"`
	VideosStarted   int             `json:"videos_started"`
	VideosCompleted int             `json:"videos_completed"`
	TotalWatchTime  int             `json:"total_watch_time"`
	CompletionRate  float64         `json:"completion_rate"`
	Categories      []CategoryStats `json:"categories"`
	Recent          []Progress      `json:"recent"`
}

// Percent converts a playback position into a percentage in [0, 100] and
// reports whether it reaches the completion threshold.
func Percent(current, total float64) (float64, bool) {
	if total <= 0 || current <= 0 {
		return 0, false
	}
	pct := current * 100 / total
	if pct > 100 {
		pct = 100
	}
	return pct, pct >= CompletionThreshold
}

// Rate is done/total as a percentage, 0 for an empty total.
func Rate(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}
