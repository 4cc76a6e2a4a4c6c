package catalog

import (
	"strings"

	"github.com/irsalhamdi/realty-training/apperr"
	"github.com/irsalhamdi/realty-training/validate"
)

// Values the upload form fills in when the admin leaves them blank.
const (
	DefaultDescription = "No description"
	DefaultDuration    = "45 min"
	DefaultMatch       = "95%"
	DefaultRating      = 4.5
	DefaultIcon        = "Folder"
)

// VideoForm is what an admin submits to create or edit a video. On edit,
// blank fields leave the stored value unchanged.
type VideoForm struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	URL         string     `json:"url" validate:"required"`
	CategoryID  string     `json:"categoryId" validate:"required"`
	Duration    string     `json:"duration"`
	Thumbnail   string     `json:"thumbnail" validate:"omitempty,url"`
	Difficulty  Difficulty `json:"difficulty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
}

func (f VideoForm) trimmed() VideoForm {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.URL = strings.TrimSpace(f.URL)
	f.CategoryID = strings.TrimSpace(f.CategoryID)
	f.Duration = strings.TrimSpace(f.Duration)
	f.Thumbnail = strings.TrimSpace(f.Thumbnail)
	return f
}

// newVideo validates a create form and turns it into the backend payload.
// It never touches the network.
func (f VideoForm) newVideo() (VideoNew, error) {
	f = f.trimmed()
	if err := validate.Check(f); err != nil {
		return VideoNew{}, err
	}

	ytID, ok := ExtractYouTubeID(f.URL)
	if !ok {
		return VideoNew{}, apperr.InvalidURL(f.URL)
	}

	nv := VideoNew{
		Title:       f.Title,
		Description: f.Description,
		Thumbnail:   f.Thumbnail,
		Duration:    f.Duration,
		YoutubeID:   ytID,
		Match:       DefaultMatch,
		Difficulty:  f.Difficulty,
		Rating:      DefaultRating,
		Views:       0,
		ReleaseDate: Today(),
		CategoryID:  f.CategoryID,
	}
	if nv.Description == "" {
		nv.Description = DefaultDescription
	}
	if nv.Thumbnail == "" {
		nv.Thumbnail = ThumbnailURL(ytID)
	}
	if nv.Duration == "" {
		nv.Duration = DefaultDuration
	}
	if nv.Difficulty == "" {
		nv.Difficulty = Intermediate
	}
	return nv, nil
}

// videoUp turns an edit form into a partial update.
func (f VideoForm) videoUp() (VideoUp, error) {
	f = f.trimmed()
	var up VideoUp
	n := 0
	set := func(dst **string, v string) {
		if v != "" {
			*dst = &v
			n++
		}
	}
	set(&up.Title, f.Title)
	set(&up.Description, f.Description)
	set(&up.CategoryID, f.CategoryID)
	set(&up.Duration, f.Duration)
	set(&up.Thumbnail, f.Thumbnail)

	if f.URL != "" {
		ytID, ok := ExtractYouTubeID(f.URL)
		if !ok {
			return VideoUp{}, apperr.InvalidURL(f.URL)
		}
		up.YoutubeID = &ytID
		n++
		if up.Thumbnail == nil {
			thumb := ThumbnailURL(ytID)
			up.Thumbnail = &thumb
		}
	}
	if f.Difficulty != "" {
		d := f.Difficulty
		up.Difficulty = &d
		n++
	}

	if n == 0 {
		return VideoUp{}, apperr.Validation("nothing to update")
	}
	if err := validate.Check(up); err != nil {
		return VideoUp{}, err
	}
	return up, nil
}

type CategoryForm struct {
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon"`
}

func (f CategoryForm) newCategory() (CategoryNew, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Icon = strings.TrimSpace(f.Icon)
	if err := validate.Check(f); err != nil {
		return CategoryNew{}, err
	}
	if f.Icon == "" {
		f.Icon = DefaultIcon
	}
	return CategoryNew{Name: f.Name, Icon: f.Icon}, nil
}

func (f CategoryForm) categoryUp() (CategoryUp, error) {
	name := strings.TrimSpace(f.Name)
	icon := strings.TrimSpace(f.Icon)

	var up CategoryUp
	if name != "" {
		up.Name = &name
	}
	if icon != "" {
		up.Icon = &icon
	}
	if up.Name == nil && up.Icon == nil {
		return CategoryUp{}, apperr.Validation("nothing to update")
	}
	return up, nil
}

type BannerForm struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"required"`
	Thumbnail   string `json:"thumbnail" validate:"omitempty,url"`
}

func (f BannerForm) newBanner() (BannerNew, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.URL = strings.TrimSpace(f.URL)
	f.Thumbnail = strings.TrimSpace(f.Thumbnail)
	if err := validate.Check(f); err != nil {
		return BannerNew{}, err
	}

	ytID, ok := ExtractYouTubeID(f.URL)
	if !ok {
		return BannerNew{}, apperr.InvalidURL(f.URL)
	}
	if f.Thumbnail == "" {
		f.Thumbnail = ThumbnailURL(ytID)
	}
	return BannerNew{
		Title:       f.Title,
		Description: f.Description,
		Thumbnail:   f.Thumbnail,
		YoutubeID:   ytID,
	}, nil
}
