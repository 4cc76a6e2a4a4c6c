package settings

import (
	"strings"
	"time"

	"github.com/irsalhamdi/realty-training/apperr"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Settings is the global branding of the platform.
type Settings struct {
	LogoURL            string    `json:"logoUrl"`
	CompanyName        string    `json:"companyName"`
	LoginBackgroundURL string    `json:"loginBackgroundUrl"`
	BannerURL          string    `json:"bannerUrl"`
	LoginTitle         string    `json:"loginTitle"`
	LoginSubtitle      string    `json:"loginSubtitle"`
	Theme              string    `json:"theme"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// SettingsUp is a partial update; nil fields are left unchanged.
type SettingsUp struct {
	LogoURL            *string `json:"logoUrl" validate:"omitempty,url"`
	CompanyName        *string `json:"companyName"`
	LoginBackgroundURL *string `json:"loginBackgroundUrl" validate:"omitempty,url"`
	BannerURL          *string `json:"bannerUrl" validate:"omitempty,url"`
	LoginTitle         *string `json:"loginTitle"`
	LoginSubtitle      *string `json:"loginSubtitle"`
	Theme              *string `json:"theme" validate:"omitempty,oneof=dark light"`
}

func Defaults() Settings {
	return Settings{
		CompanyName:   "Realty ONE Group Mexico",
		LoginTitle:    "Sign In",
		LoginSubtitle: "Access your real estate training platform",
		Theme:         ThemeDark,
	}
}

// WithDefaults fills blank fields that have a default value.
func (s Settings) WithDefaults() Settings {
	d := Defaults()
	if s.CompanyName == "" {
		s.CompanyName = d.CompanyName
	}
	if s.LoginTitle == "" {
		s.LoginTitle = d.LoginTitle
	}
	if s.LoginSubtitle == "" {
		s.LoginSubtitle = d.LoginSubtitle
	}
	if s.Theme == "" {
		s.Theme = d.Theme
	}
	return s
}

// Apply returns s with every non nil field of up written over it.
func (s Settings) Apply(up SettingsUp) Settings {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.LogoURL, up.LogoURL)
	set(&s.CompanyName, up.CompanyName)
	set(&s.LoginBackgroundURL, up.LoginBackgroundURL)
	set(&s.BannerURL, up.BannerURL)
	set(&s.LoginTitle, up.LoginTitle)
	set(&s.LoginSubtitle, up.LoginSubtitle)
	set(&s.Theme, up.Theme)
	return s
}

// trimmed trims every provided value and rejects blank ones: clearing a
// field is not something the admin panel offers.
func (up SettingsUp) trimmed() (SettingsUp, error) {
	fields := []struct {
		name string
		v    **string
	}{
		{"logoUrl", &up.LogoURL},
		{"companyName", &up.CompanyName},
		{"loginBackgroundUrl", &up.LoginBackgroundURL},
		{"bannerUrl", &up.BannerURL},
		{"loginTitle", &up.LoginTitle},
		{"loginSubtitle", &up.LoginSubtitle},
		{"theme", &up.Theme},
	}

	n := 0
	for _, f := range fields {
		if *f.v == nil {
			continue
		}
		v := strings.TrimSpace(**f.v)
		if v == "" {
			return SettingsUp{}, apperr.Validation(f.name + " cannot be blank")
		}
		*f.v = &v
		n++
	}
	if n == 0 {
		return SettingsUp{}, apperr.Validation("nothing to update")
	}
	return up, nil
}
