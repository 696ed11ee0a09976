package models

import (
	"context"
	"regexp"
	"time"
)

// Known setting keys. Anything else is kept in SiteSettings.Extra.
const (
	SettingSiteTitle      = "siteTitle"
	SettingEventDate      = "eventDate"
	SettingEventLocation  = "eventLocation"
	SettingPrimaryColor   = "primaryColor"
	SettingSecondaryColor = "secondaryColor"
)

var settingKeyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]{0,63}$`)

type Setting struct {
	Key       string    `bson:"key" json:"key"`
	Value     string    `bson:"value" json:"value"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// SiteSettings is the typed view of the settings collection served to the site.
type SiteSettings struct {
	SiteTitle      string            `json:"siteTitle"`
	EventDate      string            `json:"eventDate"`
	EventLocation  string            `json:"eventLocation"`
	PrimaryColor   string            `json:"primaryColor"`
	SecondaryColor string            `json:"secondaryColor"`
	Extra          map[string]string `json:"extra,omitempty"`
}

func NewSiteSettings(settings []Setting) SiteSettings {
	var s SiteSettings
	for _, st := range settings {
		switch st.Key {
		case SettingSiteTitle:
			s.SiteTitle = st.Value
		case SettingEventDate:
			s.EventDate = st.Value
		case SettingEventLocation:
			s.EventLocation = st.Value
		case SettingPrimaryColor:
			s.PrimaryColor = st.Value
		case SettingSecondaryColor:
			s.SecondaryColor = st.Value
		default:
			if s.Extra == nil {
				s.Extra = make(map[string]string)
			}
			s.Extra[st.Key] = st.Value
		}
	}
	return s
}

func ValidSettingKey(key string) bool {
	return settingKeyPattern.MatchString(key)
}

type SettingsRepo interface {
	All(ctx context.Context) ([]Setting, error)
	Upsert(ctx context.Context, key, value string) (*Setting, error)
	UpsertMany(ctx context.Context, values map[string]string) error
}
