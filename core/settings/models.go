package settings

import "github.com/thedigitalbhaiya/ans-sub000/core/policy"

// SocialLink is a per-class messaging group link (WhatsApp etc.) shown on the
// student dashboard.
type SocialLink struct {
	ID       string `json:"id"`
	Class    string `json:"class"`
	Section  string `json:"section"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Settings is the single global settings object.
type Settings struct {
	SchoolName  string                 `json:"school_name"`
	Logo        string                 `json:"logo,omitempty"`
	SessionYear string                 `json:"session_year"` // e.g. "2025-26"
	Permissions policy.PermissionFlags `json:"permissions"`
	SocialLinks []SocialLink           `json:"social_links,omitempty"`
}

// Defaults returns the settings a fresh install starts with. Staff flags all
// start off; a Super Admin turns them on per feature.
func Defaults() Settings {
	return Settings{
		SchoolName:  "Adarsh Navjeevan School",
		SessionYear: "2025-26",
	}
}
