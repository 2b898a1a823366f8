package models

// Profile mirrors the auth user row with app-level attributes. Role is
// stored as given; an empty role means "user" but the default is applied
// client-side, never written back.
type Profile struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	NotifyEmail   bool   `json:"notify_email"`
	NotifyBrowser bool   `json:"notify_browser"`
}
