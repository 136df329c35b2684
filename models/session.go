package models

// Session is the payload returned by the login and register endpoints.
type Session struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}
