package models

type User struct {
	ID        string `json:"_id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Author is the public profile returned by the author endpoint,
// together with the author's published posts.
type Author struct {
	User        User   `json:"user"`
	Posts       []Post `json:"posts"`
	Subscribers int    `json:"subscribers"`
}
