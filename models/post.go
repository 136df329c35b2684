package models

type Post struct {
	ID        string    `json:"_id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CoverURL  string    `json:"coverUrl,omitempty"`
	Author    User      `json:"author"`
	Likes     int       `json:"likes"`
	Liked     bool      `json:"liked"`
	Comments  []Comment `json:"comments,omitempty"`
	CreatedAt string    `json:"createdAt,omitempty"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
}

// PostInput is the outgoing payload for creating or updating a post.
// Validated client-side before any network call is made.
type PostInput struct {
	Title    string   `json:"title" validate:"required,min=3,max=200"`
	Content  string   `json:"content" validate:"required,min=10"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty" validate:"max=10,dive,min=1,max=40"`
}

// LikeResult is the normalized outcome of toggling a like.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}
