package models

type Comment struct {
	ID        string `json:"_id"`
	PostID    string `json:"post,omitempty"`
	Author    User   `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt,omitempty"`
}
