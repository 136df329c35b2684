// Package posts covers the post endpoints: CRUD, pagination and
// search, likes, comments, cover upload and analytics.
package posts

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"

	"github.com/octabyte/bm-blogclient/client"
	"github.com/octabyte/bm-blogclient/models"
)

var validate = validator.New()

type Service struct {
	c *client.Client
}

func NewService(c *client.Client) *Service {
	return &Service{c: c}
}

// List fetches all posts.
func (s *Service) List(ctx context.Context) ([]models.Post, error) {
	var out []models.Post
	if err := s.c.Get(ctx, "/posts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Paginated fetches one page of posts, optionally filtered by a
// search term.
func (s *Service) Paginated(ctx context.Context, page, limit int, search string) (*models.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	}
	if search != "" {
		query["search"] = search
	}

	var out models.PostPage
	if err := s.c.GetQuery(ctx, "/posts", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBySlug fetches a single post by its slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var out models.Post
	if err := s.c.Get(ctx, "/posts/slug/"+slug, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create publishes a new post. Input is validated before any network
// call.
func (s *Service) Create(ctx context.Context, input models.PostInput) (*models.Post, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	var out models.Post
	if err := s.c.Post(ctx, "/posts", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edits an existing post.
func (s *Service) Update(ctx context.Context, id string, input models.PostInput) (*models.Post, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	var out models.Post
	if err := s.c.Put(ctx, "/posts/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a post.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.c.Delete(ctx, "/posts/"+id, nil)
}

// ToggleLike flips the current user's like on a post. The response
// shape varies between server versions; both the flat and the
// data-wrapped forms reduce to a LikeResult.
func (s *Service) ToggleLike(ctx context.Context, id string) (*models.LikeResult, error) {
	body, err := s.c.Raw(ctx, http.MethodPatch, "/posts/"+id+"/like", nil)
	if err != nil {
		return nil, err
	}

	root := gjson.GetBytes(body, "data")
	if !root.Exists() {
		root = gjson.ParseBytes(body)
	}
	return &models.LikeResult{
		Likes: int(root.Get("likes").Int()),
		Liked: root.Get("liked").Bool(),
	}, nil
}

// AddComment posts a comment on a post.
func (s *Service) AddComment(ctx context.Context, id, text string) (*models.Comment, error) {
	if err := validate.Var(text, "required,min=1,max=2000"); err != nil {
		return nil, err
	}
	var out models.Comment
	if err := s.c.Post(ctx, "/posts/"+id+"/comments", map[string]string{"text": text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComment removes a comment by its own ID.
func (s *Service) DeleteComment(ctx context.Context, commentID string) error {
	return s.c.Delete(ctx, "/comments/"+commentID, nil)
}

// UploadCover attaches a cover image to a post via multipart form.
func (s *Service) UploadCover(ctx context.Context, postID, filename string, r io.Reader) (*models.Post, error) {
	var out models.Post
	if err := s.c.Upload(ctx, "/posts/"+postID+"/cover", "cover", filename, r, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analytics fetches the analytics series for one post.
func (s *Service) Analytics(ctx context.Context, id string) (*models.PostAnalytics, error) {
	var out models.PostAnalytics
	if err := s.c.Get(ctx, "/posts/"+id+"/analytics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Overview fetches the aggregate analytics across the current user's
// posts, as rendered by the analytics dashboard.
func (s *Service) Overview(ctx context.Context) (*models.AnalyticsOverview, error) {
	var out models.AnalyticsOverview
	if err := s.c.Get(ctx, "/posts/analytics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
