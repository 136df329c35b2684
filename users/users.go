// Package users covers the public author endpoints.
package users

import (
	"context"

	"github.com/octabyte/bm-blogclient/client"
	"github.com/octabyte/bm-blogclient/models"
)

type Service struct {
	c *client.Client
}

func NewService(c *client.Client) *Service {
	return &Service{c: c}
}

// Author fetches an author's public profile and published posts.
func (s *Service) Author(ctx context.Context, username string) (*models.Author, error) {
	var out models.Author
	if err := s.c.Get(ctx, "/users/author/"+username, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Posts fetches the posts belonging to a user, as shown on the
// profile page.
func (s *Service) Posts(ctx context.Context, userID string) ([]models.Post, error) {
	var out []models.Post
	if err := s.c.Get(ctx, "/users/"+userID+"/posts", &out); err != nil {
		return nil, err
	}
	return out, nil
}
