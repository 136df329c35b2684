// Package categories covers the post category endpoints.
package categories

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

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

func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := s.c.Get(ctx, "/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if err := validate.Var(name, "required,min=2,max=60"); err != nil {
		return nil, err
	}

	var out models.Category
	if err := s.c.Post(ctx, "/categories", map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
