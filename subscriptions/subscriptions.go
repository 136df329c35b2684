// Package subscriptions covers author subscription endpoints.
package subscriptions

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/octabyte/bm-blogclient/client"
	"github.com/octabyte/bm-blogclient/models"
)

type Service struct {
	c *client.Client
}

func NewService(c *client.Client) *Service {
	return &Service{c: c}
}

// Subscribe follows an author.
func (s *Service) Subscribe(ctx context.Context, authorID string) (*models.Subscription, error) {
	var out models.Subscription
	if err := s.c.Post(ctx, "/subscriptions/author/"+authorID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unsubscribe unfollows an author.
func (s *Service) Unsubscribe(ctx context.Context, authorID string) error {
	return s.c.Delete(ctx, "/subscriptions/author/"+authorID, nil)
}

// Status reports whether the current user follows the author. The
// server answer varies in shape; it always reduces to a bool here,
// absent fields reading as false.
func (s *Service) Status(ctx context.Context, authorID string) (*models.SubscriptionStatus, error) {
	body, err := s.c.Raw(ctx, http.MethodGet, "/subscriptions/status/"+authorID, nil)
	if err != nil {
		return nil, err
	}
	return &models.SubscriptionStatus{
		Subscribed: gjson.GetBytes(body, "subscribed").Bool(),
	}, nil
}

// List fetches the current user's subscriptions.
func (s *Service) List(ctx context.Context) ([]models.Subscription, error) {
	var out []models.Subscription
	if err := s.c.Get(ctx, "/subscriptions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Remove deletes a subscription by its own ID.
func (s *Service) Remove(ctx context.Context, subscriptionID string) error {
	return s.c.Delete(ctx, "/subscriptions/"+subscriptionID, nil)
}
