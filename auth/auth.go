// Package auth wraps the authentication endpoints. Token refresh is
// not here: it belongs to the client pipeline, which performs it
// transparently on 401.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
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

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login exchanges credentials for a session.
func (s *Service) Login(ctx context.Context, creds Credentials) (*models.Session, error) {
	if err := validate.Struct(creds); err != nil {
		return nil, err
	}
	body, err := s.c.Raw(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return nil, err
	}
	return sessionFromBody(body)
}

// Register creates an account and returns the fresh session.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.Session, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	body, err := s.c.Raw(ctx, http.MethodPost, "/auth/register", input)
	if err != nil {
		return nil, err
	}
	return sessionFromBody(body)
}

// Profile fetches the authenticated user's profile.
func (s *Service) Profile(ctx context.Context) (*models.User, error) {
	body, err := s.c.Raw(ctx, http.MethodGet, "/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	return userFromBody(body)
}

// ForgotPassword requests a password reset email.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return err
	}
	return s.c.Post(ctx, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword sets a new password using an emailed reset token.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	if err := validate.Var(password, "required,min=8"); err != nil {
		return err
	}
	return s.c.Put(ctx, "/auth/reset-password/"+token, map[string]string{"password": password}, nil)
}

// sessionFromBody normalizes the auth response shape: the token shows
// up at accessToken or data.accessToken depending on server version,
// the user at user or data.user.
func sessionFromBody(body []byte) (*models.Session, error) {
	token := gjson.GetBytes(body, "accessToken").String()
	if token == "" {
		token = gjson.GetBytes(body, "data.accessToken").String()
	}
	if token == "" {
		return nil, fmt.Errorf("auth: response carries no access token")
	}

	user, err := userFromBody(body)
	if err != nil {
		return nil, err
	}
	return &models.Session{User: *user, AccessToken: token}, nil
}

// userFromBody accepts the profile at user, data.user, or the root.
func userFromBody(body []byte) (*models.User, error) {
	raw := gjson.GetBytes(body, "user").Raw
	if raw == "" {
		raw = gjson.GetBytes(body, "data.user").Raw
	}
	if raw == "" {
		raw = string(body)
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("auth: decode user: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("auth: response carries no user")
	}
	return &user, nil
}
