package posts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octabyte/bm-blogclient/client"
	"github.com/octabyte/bm-blogclient/models"
	"github.com/octabyte/bm-blogclient/store"
)

func newService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := client.New(client.Config{BaseURL: srv.URL}, store.NewMemory())
	require.NoError(t, err)
	return NewService(c)
}

func TestPaginatedBuildsQuery(t *testing.T) {
	var gotQuery string
	s := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"posts":[{"_id":"p1","slug":"hello","title":"Hello"}],"page":2,"limit":5,"total":11,"totalPages":3}`))
	}))

	page, err := s.Paginated(context.Background(), 2, 5, "go")
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "limit=5")
	assert.Contains(t, gotQuery, "search=go")
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "hello", page.Posts[0].Slug)
}

func TestPaginatedDefaults(t *testing.T) {
	var gotQuery string
	s := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"posts":[],"page":1,"limit":10,"total":0,"totalPages":0}`))
	}))

	_, err := s.Paginated(context.Background(), 0, 0, "")
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "page=1")
	assert.Contains(t, gotQuery, "limit=10")
	assert.NotContains(t, gotQuery, "search=")
}

func TestGetBySlug(t *testing.T) {
	s := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/slug/hello-world", r.URL.Path)
		w.Write([]byte(`{"_id":"p1","slug":"hello-world","title":"Hello","author":{"_id":"u1"}}`))
	}))

	post, err := s.GetBySlug(context.Background(), "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "u1", post.Author.ID)
}

func TestCreateValidatesInput(t *testing.T) {
	var called bool
	s := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	testCases := []struct {
		name  string
		input models.PostInput
	}{
		{"empty", models.PostInput{}},
		{"short title", models.PostInput{Title: "ab", Content: "long enough content"}},
		{"short content", models.PostInput{Title: "A good title", Content: "short"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), tc.input)
			assert.Error(t, err)
		})
	}
	assert.False(t, called)
}

func TestCreate(t *testing.T) {
	s := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		w.Write([]byte(`{"_id":"p1","slug":"my-first-post","title":"My first post"}`))
	}))

	post, err := s.Create(context.Background(), models.PostInput{
		Title:   "My first post",
		Content: "Some content that is long enough.",
		Tags:    []string{"go", "testing"},
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", post.ID)
}

func TestToggleLikeNormalizesShapes(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"flat", `{"likes":4,"liked":true}`},
		{"wrapped", `{"success":true,"data":{"likes":4,"liked":true}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPatch, r.Method)
				assert.Equal(t, "/posts/p1/like", r.URL.Path)
				w.Write([]byte(tc.body))
			}))

			res, err := s.ToggleLike(context.Background(), "p1")
			require.NoError(t, err)
			assert.Equal(t, 4, res.Likes)
			assert.True(t, res.Liked)
		})
	}
}

func TestAddComment(t *testing.T) {
	s := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/p1/comments", r.URL.Path)
		w.Write([]byte(`{"_id":"c1","text":"nice","author":{"_id":"u1"}}`))
	}))

	comment, err := s.AddComment(context.Background(), "p1", "nice")
	require.NoError(t, err)
	assert.Equal(t, "c1", comment.ID)

	_, err = s.AddComment(context.Background(), "p1", "")
	assert.Error(t, err, "empty comments are rejected locally")
}

func TestDeleteEndpoints(t *testing.T) {
	var paths []string
	s := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"success":true}`))
	}))

	require.NoError(t, s.Delete(context.Background(), "p1"))
	require.NoError(t, s.DeleteComment(context.Background(), "c1"))

	assert.Equal(t, []string{"DELETE /posts/p1", "DELETE /comments/c1"}, paths)
}

func TestUploadCover(t *testing.T) {
	s := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/p1/cover", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("cover")
		require.NoError(t, err)
		assert.Equal(t, "cover.png", header.Filename)
		w.Write([]byte(`{"_id":"p1","coverUrl":"/static/cover.png"}`))
	}))

	post, err := s.UploadCover(context.Background(), "p1", "cover.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/static/cover.png", post.CoverURL)
}

func TestAnalytics(t *testing.T) {
	s := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/posts/p1/analytics":
			w.Write([]byte(`{"postId":"p1","views":120,"likes":7,"daily":[{"date":"2026-08-30","views":60,"likes":3}]}`))
		case "/posts/analytics":
			w.Write([]byte(`{"totalViews":500,"totalLikes":40,"posts":[{"postId":"p1","views":120}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	one, err := s.Analytics(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 120, one.Views)
	require.Len(t, one.Daily, 1)

	all, err := s.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 500, all.TotalViews)
	require.Len(t, all.Posts, 1)
}
