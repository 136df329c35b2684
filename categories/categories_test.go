package categories

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octabyte/bm-blogclient/client"
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

func TestList(t *testing.T) {
	s := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories", r.URL.Path)
		w.Write([]byte(`[{"_id":"cat1","name":"Go"},{"_id":"cat2","name":"Databases"}]`))
	}))

	cats, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Go", cats[0].Name)
}

func TestCreateTrimsAndValidates(t *testing.T) {
	var gotBody string
	s := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(`{"_id":"cat3","name":"Testing"}`))
	}))

	cat, err := s.Create(context.Background(), "  Testing ")
	require.NoError(t, err)
	assert.Equal(t, "cat3", cat.ID)
	assert.JSONEq(t, `{"name":"Testing"}`, gotBody)

	_, err = s.Create(context.Background(), "   ")
	assert.Error(t, err, "whitespace-only names are rejected locally")
}
