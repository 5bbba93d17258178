package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftgrug/giftgrug/internal/logging"
	"github.com/giftgrug/giftgrug/pkg/models"
)

type fakeScribbleStore struct {
	scribbles []*models.Scribble
	err       error
}

func (f *fakeScribbleStore) ListPublished(ctx context.Context) ([]*models.Scribble, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Scribble
	for _, s := range f.scribbles {
		if s.IsPublished {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScribbleStore) ListPinned(ctx context.Context, limit int) ([]*models.Scribble, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.Scribble
	for _, s := range f.scribbles {
		if s.Pinned && s.IsPublished && len(out) < limit {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScribbleStore) ListAll(ctx context.Context) ([]*models.Scribble, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.scribbles, nil
}

func (f *fakeScribbleStore) GetBySlug(ctx context.Context, slug string) (*models.Scribble, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.scribbles {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, errors.New("scribble not found")
}

func (f *fakeScribbleStore) CreateScribble(ctx context.Context, scribble *models.Scribble) error {
	return f.err
}

func (f *fakeScribbleStore) UpdateScribble(ctx context.Context, scribble *models.Scribble) error {
	return f.err
}

func (f *fakeScribbleStore) SetPinned(ctx context.Context, id string, pinned bool, order *int) error {
	return f.err
}

func (f *fakeScribbleStore) DeleteScribble(ctx context.Context, id string) error {
	return f.err
}

func newScribbleTestAPI(t *testing.T, store *fakeScribbleStore) *API {
	t.Helper()

	logger, err := logging.NewDefaultLogger()
	require.NoError(t, err)

	return &API{logger: logger, scribbles: store}
}

func scribbleTestRouter(api *API) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/scribbles", api.listScribbles)
	router.GET("/api/scribbles/pinned", api.listPinnedScribbles)
	router.GET("/api/scribbles/:slug", api.getScribble)
	return router
}

func getScribblePath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

type scribbleListResponse struct {
	Scribbles []*models.ScribbleView `json:"scribbles"`
}

func TestScribbleListServesBuiltinsWhenWallUnreachable(t *testing.T) {
	store := &fakeScribbleStore{err: errors.New("connection refused")}
	router := scribbleTestRouter(newScribbleTestAPI(t, store))

	w := getScribblePath(router, "/api/scribbles")
	require.Equal(t, http.StatusOK, w.Code)

	var resp scribbleListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Scribbles)
	assert.Equal(t, "why-grug-make-scribbles", resp.Scribbles[0].Slug)
	assert.NotEmpty(t, resp.Scribbles[0].Paragraphs)
}

func TestScribbleListServesBuiltinsWhenWallEmpty(t *testing.T) {
	store := &fakeScribbleStore{}
	router := scribbleTestRouter(newScribbleTestAPI(t, store))

	w := getScribblePath(router, "/api/scribbles")
	require.Equal(t, http.StatusOK, w.Code)

	var resp scribbleListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Scribbles)
}

func TestScribbleBySlugFallsBackToBuiltin(t *testing.T) {
	store := &fakeScribbleStore{err: errors.New("connection refused")}
	router := scribbleTestRouter(newScribbleTestAPI(t, store))

	w := getScribblePath(router, "/api/scribbles/three-gift-rules-grug-never-break")
	require.Equal(t, http.StatusOK, w.Code)

	var view models.ScribbleView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "Three Gift Rules Grug Never Break", view.Title)
	assert.Len(t, view.Paragraphs, 3)
}

func TestScribbleUnknownSlugNotFound(t *testing.T) {
	store := &fakeScribbleStore{err: errors.New("connection refused")}
	router := scribbleTestRouter(newScribbleTestAPI(t, store))

	w := getScribblePath(router, "/api/scribbles/no-such-scribble")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScribbleContentSplitsIntoParagraphs(t *testing.T) {
	store := &fakeScribbleStore{scribbles: []*models.Scribble{{
		ID:          "s1",
		Slug:        "grug-on-fire",
		Title:       "Grug On Fire",
		Content:     "Fire hot.\n\nGrug learn this the hard way.",
		PublishedAt: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		IsPublished: true,
	}}}
	router := scribbleTestRouter(newScribbleTestAPI(t, store))

	w := getScribblePath(router, "/api/scribbles/grug-on-fire")
	require.Equal(t, http.StatusOK, w.Code)

	var view models.ScribbleView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, []string{"Fire hot.", "Grug learn this the hard way."}, view.Paragraphs)
}

func TestUnpublishedScribbleHidden(t *testing.T) {
	store := &fakeScribbleStore{scribbles: []*models.Scribble{{
		ID:          "s1",
		Slug:        "secret-draft",
		Title:       "Secret Draft",
		Content:     "Not ready.",
		IsPublished: false,
	}}}
	router := scribbleTestRouter(newScribbleTestAPI(t, store))

	w := getScribblePath(router, "/api/scribbles/secret-draft")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPinnedScribblesEmptyOnError(t *testing.T) {
	store := &fakeScribbleStore{err: errors.New("connection refused")}
	router := scribbleTestRouter(newScribbleTestAPI(t, store))

	w := getScribblePath(router, "/api/scribbles/pinned")
	require.Equal(t, http.StatusOK, w.Code)

	var resp scribbleListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Scribbles)
}
