package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftgrug/giftgrug/internal/logging"
	"github.com/giftgrug/giftgrug/internal/middleware"
	"github.com/giftgrug/giftgrug/pkg/models"
)

type fakeWishlistStore struct {
	lists     []*models.Wishlist
	items     []*models.WishlistItem
	createErr error
	voteCalls int
}

func (f *fakeWishlistStore) CreateWishlist(ctx context.Context, wishlist *models.Wishlist) error {
	if f.createErr != nil {
		return f.createErr
	}
	if wishlist.ID == "" {
		wishlist.ID = uuid.New().String()
	}
	if wishlist.ShareToken == "" {
		wishlist.ShareToken = uuid.New().String()
	}
	f.lists = append(f.lists, wishlist)
	return nil
}

func (f *fakeWishlistStore) GetWishlist(ctx context.Context, id string) (*models.Wishlist, error) {
	for _, w := range f.lists {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, errors.New("wishlist not found")
}

func (f *fakeWishlistStore) GetByShareToken(ctx context.Context, token string) (*models.Wishlist, error) {
	for _, w := range f.lists {
		if w.ShareToken == token && w.IsActive {
			return w, nil
		}
	}
	return nil, errors.New("wishlist not found")
}

func (f *fakeWishlistStore) GetOrCreateDefault(ctx context.Context, userID string) (*models.Wishlist, error) {
	for _, w := range f.lists {
		if w.UserID == userID {
			return w, nil
		}
	}
	wishlist := &models.Wishlist{UserID: userID, Name: "My Cave Painting", IsActive: true}
	if err := f.CreateWishlist(ctx, wishlist); err != nil {
		return nil, err
	}
	return wishlist, nil
}

func (f *fakeWishlistStore) ListUserWishlists(ctx context.Context, userID string) ([]*models.Wishlist, error) {
	var out []*models.Wishlist
	for _, w := range f.lists {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWishlistStore) UpdateWishlist(ctx context.Context, wishlist *models.Wishlist) error {
	for i, w := range f.lists {
		if w.ID == wishlist.ID {
			f.lists[i] = wishlist
			return nil
		}
	}
	return errors.New("wishlist not found")
}

func (f *fakeWishlistStore) DeleteWishlist(ctx context.Context, id string) error {
	for i, w := range f.lists {
		if w.ID == id {
			f.lists = append(f.lists[:i], f.lists[i+1:]...)
			return nil
		}
	}
	return errors.New("wishlist not found")
}

func (f *fakeWishlistStore) AddItem(ctx context.Context, wishlistID, productID string) (*models.WishlistItem, error) {
	item := &models.WishlistItem{ID: uuid.New().String(), WishlistID: wishlistID, ProductID: productID}
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeWishlistStore) RemoveItem(ctx context.Context, wishlistID, productID string) error {
	for i, item := range f.items {
		if item.WishlistID == wishlistID && item.ProductID == productID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errors.New("wishlist item not found")
}

func (f *fakeWishlistStore) GetItem(ctx context.Context, itemID, wishlistID string) (*models.WishlistItem, error) {
	for _, item := range f.items {
		if item.ID == itemID && item.WishlistID == wishlistID {
			return item, nil
		}
	}
	return nil, errors.New("wishlist item not found")
}

func (f *fakeWishlistStore) ListItems(ctx context.Context, wishlistID string) ([]*models.WishlistItemWithProduct, error) {
	var out []*models.WishlistItemWithProduct
	for _, item := range f.items {
		if item.WishlistID == wishlistID {
			out = append(out, &models.WishlistItemWithProduct{
				WishlistItem: *item,
				Product:      &models.Product{ID: item.ProductID},
			})
		}
	}
	return out, nil
}

func (f *fakeWishlistStore) SetVote(ctx context.Context, itemID string, vote *string) error {
	f.voteCalls++
	for _, item := range f.items {
		if item.ID == itemID {
			item.Vote = vote
			return nil
		}
	}
	return errors.New("wishlist item not found")
}

func (f *fakeWishlistStore) GetVoteCounts(ctx context.Context, wishlistID string) (*models.VoteCounts, error) {
	counts := &models.VoteCounts{}
	for _, item := range f.items {
		if item.WishlistID != wishlistID {
			continue
		}
		counts.Total++
		switch {
		case item.Vote == nil:
			counts.Pending++
		case *item.Vote == models.VoteUp:
			counts.Up++
		case *item.Vote == models.VoteDown:
			counts.Down++
		}
	}
	return counts, nil
}

func newWishlistTestAPI(t *testing.T, store *fakeWishlistStore) *API {
	t.Helper()

	logger, err := logging.NewDefaultLogger()
	require.NoError(t, err)

	return &API{logger: logger, wishlists: store}
}

func wishlistRouter(api *API, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	inject := func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.AuthContextKey, userID)
		}
		c.Next()
	}
	router := gin.New()
	router.POST("/api/wishlists", inject, api.createWishlist)
	router.POST("/api/wishlists/default", inject, api.getOrCreateDefaultWishlist)
	router.GET("/api/wishlists/shared/:token", api.getSharedWishlist)
	router.GET("/api/wishlists/shared/:token/votes", api.getWishlistVotes)
	router.POST("/api/wishlists/shared/:token/items/:itemID/vote", api.voteWishlistItem)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateWishlistIsShareableImmediately(t *testing.T) {
	store := &fakeWishlistStore{}
	api := newWishlistTestAPI(t, store)
	router := wishlistRouter(api, "man-1")

	w := doJSON(router, http.MethodPost, "/api/wishlists", `{"name":"Hunt Day Painting"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Wishlist
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.IsActive)
	require.NotEmpty(t, created.ShareToken)

	w = doJSON(router, http.MethodGet, "/api/wishlists/shared/"+created.ShareToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hunt Day Painting")
}

func TestSharedWishlistHiddenWhenInactive(t *testing.T) {
	store := &fakeWishlistStore{lists: []*models.Wishlist{
		{ID: "w1", UserID: "man-1", Name: "Old Painting", ShareToken: "tok-1", IsActive: false},
	}}
	api := newWishlistTestAPI(t, store)
	router := wishlistRouter(api, "")

	w := doJSON(router, http.MethodGet, "/api/wishlists/shared/tok-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVoteRejectsUnknownValue(t *testing.T) {
	store := &fakeWishlistStore{
		lists: []*models.Wishlist{{ID: "w1", Name: "Painting", ShareToken: "tok-1", IsActive: true}},
		items: []*models.WishlistItem{{ID: "i1", WishlistID: "w1", ProductID: "p1"}},
	}
	api := newWishlistTestAPI(t, store)
	router := wishlistRouter(api, "")

	w := doJSON(router, http.MethodPost, "/api/wishlists/shared/tok-1/items/i1/vote", `{"vote":"maybe"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, store.voteCalls)
}

func TestVoteRejectsItemFromOtherWishlist(t *testing.T) {
	store := &fakeWishlistStore{
		lists: []*models.Wishlist{
			{ID: "w1", Name: "Painting", ShareToken: "tok-1", IsActive: true},
			{ID: "w2", Name: "Other Painting", ShareToken: "tok-2", IsActive: true},
		},
		items: []*models.WishlistItem{{ID: "i2", WishlistID: "w2", ProductID: "p1"}},
	}
	api := newWishlistTestAPI(t, store)
	router := wishlistRouter(api, "")

	w := doJSON(router, http.MethodPost, "/api/wishlists/shared/tok-1/items/i2/vote", `{"vote":"up"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, store.voteCalls)
}

func TestVoteUpThenClear(t *testing.T) {
	store := &fakeWishlistStore{
		lists: []*models.Wishlist{{ID: "w1", Name: "Painting", ShareToken: "tok-1", IsActive: true}},
		items: []*models.WishlistItem{{ID: "i1", WishlistID: "w1", ProductID: "p1"}},
	}
	api := newWishlistTestAPI(t, store)
	router := wishlistRouter(api, "")

	w := doJSON(router, http.MethodPost, "/api/wishlists/shared/tok-1/items/i1/vote", `{"vote":"up"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Womanfolk like this thing!")
	require.NotNil(t, store.items[0].Vote)
	assert.Equal(t, models.VoteUp, *store.items[0].Vote)

	w = doJSON(router, http.MethodPost, "/api/wishlists/shared/tok-1/items/i1/vote", `{"vote":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Vote removed.")
	assert.Nil(t, store.items[0].Vote)
}

func TestVoteDownMessage(t *testing.T) {
	store := &fakeWishlistStore{
		lists: []*models.Wishlist{{ID: "w1", Name: "Painting", ShareToken: "tok-1", IsActive: true}},
		items: []*models.WishlistItem{{ID: "i1", WishlistID: "w1", ProductID: "p1"}},
	}
	api := newWishlistTestAPI(t, store)
	router := wishlistRouter(api, "")

	w := doJSON(router, http.MethodPost, "/api/wishlists/shared/tok-1/items/i1/vote", `{"vote":"down"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Womanfolk not want this thing.")
}

func TestVoteCountsSummary(t *testing.T) {
	up, down := models.VoteUp, models.VoteDown
	store := &fakeWishlistStore{
		lists: []*models.Wishlist{{ID: "w1", Name: "Painting", ShareToken: "tok-1", IsActive: true}},
		items: []*models.WishlistItem{
			{ID: "i1", WishlistID: "w1", ProductID: "p1", Vote: &up},
			{ID: "i2", WishlistID: "w1", ProductID: "p2", Vote: &down},
			{ID: "i3", WishlistID: "w1", ProductID: "p3"},
		},
	}
	api := newWishlistTestAPI(t, store)
	router := wishlistRouter(api, "")

	w := doJSON(router, http.MethodGet, "/api/wishlists/shared/tok-1/votes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":3,"up":1,"down":1,"pending":1}`, w.Body.String())
}

func TestDefaultWishlistCreatedOnceAndReused(t *testing.T) {
	store := &fakeWishlistStore{}
	api := newWishlistTestAPI(t, store)
	router := wishlistRouter(api, "man-1")

	w := doJSON(router, http.MethodPost, "/api/wishlists/default", "")
	require.Equal(t, http.StatusOK, w.Code)

	var first models.Wishlist
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, "My Cave Painting", first.Name)
	assert.True(t, first.IsActive)

	w = doJSON(router, http.MethodPost, "/api/wishlists/default", "")
	require.Equal(t, http.StatusOK, w.Code)

	var second models.Wishlist
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, store.lists, 1)
}
