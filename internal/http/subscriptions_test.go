package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

func TestSubscriptionsController_CreateGeneral(t *testing.T) {
	router, _, cleanup := setupRouter(t, "subs_general")
	defer cleanup()

	w := postJSON(t, router, "/api/subscriptions", map[string]any{
		"email": "fan@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sub entities.Subscription
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	assert.Equal(t, "fan@example.com", sub.Email)
	assert.Nil(t, sub.AuthorID)
	assert.Nil(t, sub.EventID)
}

func TestSubscriptionsController_CreateByAuthorName(t *testing.T) {
	router, db, cleanup := setupRouter(t, "subs_byname")
	defer cleanup()

	seedAuthoredArticle(t, router, db, "Paper", 2023, "Jane Doe")

	w := postJSON(t, router, "/api/subscriptions", map[string]any{
		"email":       "fan@example.com",
		"author_name": "Jane Doe",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sub entities.Subscription
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sub))
	require.NotNil(t, sub.AuthorID)
}

func TestSubscriptionsController_CreateByUnpublishedAuthorName(t *testing.T) {
	router, db, cleanup := setupRouter(t, "subs_newname")
	defer cleanup()

	// The author does not exist yet; subscribing creates them
	w := postJSON(t, router, "/api/subscriptions", map[string]any{
		"email":       "fan@example.com",
		"author_name": "Grace Hopper",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var author entities.Author
	require.NoError(t, db.DB.Where("name = ?", "Grace Hopper").First(&author).Error)
}

func TestSubscriptionsController_DuplicateIsIdempotent(t *testing.T) {
	router, db, cleanup := setupRouter(t, "subs_dup")
	defer cleanup()

	seedAuthoredArticle(t, router, db, "Paper", 2023, "Jane Doe")
	var author entities.Author
	require.NoError(t, db.DB.Where("name = ?", "Jane Doe").First(&author).Error)

	payload := map[string]any{"email": "fan@example.com", "author_id": author.ID}

	w := postJSON(t, router, "/api/subscriptions", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	var first entities.Subscription
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	// Subscribing again returns the existing record with 200
	w = postJSON(t, router, "/api/subscriptions", payload)
	require.Equal(t, http.StatusOK, w.Code)
	var second entities.Subscription
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.DB.Model(&entities.Subscription{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSubscriptionsController_InvalidEmail(t *testing.T) {
	router, _, cleanup := setupRouter(t, "subs_bademail")
	defer cleanup()

	w := postJSON(t, router, "/api/subscriptions", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionsController_UnknownAuthor(t *testing.T) {
	router, _, cleanup := setupRouter(t, "subs_noauthor")
	defer cleanup()

	w := postJSON(t, router, "/api/subscriptions", map[string]any{
		"email":     "fan@example.com",
		"author_id": 999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionsController_List(t *testing.T) {
	router, _, cleanup := setupRouter(t, "subs_list")
	defer cleanup()

	postJSON(t, router, "/api/subscriptions", map[string]any{"email": "a@example.com"})
	postJSON(t, router, "/api/subscriptions", map[string]any{"email": "b@example.com"})

	req, _ := http.NewRequest("GET", "/api/subscriptions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var subs []entities.Subscription
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subs))
	assert.Len(t, subs, 2)
}
