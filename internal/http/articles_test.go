package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateuszaparoli/TP1-EngenhariaDeSoftware/internal/entities"
)

func postJSON(t *testing.T, router http.Handler, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, _ := http.NewRequest("POST", url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func putJSON(t *testing.T, router http.Handler, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, _ := http.NewRequest("PUT", url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestArticlesController_CreateJSON(t *testing.T) {
	router, db, cleanup := setupRouter(t, "articles_create")
	defer cleanup()

	edition := seedEdition(t, db, "SBES", 2023)

	w := postJSON(t, router, "/api/articles", map[string]any{
		"title":      "Deep Learning for Triage",
		"abstract":   "Abstract text",
		"edition_id": edition.ID,
		"authors":    []string{"Jane Doe", "John Roe"},
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var article entities.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))
	assert.Equal(t, "Deep Learning for Triage", article.Title)
	assert.Len(t, article.Authors, 2)
	assert.Equal(t, "SBES", article.Edition.Event.Name)
}

func TestArticlesController_CreateMultipartWithPDF(t *testing.T) {
	router, db, cleanup := setupRouter(t, "articles_pdf")
	defer cleanup()

	edition := seedEdition(t, db, "SBES", 2023)

	req := newMultipartRequest(t, "/api/articles", map[string]string{
		"title":      "Paper With PDF",
		"edition_id": strconv.Itoa(int(edition.ID)),
		"authors":    "Jane Doe; John Roe",
	}, []uploadFile{{field: "pdf", name: "paper.pdf", content: []byte("%PDF-1.4 content")}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var article entities.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))
	assert.NotEmpty(t, article.PDFFile)
	assert.Len(t, article.Authors, 2)

	// The stored PDF is served back
	req, _ = http.NewRequest("GET", "/api/articles/"+strconv.Itoa(int(article.ID))+"/pdf", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4 content", w.Body.String())
}

func TestArticlesController_CreateRequiresTitle(t *testing.T) {
	router, db, cleanup := setupRouter(t, "articles_notitle")
	defer cleanup()

	edition := seedEdition(t, db, "SBES", 2023)

	w := postJSON(t, router, "/api/articles", map[string]any{"edition_id": edition.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestArticlesController_SearchByTitle(t *testing.T) {
	router, db, cleanup := setupRouter(t, "articles_search")
	defer cleanup()

	edition := seedEdition(t, db, "SBES", 2023)
	postJSON(t, router, "/api/articles", map[string]any{"title": "Deep Learning for Triage", "edition_id": edition.ID})
	postJSON(t, router, "/api/articles", map[string]any{"title": "Static Analysis", "edition_id": edition.ID})

	req, _ := http.NewRequest("GET", "/api/articles?title=learning", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var found []entities.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "Deep Learning for Triage", found[0].Title)
}

func TestArticlesController_UpdateReplacesAuthors(t *testing.T) {
	router, db, cleanup := setupRouter(t, "articles_update")
	defer cleanup()

	edition := seedEdition(t, db, "SBES", 2023)
	w := postJSON(t, router, "/api/articles", map[string]any{
		"title": "Original", "edition_id": edition.ID, "authors": []string{"Jane Doe"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var article entities.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))

	w = putJSON(t, router, "/api/articles/"+strconv.Itoa(int(article.ID)), map[string]any{
		"title": "Updated", "authors": []string{"John Roe"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated entities.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Updated", updated.Title)
	require.Len(t, updated.Authors, 1)
	assert.Equal(t, "John Roe", updated.Authors[0].Name)
}

func TestArticlesController_DeleteAndGet(t *testing.T) {
	router, db, cleanup := setupRouter(t, "articles_delete")
	defer cleanup()

	edition := seedEdition(t, db, "SBES", 2023)
	w := postJSON(t, router, "/api/articles", map[string]any{"title": "Doomed", "edition_id": edition.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	var article entities.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))

	req, _ := http.NewRequest("DELETE", "/api/articles/"+strconv.Itoa(int(article.ID)), nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	req, _ = http.NewRequest("GET", "/api/articles/"+strconv.Itoa(int(article.ID)), nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusNotFound, w2.Code)
}

func TestArticlesController_PDFNotFound(t *testing.T) {
	router, db, cleanup := setupRouter(t, "articles_nopdf")
	defer cleanup()

	edition := seedEdition(t, db, "SBES", 2023)
	w := postJSON(t, router, "/api/articles", map[string]any{"title": "No PDF here", "edition_id": edition.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	var article entities.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &article))

	req, _ := http.NewRequest("GET", "/api/articles/"+strconv.Itoa(int(article.ID))+"/pdf", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusNotFound, w2.Code)
}
