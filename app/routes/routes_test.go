package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bramble/app/config"
	"bramble/app/models"
	"bramble/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedPageResponse struct {
	Items []struct {
		ID     int    `json:"id"`
		Author string `json:"author"`
		Group  string `json:"group"`
		Text   string `json:"text"`
	} `json:"items"`
	Number     int  `json:"number"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

type profileResponse struct {
	Author    string           `json:"author"`
	Following bool             `json:"following"`
	Page      feedPageResponse `json:"page"`
}

func newTestRouter(t *testing.T) (http.Handler, *badger.DB) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		PageSize:  10,
		CacheTTL:  time.Minute,
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	}
	return SetupRoutes(db, cfg), db
}

// do issues a request against the router. A non-empty token is sent as a
// bearer header; a non-nil body is marshaled to JSON.
func do(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dest))
}

// signup registers a user over HTTP and returns their bearer token.
func signup(t *testing.T, router http.Handler, username string) string {
	t.Helper()

	rec := do(t, router, http.MethodPost, "/auth/signup", "", map[string]string{
		"username": username,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createGroup(t *testing.T, db *badger.DB, title, slug string) {
	t.Helper()
	repo := repositories.NewBadgerGroupRepository(db)
	require.NoError(t, repo.Create(&models.Group{Title: title, Slug: slug}))
}

func TestSignupAndLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	signup(t, router, "alice")

	t.Run("duplicate username conflicts", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/auth/signup", "", map[string]string{
			"username": "alice",
			"password": "hunter22",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("login issues a token and session cookie", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/auth/login", "", map[string]string{
			"username": "alice",
			"password": "hunter22",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Token string `json:"token"`
		}
		decode(t, rec, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "session=")
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/auth/login", "", map[string]string{
			"username": "alice",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAnonymousMutationsRedirectToLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	paths := []struct {
		method, path string
	}{
		{http.MethodPost, "/posts"},
		{http.MethodPost, "/posts/1/edit"},
		{http.MethodPost, "/posts/1/comments"},
		{http.MethodPost, "/profile/alice/follow"},
		{http.MethodPost, "/profile/alice/unfollow"},
		{http.MethodGet, "/follow"},
	}
	for _, p := range paths {
		rec := do(t, router, p.method, p.path, "", map[string]string{"text": "hi"})
		assert.Equal(t, http.StatusFound, rec.Code, p.path)
		assert.Equal(t, "/auth/login", rec.Header().Get("Location"), p.path)
	}
}

func TestPostLifecycle(t *testing.T) {
	router, db := newTestRouter(t)
	createGroup(t, db, "Cats", "cats")
	alice := signup(t, router, "alice")

	var postID int
	t.Run("create", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/posts", alice, map[string]string{
			"text":  "first post",
			"group": "cats",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var post models.Post
		decode(t, rec, &post)
		assert.Greater(t, post.ID, 0)
		assert.Equal(t, "first post", post.Text)
		postID = post.ID
	})

	t.Run("detail", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, fmt.Sprintf("/posts/%d", postID), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Post     models.Post      `json:"post"`
			Comments []models.Comment `json:"comments"`
		}
		decode(t, rec, &resp)
		assert.Equal(t, "first post", resp.Post.Text)
		assert.Empty(t, resp.Comments)
	})

	t.Run("unknown group", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/posts", alice, map[string]string{
			"text":  "lost",
			"group": "nope",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("empty text", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/posts", alice, map[string]string{"text": ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing post is 404", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/posts/9999", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEditOnlyByAuthor(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := signup(t, router, "alice")
	bob := signup(t, router, "bob")

	rec := do(t, router, http.MethodPost, "/posts", alice, map[string]string{"text": "original"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	decode(t, rec, &post)
	editPath := fmt.Sprintf("/posts/%d/edit", post.ID)

	t.Run("non-author is redirected to the detail view", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, editPath, bob, map[string]string{"text": "hijacked"})
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, fmt.Sprintf("/posts/%d", post.ID), rec.Header().Get("Location"))
	})

	t.Run("author edits in place", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, editPath, alice, map[string]string{"text": "revised"})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var edited models.Post
		decode(t, rec, &edited)
		assert.Equal(t, "revised", edited.Text)
		assert.Equal(t, post.AuthorID, edited.AuthorID)
	})
}

func TestComments(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := signup(t, router, "alice")
	bob := signup(t, router, "bob")

	rec := do(t, router, http.MethodPost, "/posts", alice, map[string]string{"text": "discuss"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	decode(t, rec, &post)

	rec = do(t, router, http.MethodPost, fmt.Sprintf("/posts/%d/comments", post.ID), bob,
		map[string]string{"text": "nice one"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodGet, fmt.Sprintf("/posts/%d/comments", post.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var comments []models.Comment
	decode(t, rec, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice one", comments[0].Text)

	t.Run("unknown post", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/posts/9999/comments", bob,
			map[string]string{"text": "void"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGroupFeed(t *testing.T) {
	router, db := newTestRouter(t)
	createGroup(t, db, "Cats", "cats")
	alice := signup(t, router, "alice")

	rec := do(t, router, http.MethodPost, "/posts", alice, map[string]string{
		"text":  "meow",
		"group": "cats",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, router, http.MethodPost, "/posts", alice, map[string]string{"text": "ungrouped"})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("group shows only its own posts", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/group/cats", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Group models.Group     `json:"group"`
			Page  feedPageResponse `json:"page"`
		}
		decode(t, rec, &resp)
		assert.Equal(t, "cats", resp.Group.Slug)
		require.Len(t, resp.Page.Items, 1)
		assert.Equal(t, "meow", resp.Page.Items[0].Text)
	})

	t.Run("unknown slug is 404", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/group/dogs", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestFollowFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := signup(t, router, "alice")
	bob := signup(t, router, "bob")

	rec := do(t, router, http.MethodPost, "/posts", bob, map[string]string{"text": "from bob"})
	require.Equal(t, http.StatusCreated, rec.Code)

	profile := func(token string) profileResponse {
		rec := do(t, router, http.MethodGet, "/profile/bob", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp profileResponse
		decode(t, rec, &resp)
		return resp
	}

	t.Run("anonymous profile view never shows following", func(t *testing.T) {
		assert.False(t, profile("").Following)
	})

	t.Run("follow redirects and flips the flag", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/profile/bob/follow", alice, nil)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/profile/bob", rec.Header().Get("Location"))
		assert.True(t, profile(alice).Following)
	})

	t.Run("follow feed carries the followed author's posts", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/follow", alice, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var page feedPageResponse
		decode(t, rec, &page)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "bob", page.Items[0].Author)
	})

	t.Run("bob's own follow feed is empty", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/follow", bob, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var page feedPageResponse
		decode(t, rec, &page)
		assert.Empty(t, page.Items)
	})

	t.Run("unfollow redirects and clears the flag", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/profile/bob/unfollow", alice, nil)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.False(t, profile(alice).Following)
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		rec := do(t, router, http.MethodPost, "/profile/ghost/follow", alice, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestIndexPagination(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := signup(t, router, "alice")

	for i := 1; i <= 13; i++ {
		rec := do(t, router, http.MethodPost, "/posts", alice,
			map[string]string{"text": fmt.Sprintf("post %d", i)})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, router, http.MethodGet, "/?page=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var first feedPageResponse
	decode(t, rec, &first)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 2, first.TotalPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrev)
	assert.Equal(t, "post 13", first.Items[0].Text)

	rec = do(t, router, http.MethodGet, "/?page=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var second feedPageResponse
	decode(t, rec, &second)
	assert.Len(t, second.Items, 3)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrev)
}
