package wire

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/database/dbtest"
	"Inkstone/internal/pkg/response"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testApp struct {
	t      *testing.T
	router http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT:    config.JWTConfig{Secret: "integration-secret", Issuer: "inkstone", Expiration: 1},
		Upload: config.UploadConfig{MaxSize: 1 << 20},
	}
	app, err := BuildApplication(cfg, Infra{DB: dbtest.New(t)})
	require.NoError(t, err)
	require.NoError(t, app.UserService.EnsureAdmin(context.Background(), "root", "root@example.com", "root-password"))
	return &testApp{t: t, router: app.Router}
}

func (a *testApp) do(method, path, token string, body any) envelope {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func (a *testApp) login(username, password string) string {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/user/login", "", map[string]any{"username": username, "password": password})
	require.Equal(a.t, response.Ok, resp.Code, resp.Message)
	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(resp.Data, &auth))
	return auth.Token
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

type postView struct {
	ID          uint64  `json:"id"`
	Slug        string  `json:"slug"`
	IsPublished bool    `json:"is_published"`
	PublishedAt *string `json:"published_at"`
}

func TestPublishingFlow(t *testing.T) {
	app := newTestApp(t)
	admin := app.login("root", "root-password")

	created := app.do(http.MethodPost, "/api/posts", admin, map[string]any{
		"title":   "Hello",
		"content": "World",
		"slug":    "hello",
	})
	require.Equal(t, response.Ok, created.Code, created.Message)
	var post postView
	require.NoError(t, json.Unmarshal(created.Data, &post))
	assert.False(t, post.IsPublished)
	assert.Nil(t, post.PublishedAt)

	// 草稿对匿名用户不可见
	draft := app.do(http.MethodGet, "/api/posts/slug/hello", "", nil)
	require.Equal(t, response.Ok, draft.Code)
	assert.True(t, isNull(draft.Data))

	asAdmin := app.do(http.MethodGet, "/api/posts/slug/hello", admin, nil)
	require.Equal(t, response.Ok, asAdmin.Code)
	assert.False(t, isNull(asAdmin.Data))

	published := app.do(http.MethodPost, fmt.Sprintf("/api/posts/%d/publish", post.ID), admin, nil)
	require.Equal(t, response.Ok, published.Code, published.Message)
	require.NoError(t, json.Unmarshal(published.Data, &post))
	assert.True(t, post.IsPublished)
	require.NotNil(t, post.PublishedAt)

	list := app.do(http.MethodGet, "/api/posts/published", "", nil)
	require.Equal(t, response.Ok, list.Code)
	var posts []postView
	require.NoError(t, json.Unmarshal(list.Data, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].Slug)

	detail := app.do(http.MethodGet, fmt.Sprintf("/api/posts/detail/%d", post.ID), "", nil)
	require.Equal(t, response.Ok, detail.Code)
	assert.False(t, isNull(detail.Data))

	dup := app.do(http.MethodPost, "/api/posts", admin, map[string]any{
		"title":   "Again",
		"content": "World",
		"slug":    "hello",
	})
	assert.Equal(t, response.Conflict, dup.Code)

	patched := app.do(http.MethodPut, fmt.Sprintf("/api/posts/%d", post.ID), admin, map[string]any{"excerpt": "short"})
	require.Equal(t, response.Ok, patched.Code, patched.Message)

	deleted := app.do(http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), admin, nil)
	require.Equal(t, response.Ok, deleted.Code)
	missing := app.do(http.MethodGet, fmt.Sprintf("/api/posts/detail/%d", post.ID), admin, nil)
	require.Equal(t, response.Ok, missing.Code)
	assert.True(t, isNull(missing.Data))
	assert.Equal(t, response.NotFound, app.do(http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID), admin, nil).Code)
}

func TestAccessControl(t *testing.T) {
	app := newTestApp(t)

	registered := app.do(http.MethodPost, "/api/user/register", "", map[string]any{
		"username": "alice",
		"email":    "Alice@Example.com",
		"password": "alice-password",
	})
	require.Equal(t, response.Ok, registered.Code, registered.Message)
	assert.NotContains(t, string(registered.Data), "password")

	user := app.login("alice", "alice-password")

	assert.Equal(t, response.Unauthorized, app.do(http.MethodGet, "/api/posts", "", nil).Code)
	assert.Equal(t, response.Forbidden, app.do(http.MethodGet, "/api/posts", user, nil).Code)
	assert.Equal(t, response.Forbidden, app.do(http.MethodGet, "/api/media", user, nil).Code)

	escalate := app.do(http.MethodPost, "/api/user/register", user, map[string]any{
		"username": "mallory",
		"email":    "mallory@example.com",
		"password": "mallory-password",
		"is_admin": true,
	})
	assert.Equal(t, response.Forbidden, escalate.Code)

	badLogin := app.do(http.MethodPost, "/api/user/login", "", map[string]any{"username": "alice", "password": "wrong-password"})
	assert.Equal(t, response.Unauthorized, badLogin.Code)

	info := app.do(http.MethodGet, "/api/user/info", user, nil)
	require.Equal(t, response.Ok, info.Code)
	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(info.Data, &me))
	assert.Equal(t, "alice@example.com", me.Email)
}

func TestValidationEnvelopeListsEveryField(t *testing.T) {
	app := newTestApp(t)
	admin := app.login("root", "root-password")

	resp := app.do(http.MethodPost, "/api/posts", admin, map[string]any{"title": ""})
	require.Equal(t, response.BadRequest, resp.Code)

	var violations []struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &violations))
	fields := make([]string, 0, len(violations))
	for _, v := range violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"title", "content", "slug"}, fields)

	media := app.do(http.MethodPost, "/api/media", admin, map[string]any{
		"filename":      "a.png",
		"original_name": "a.png",
		"mime_type":     "image/png",
		"file_size":     10,
		"file_path":     "a.png",
		"post_id":       9999,
	})
	assert.Equal(t, response.NotFound, media.Code)

	upload := app.do(http.MethodPost, "/api/media/upload", admin, nil)
	assert.NotEqual(t, response.Ok, upload.Code)
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, response.Ok, app.do(http.MethodGet, "/api/ping", "", nil).Code)

	resp := app.do(http.MethodGet, "/api/healthcheck", "", nil)
	require.Equal(t, response.Ok, resp.Code)
	var health struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &health))
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Timestamp)
}
