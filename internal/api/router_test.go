package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"institute-site-backend/config"
	"institute-site-backend/internal/chatbot"
	"institute-site-backend/internal/model"
	"institute-site-backend/internal/session"
	"institute-site-backend/internal/store"
	"institute-site-backend/internal/store/storetest"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testAdmin    = "registrar"
	testPassword = "s3cret-pass"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, s store.Store, server config.ServerConfig) *gin.Engine {
	t.Helper()
	sessions := session.NewManager(config.SessionConfig{
		Secret:        testSecret,
		CookieName:    "site_session",
		MaxAgeSeconds: 3600,
	})
	r, err := NewRouter(s, sessions, server, zerolog.Nop())
	require.NoError(t, err)
	return r
}

func seedAdmin(t *testing.T, s store.Store) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.InsertAdmin(context.Background(), &model.Admin{Username: testAdmin, PasswordHash: string(hash)}))
}

// client replays the cookies the server sets, like a browser would.
type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, handler: h}
}

func (c *client) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil, "")
}

func (c *client) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

func (c *client) postJSON(path, body string) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, strings.NewReader(body), "application/json")
}

func (c *client) login() {
	c.t.Helper()
	w := c.postForm("/admin/login", url.Values{"username": {testAdmin}, "password": {testPassword}})
	require.Equal(c.t, http.StatusSeeOther, w.Code)
	require.Equal(c.t, "/admin/dashboard", w.Header().Get("Location"))
}

func TestDashboard_RequiresLogin(t *testing.T) {
	s := storetest.NewSQLite(t)
	seedAdmin(t, s)
	c := newClient(t, newTestRouter(t, s, config.ServerConfig{}))

	w := c.get("/admin/dashboard")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	c.login()

	w = c.get("/admin/dashboard")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Signed in as "+testAdmin)
}

func TestAdminRoutes_Gated(t *testing.T) {
	s := storetest.NewSQLite(t)
	c := newClient(t, newTestRouter(t, s, config.ServerConfig{}))

	for _, path := range []string{"/admin/dashboard", "/admin/logout", "/admin/faculty", "/admin/events", "/admin/articles"} {
		w := c.get(path)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}

	w := c.postForm("/admin/faculty", url.Values{
		"name": {"Dr. Mehta"}, "designation": {"Professor"}, "department": {"ECE"}, "email": {"mehta@example.edu"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	faculty, err := s.ListFaculty(context.Background())
	require.NoError(t, err)
	assert.Empty(t, faculty)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := storetest.NewSQLite(t)
	seedAdmin(t, s)
	c := newClient(t, newTestRouter(t, s, config.ServerConfig{}))

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", testAdmin, "nope"},
		{"unknown user", "ghost", testPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := c.postForm("/admin/login", url.Values{"username": {tt.username}, "password": {tt.password}})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid username or password")
		})
	}

	assert.Equal(t, http.StatusSeeOther, c.get("/admin/dashboard").Code)
}

func TestLogin_MissingFields(t *testing.T) {
	s := storetest.NewSQLite(t)
	c := newClient(t, newTestRouter(t, s, config.ServerConfig{}))

	w := c.postForm("/admin/login", url.Values{"username": {testAdmin}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username and password are required")
	assert.Contains(t, w.Body.String(), `value="`+testAdmin+`"`)
}

func TestLoginPage(t *testing.T) {
	s := storetest.NewSQLite(t)
	seedAdmin(t, s)
	c := newClient(t, newTestRouter(t, s, config.ServerConfig{}))

	w := c.get("/admin/login")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/admin/login"`)

	c.login()

	w = c.get("/admin/login")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	s := storetest.NewSQLite(t)
	seedAdmin(t, s)
	c := newClient(t, newTestRouter(t, s, config.ServerConfig{}))
	c.login()

	w := c.get("/admin/logout")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = c.get("/admin/dashboard")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = c.get("/admin/logout")
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestAddFaculty(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewSQLite(t)
	seedAdmin(t, s)
	require.NoError(t, s.InsertFaculty(ctx, &model.Faculty{Name: "Dr. Iyer", Designation: "Professor", Department: "CSE", Email: "iyer@example.edu"}))
	c := newClient(t, newTestRouter(t, s, config.ServerConfig{}))
	c.login()

	w := c.postForm("/admin/faculty", url.Values{
		"name":        {"  Dr. Sen  "},
		"designation": {"Assistant Professor"},
		"department":  {"Mathematics"},
		"email":       {"sen@example.edu"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/faculty", w.Header().Get("Location"))

	faculty, err := s.ListFaculty(ctx)
	require.NoError(t, err)
	require.Len(t, faculty, 2)
	assert.Equal(t, "Dr. Sen", faculty[1].Name)

	w = c.get("/admin/faculty")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dr. Sen")

	w = newClient(t, c.handler).get("/faculty")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dr. Iyer")
	assert.Contains(t, w.Body.String(), "sen@example.edu")
}

func TestAddFaculty_MissingField(t *testing.T) {
	s := storetest.NewSQLite(t)
	seedAdmin(t, s)
	c := newClient(t, newTestRouter(t, s, config.ServerConfig{}))
	c.login()

	w := c.postForm("/admin/faculty", url.Values{
		"name":        {"Dr. Sen"},
		"designation": {"   "},
		"department":  {"Mathematics"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields: designation, email")
	assert.Contains(t, w.Body.String(), `value="Dr. Sen"`)

	faculty, err := s.ListFaculty(context.Background())
	require.NoError(t, err)
	assert.Empty(t, faculty)
}

func TestAddEvent(t *testing.T) {
	s := storetest.NewSQLite(t)
	seedAdmin(t, s)
	c := newClient(t, newTestRouter(t, s, config.ServerConfig{}))
	c.login()

	w := c.postForm("/admin/events", url.Values{
		"title":       {"Tech Fest"},
		"date":        {"2024-11-02"},
		"description": {"Two days of talks and demos."},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/events", w.Header().Get("Location"))

	w = c.postForm("/admin/events", url.Values{"title": {"Orientation"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields: date, description")

	events, err := s.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Tech Fest", events[0].Title)

	w = newClient(t, c.handler).get("/events")
	assert.Contains(t, w.Body.String(), "Two days of talks and demos.")
}

func TestAddArticle(t *testing.T) {
	s := storetest.NewSQLite(t)
	seedAdmin(t, s)
	c := newClient(t, newTestRouter(t, s, config.ServerConfig{}))
	c.login()

	w := c.postForm("/admin/articles", url.Values{
		"title":   {"Robotics lab"},
		"content": {"The **robotics** lab opens this term."},
		"author":  {"Dean of Research"},
		"date":    {"2024-08-01"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/articles", w.Header().Get("Location"))

	w = newClient(t, c.handler).get("/articles")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>robotics</strong>")
	assert.Contains(t, w.Body.String(), "Dean of Research")
}

func TestPublicListCache_InvalidatedOnInsert(t *testing.T) {
	s := storetest.NewSQLite(t)
	seedAdmin(t, s)
	r := newTestRouter(t, s, config.ServerConfig{CacheTTL: time.Minute})
	visitor := newClient(t, r)

	assert.Contains(t, visitor.get("/faculty").Body.String(), "No faculty listed yet.")
	assert.Equal(t, "HIT", visitor.get("/faculty").Header().Get("X-Cache"))

	admin := newClient(t, r)
	admin.login()
	w := admin.postForm("/admin/faculty", url.Values{
		"name": {"Dr. Rao"}, "designation": {"Professor"}, "department": {"CSE"}, "email": {"rao@example.edu"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = visitor.get("/faculty")
	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.Contains(t, w.Body.String(), "Dr. Rao")
}

func TestChatbot(t *testing.T) {
	ctx := context.Background()
	s := storetest.NewSQLite(t)
	rules := []model.ChatbotRule{
		{Priority: 20, Keywords: []string{"faculty", "professor"}, Response: "Our faculty page lists every professor."},
		{Priority: 10, Keywords: []string{"admission"}, Response: "Admissions open in July."},
		{Priority: 30, Keywords: []string{"when"}, Response: "Please check the events page."},
	}
	for i := range rules {
		require.NoError(t, s.InsertChatbotRule(ctx, &rules[i]))
	}
	c := newClient(t, newTestRouter(t, s, config.ServerConfig{}))

	tests := []struct {
		name string
		body string
		want string
	}{
		{"keyword match", `{"message":"When do Admissions start?"}`, `{"response":"Admissions open in July."}`},
		{"second rule", `{"message":"Who is the head PROFESSOR?"}`, `{"response":"Our faculty page lists every professor."}`},
		{"no match", `{"message":"cafeteria menu"}`, `{"response":"` + chatbot.FallbackResponse + `"}`},
		{"empty message", `{"message":""}`, `{"response":"` + chatbot.FallbackResponse + `"}`},
		{"missing message", `{}`, `{"response":"` + chatbot.FallbackResponse + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := c.postJSON("/chatbot", tt.body)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestChatbot_InvalidRequest(t *testing.T) {
	c := newClient(t, newTestRouter(t, storetest.NewSQLite(t), config.ServerConfig{}))

	for _, body := range []string{`{"message":`, `{"message":5}`, ``} {
		w := c.postJSON("/chatbot", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
	}
}

func TestChatbot_RateLimited(t *testing.T) {
	c := newClient(t, newTestRouter(t, storetest.NewSQLite(t), config.ServerConfig{RateLimitPerSec: 1, RateLimitBurst: 1}))

	assert.Equal(t, http.StatusOK, c.postJSON("/chatbot", `{"message":"hi"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, c.postJSON("/chatbot", `{"message":"hi"}`).Code)
}

func TestStoreFailure(t *testing.T) {
	c := newClient(t, newTestRouter(t, storetest.Failing{Err: errors.New("connection refused")}, config.ServerConfig{}))

	for _, path := range []string{"/faculty", "/events", "/articles"} {
		w := c.get(path)
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Contains(t, w.Body.String(), unavailableMessage, path)
		assert.NotContains(t, w.Body.String(), "connection refused", path)
	}

	w := c.postJSON("/chatbot", `{"message":"admissions"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())

	w = c.postForm("/admin/login", url.Values{"username": {testAdmin}, "password": {testPassword}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = c.get("/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
}

func TestStaticPages(t *testing.T) {
	c := newClient(t, newTestRouter(t, storetest.NewSQLite(t), config.ServerConfig{}))

	w := c.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="chatbot"`)

	w = c.get("/placements")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Placements")

	w = c.get("/static/site.css")
	assert.Equal(t, http.StatusOK, w.Code)

	w = c.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestChatbot_RateLimitIgnoresForwardedFor(t *testing.T) {
	r := newTestRouter(t, storetest.NewSQLite(t), config.ServerConfig{RateLimitPerSec: 1, RateLimitBurst: 1})

	send := func(forwardedFor string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/chatbot", strings.NewReader(`{"message":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.2"))
}

func TestNewRouter_InvalidTrustedProxies(t *testing.T) {
	sessions := session.NewManager(config.SessionConfig{Secret: testSecret, CookieName: "site_session"})
	_, err := NewRouter(storetest.NewSQLite(t), sessions, config.ServerConfig{TrustedProxies: []string{"not-an-ip"}}, zerolog.Nop())
	assert.ErrorContains(t, err, "invalid trusted proxies")
}
