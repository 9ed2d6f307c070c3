// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"codeberg.org/oliverandrich/scentbook/internal/config"
	"codeberg.org/oliverandrich/scentbook/internal/csrf"
	"codeberg.org/oliverandrich/scentbook/internal/i18n"
	"codeberg.org/oliverandrich/scentbook/internal/models"
	"codeberg.org/oliverandrich/scentbook/internal/repository"
	"codeberg.org/oliverandrich/scentbook/internal/services/auth"
	"codeberg.org/oliverandrich/scentbook/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: 8080, MaxBodySize: 1},
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret",
			JWTAlgorithm:     "HS256",
			JWTExpireMinutes: 30,
			CookieName:       "access_token",
			CookieSameSite:   "lax",
			HashKey:          testutil.TestHashKey,
		},
	}
}

func newTestServer(t *testing.T) (*echo.Echo, *repository.Repository) {
	t.Helper()
	require.NoError(t, i18n.Init())
	_, repo := testutil.NewTestDB(t)
	e, err := New(testConfig(), repo, auth.WithHashCost(bcrypt.MinCost))
	require.NoError(t, err)
	return e, repo
}

// browser tracks cookies and the CSRF token across requests like a browser.
type browser struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
	token   string
	bearer  string
}

func newBrowser(t *testing.T, e *echo.Echo) *browser {
	return &browser{t: t, e: e, cookies: map[string]*http.Cookie{}}
}

func (s *browser) do(req *http.Request) *httptest.ResponseRecorder {
	s.t.Helper()
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	if s.token != "" {
		req.Header.Set(csrf.HeaderName, s.token)
	}
	if s.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+s.bearer)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(s.cookies, c.Name)
			continue
		}
		s.cookies[c.Name] = c
	}
	return rec
}

func (s *browser) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *browser) postJSON(path, body string) *httptest.ResponseRecorder {
	return s.sendJSON(http.MethodPost, path, body)
}

func (s *browser) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return s.do(req)
}

func (s *browser) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return s.do(req)
}

func (s *browser) fetchCSRF() {
	s.t.Helper()
	rec := s.get("/api/auth/csrf-token")
	require.Equal(s.t, http.StatusOK, rec.Code)

	var body struct {
		CSRFToken string `json:"csrf_token"`
	}
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(s.t, body.CSRFToken)
	s.token = body.CSRFToken
}

func (s *browser) login(username, password string) *httptest.ResponseRecorder {
	return s.postForm("/api/auth/login", url.Values{"username": {username}, "password": {password}})
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)

	rec := newBrowser(t, e).get("/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPage_Main(t *testing.T) {
	e, _ := newTestServer(t)

	rec := newBrowser(t, e).get("/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="main-page"`)
	assert.Contains(t, rec.Body.String(), `name="csrf-token"`)
}

func TestPage_NotFound(t *testing.T) {
	e, _ := newTestServer(t)

	rec := newBrowser(t, e).get("/perfumes/unknown")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="not-found"`)
	assert.Contains(t, rec.Body.String(), "/perfumes/unknown")
}

func TestPage_TrailingSlashRedirect(t *testing.T) {
	e, _ := newTestServer(t)

	rec := newBrowser(t, e).get("/about/")

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/about", rec.Header().Get("Location"))
}

func TestPage_German(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	rec := newBrowser(t, e).do(req)

	assert.Contains(t, rec.Body.String(), `<html lang="de">`)
	assert.Contains(t, rec.Body.String(), "Seite nicht gefunden")
}

func TestCSRFToken(t *testing.T) {
	e, _ := newTestServer(t)
	s := newBrowser(t, e)

	s.fetchCSRF()

	require.Contains(t, s.cookies, csrf.CookieName)
	assert.Equal(t, s.token, s.cookies[csrf.CookieName].Value)
}

func TestLogin_RequiresCSRF(t *testing.T) {
	e, repo := newTestServer(t)
	testutil.NewTestUser(t, repo, "alice", models.RoleUser)

	rec := newBrowser(t, e).login("alice", testutil.TestPassword)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "detail")
}

func TestLogin_WrongPassword(t *testing.T) {
	e, repo := newTestServer(t)
	testutil.NewTestUser(t, repo, "alice", models.RoleUser)
	s := newBrowser(t, e)
	s.fetchCSRF()

	rec := s.login("alice", "wrong-password")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"detail":"Incorrect username or password"}`, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	e, _ := newTestServer(t)
	s := newBrowser(t, e)
	s.fetchCSRF()

	rec := s.get("/api/auth/me")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.postJSON("/api/auth/register", `{"username":"alice","email":"alice@example.com","password":"vetiver-and-iris"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.postJSON("/api/auth/register", `{"username":"alice","email":"other@example.com","password":"vetiver-and-iris"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Username already taken"}`, rec.Body.String())

	rec = s.login("alice", "vetiver-and-iris")
	require.Equal(t, http.StatusOK, rec.Code)
	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	assert.Equal(t, "bearer", tok.TokenType)
	assert.NotEmpty(t, tok.AccessToken)
	require.Contains(t, s.cookies, "access_token")

	rec = s.get("/api/auth/me")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)

	rec = s.get("/")
	assert.Contains(t, rec.Body.String(), "Signed in as alice")

	rec = s.postForm("/api/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, s.cookies, "access_token")

	rec = s.get("/api/auth/me")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The bearer token stays valid after the cookie is gone.
	s.bearer = tok.AccessToken
	rec = s.get("/api/auth/me")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister_ShortPassword(t *testing.T) {
	e, _ := newTestServer(t)
	s := newBrowser(t, e)
	s.fetchCSRF()

	rec := s.postJSON("/api/auth/register", `{"username":"bob","email":"bob@example.com","password":"short"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"Password must be at least 8 characters"}`, rec.Body.String())
}

func TestFragrances(t *testing.T) {
	e, repo := newTestServer(t)
	testutil.NewTestUser(t, repo, "alice", models.RoleUser)
	testutil.NewTestUser(t, repo, "root", models.RoleAdmin)

	anon := newBrowser(t, e)
	anon.fetchCSRF()
	rec := anon.postJSON("/fragrance/new-company", `{"name":"Hermès"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	user := newBrowser(t, e)
	user.fetchCSRF()
	require.Equal(t, http.StatusOK, user.login("alice", testutil.TestPassword).Code)
	rec = user.postJSON("/fragrance/new-fragrance", `{"name":"Terre"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"detail":"Role must be one of: admin"}`, rec.Body.String())

	admin := newBrowser(t, e)
	admin.fetchCSRF()
	require.Equal(t, http.StatusOK, admin.login("root", testutil.TestPassword).Code)

	rec = admin.postJSON("/fragrance/new-company", `{"name":"Hermès","description":"Paris"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var company models.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &company))

	body := `{"name":"Terre d'Hermès","company_id":` + jsonInt(company.ID) + `,"fragrance_type":"Eau de Toilette","ml":100}`
	rec = admin.postJSON("/fragrance/new-fragrance", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = admin.postJSON("/fragrance/new-fragrance", `{"name":"ab"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = anon.get("/fragrance")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Terre d'Hermès", list[0]["name"])
	assert.Equal(t, "Eau de Toilette", list[0]["fragrance_type"])
	assert.Nil(t, list[0]["price"])
}

func TestFragranceCommunity(t *testing.T) {
	e, repo := newTestServer(t)
	testutil.NewTestUser(t, repo, "alice", models.RoleUser)
	oud := testutil.NewTestFragrance(t, repo, "Oud Nocturne")
	iris := testutil.NewTestFragrance(t, repo, "Iris Pallida")
	base := "/fragrance/" + jsonInt(oud.ID)

	anon := newBrowser(t, e)
	anon.fetchCSRF()
	rec := anon.postJSON(base+"/reviews", `{"content":"Smoky.","rating":8}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	alice := newBrowser(t, e)
	alice.fetchCSRF()
	require.Equal(t, http.StatusOK, alice.login("alice", testutil.TestPassword).Code)

	rec = alice.postJSON(base+"/reviews", `{"content":"Smoky.","rating":10.5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = alice.postJSON(base+"/reviews", `{"content":"Smoky.","rating":8}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = alice.sendJSON(http.MethodPut, base+"/wishlist", `{"status":"owned"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = alice.sendJSON(http.MethodPut, base+"/votes/season", `{"value":"winter"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = alice.postJSON(base+"/similar", `{"similar_id":`+jsonInt(iris.ID)+`}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = alice.get("/fragrance/wishlist")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"owned"`)

	rec = anon.get(base)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rating":{"average":8,"count":1}`)

	rec = anon.get(base + "/votes")
	assert.JSONEq(t, `[{"kind":"season","value":"winter","count":1}]`, rec.Body.String())

	rec = anon.get("/fragrance/999")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	noToken := newBrowser(t, e)
	noToken.cookies = alice.cookies
	rec = noToken.sendJSON(http.MethodDelete, base+"/wishlist", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func jsonInt(i int64) string {
	b, _ := json.Marshal(i)
	return string(b)
}
