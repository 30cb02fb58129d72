package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/userbase/userbase-go/internal/middleware"
	"github.com/userbase/userbase-go/internal/repository"
	"github.com/userbase/userbase-go/internal/service"
)

var testSecret = []byte("test-secret")

// newTestServer wires the full router against an in-memory store, mirroring
// the wiring in cmd/api.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := repository.NewMemoryUserStore()
	authService := service.NewAuthService(store, testSecret, time.Hour, bcrypt.MinCost)
	authHandler := NewAuthHandler(authService, time.Hour)
	userService := service.NewUserService(store)
	userHandler := NewUserHandler(userService)

	r := chi.NewRouter()
	r.Post("/api/v1/auth/register", authHandler.HandleRegister)
	r.Post("/api/v1/auth/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(testSecret))
		r.Delete("/api/v1/auth/logout", authHandler.HandleLogout)
		r.Get("/api/v1/users", userHandler.HandleListUsers)
		r.Put("/api/v1/users/{id}", userHandler.HandleUpdateUser)
		r.Delete("/api/v1/users/{id}", userHandler.HandleDeleteUser)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]json.RawMessage{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func register(t *testing.T, client *http.Client, baseURL, name, email string) string {
	t.Helper()

	resp, body := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/register", map[string]string{
		"name":       name,
		"email":      email,
		"password":   "secret1",
		"phone":      "1234567890",
		"profession": "Engineer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var id string
	require.NoError(t, json.Unmarshal(body["id"], &id))
	return id
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) *http.Response {
	t.Helper()

	resp, _ := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	return resp
}

func TestRegisterAndDuplicate(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	register(t, client, srv.URL, "A", "a@x.com")

	resp, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/auth/register", map[string]string{
		"name":       "A",
		"email":      "a@x.com",
		"password":   "secret1",
		"phone":      "1234567890",
		"profession": "Engineer",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterValidationError(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, body := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/auth/register", map[string]string{
		"name":       "A",
		"email":      "a@x.com",
		"password":   "secret1",
		"phone":      "1234567890",
		"profession": "Astronaut",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body["error"]), "profession")
}

func TestLoginSetsCookie(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	register(t, client, srv.URL, "A", "a@x.com")

	resp, err := client.Post(srv.URL+"/api/v1/auth/login", "application/json",
		strings.NewReader(`{"email":"a@x.com","password":"secret1"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokenCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == middleware.TokenCookie {
			tokenCookie = c
		}
	}
	require.NotNil(t, tokenCookie, "login must set the session cookie")
	assert.True(t, tokenCookie.HttpOnly)
	assert.NotEmpty(t, tokenCookie.Value)
	assert.Equal(t, int(time.Hour.Seconds()), tokenCookie.MaxAge)
}

func TestLoginUniformFailureMessage(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	register(t, client, srv.URL, "A", "a@x.com")

	unknownResp, unknownBody := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/auth/login", map[string]string{
		"email": "nobody@x.com", "password": "secret1",
	})
	wrongResp, wrongBody := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/auth/login", map[string]string{
		"email": "a@x.com", "password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, unknownResp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, wrongResp.StatusCode)
	assert.Equal(t, string(unknownBody["error"]), string(wrongBody["error"]),
		"unknown email and wrong password must be indistinguishable")
}

func TestListUsersRequiresToken(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	resp, err := client.Get(srv.URL + "/api/v1/users")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListUsersExcludesPassword(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	register(t, client, srv.URL, "A", "a@x.com")
	loginResp := login(t, client, srv.URL, "a@x.com", "secret1")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)

	resp, err := client.Get(srv.URL + "/api/v1/users")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "a@x.com")
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "$2a$")
}

func TestLogoutClearsCookie(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	register(t, client, srv.URL, "A", "a@x.com")
	require.Equal(t, http.StatusOK, login(t, client, srv.URL, "a@x.com", "secret1").StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/auth/logout", nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == middleware.TokenCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "logout must clear the session cookie")

	// The jar drops the cleared cookie, so the next request has no token.
	listResp, err := client.Get(srv.URL + "/api/v1/users")
	require.NoError(t, err)
	defer listResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, listResp.StatusCode)
}
