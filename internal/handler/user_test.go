package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUser(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	id := register(t, client, srv.URL, "A", "a@x.com")
	require.Equal(t, http.StatusOK, login(t, client, srv.URL, "a@x.com", "secret1").StatusCode)

	resp, body := doJSON(t, client, http.MethodPut, srv.URL+"/api/v1/users/"+id, map[string]string{
		"name":  "Alice",
		"phone": "0987654321",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"Alice"`, string(body["name"]))
	assert.JSONEq(t, `"0987654321"`, string(body["phone"]))
	assert.JSONEq(t, `"a@x.com"`, string(body["email"]), "email is not updatable")
}

func TestUpdateUserPartial(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	id := register(t, client, srv.URL, "A", "a@x.com")
	require.Equal(t, http.StatusOK, login(t, client, srv.URL, "a@x.com", "secret1").StatusCode)

	resp, body := doJSON(t, client, http.MethodPut, srv.URL+"/api/v1/users/"+id, map[string]string{
		"name": "Alice",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"Alice"`, string(body["name"]))
	assert.JSONEq(t, `"1234567890"`, string(body["phone"]), "absent phone keeps stored value")
}

func TestUpdateUserNotFound(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	register(t, client, srv.URL, "A", "a@x.com")
	require.Equal(t, http.StatusOK, login(t, client, srv.URL, "a@x.com", "secret1").StatusCode)

	resp, _ := doJSON(t, client, http.MethodPut, srv.URL+"/api/v1/users/missing-id", map[string]string{
		"name": "B",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateUserInvalidPhone(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	id := register(t, client, srv.URL, "A", "a@x.com")
	require.Equal(t, http.StatusOK, login(t, client, srv.URL, "a@x.com", "secret1").StatusCode)

	resp, _ := doJSON(t, client, http.MethodPut, srv.URL+"/api/v1/users/"+id, map[string]string{
		"phone": "123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteUser(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	otherID := register(t, client, srv.URL, "B", "b@x.com")
	register(t, client, srv.URL, "A", "a@x.com")
	require.Equal(t, http.StatusOK, login(t, client, srv.URL, "a@x.com", "secret1").StatusCode)

	resp, _ := doJSON(t, client, http.MethodDelete, srv.URL+"/api/v1/users/"+otherID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A second delete of the same user is a 404.
	resp, _ = doJSON(t, client, http.MethodDelete, srv.URL+"/api/v1/users/"+otherID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteSelfRejected(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	id := register(t, client, srv.URL, "A", "a@x.com")
	require.Equal(t, http.StatusOK, login(t, client, srv.URL, "a@x.com", "secret1").StatusCode)

	resp, body := doJSON(t, client, http.MethodDelete, srv.URL+"/api/v1/users/"+id, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body["error"]), "logged in user")
}

func TestDeleteUserNotFound(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	register(t, client, srv.URL, "A", "a@x.com")
	require.Equal(t, http.StatusOK, login(t, client, srv.URL, "a@x.com", "secret1").StatusCode)

	resp, _ := doJSON(t, client, http.MethodDelete, srv.URL+"/api/v1/users/missing-id", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
