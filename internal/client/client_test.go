package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/contact-manager/internal/models"
)

func testClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", opts...)
}

func TestCreate(t *testing.T) {
	var got models.ContactInput
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/contacts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Contact{ID: "abc", Name: got.Name})
	})

	out, err := c.Create(context.Background(), models.ContactInput{Name: "Jane", Email: "j@x.io", Phone: "1234567890"})
	require.NoError(t, err)
	assert.Equal(t, "abc", out.ID)
	assert.Equal(t, "Jane", got.Name)
}

func TestCreate_ValidationError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Name is required, Phone number must be 10 digits"}`))
	})

	_, err := c.Create(context.Background(), models.ContactInput{})
	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusBadRequest, ae.StatusCode)
	assert.Equal(t, "Name is required, Phone number must be 10 digits", ae.Message)
}

func TestList_NullBecomesEmpty(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	out, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestGet_NotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contacts/a%2Fb", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Contact not found"}`))
	})

	_, err := c.Get(context.Background(), "a/b")
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Contact not found")
}

func TestUpdate_SendsPatch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"message": "hi"}, body)
		_ = json.NewEncoder(w).Encode(models.Contact{ID: "c1", Message: "hi"})
	})

	msg := "hi"
	out, err := c.Update(context.Background(), "c1", models.ContactPatch{Message: &msg})
	require.NoError(t, err)
	assert.Equal(t, "hi", out.Message)
}

func TestDelete_ServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Server Error","error":"db down"}`))
	})

	err := c.Delete(context.Background(), "c1")
	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "Server Error: db down", ae.Message)
	assert.False(t, IsNotFound(err))
}

func TestNonJSONError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.Health(context.Background())
	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "Bad Gateway", ae.Message)
}

func TestHealth_Unhealthy(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/healthz", r.URL.Path)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unhealthy","error":"store unreachable"}`))
	})

	err := c.Health(context.Background())
	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusServiceUnavailable, ae.StatusCode)
	assert.Equal(t, "store unreachable", ae.Message)
}

func TestToken(t *testing.T) {
	var auth string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}, WithToken("tok"))

	_, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", auth)
}

func TestLogin(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"a","refresh_token":"r","expires_in":900}`))
	})

	tok, err := c.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, Tokens{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900}, tok)

	_, err = c.Login(context.Background(), "admin", "nope")
	assert.True(t, IsUnauthorized(err))
}

func TestContextCancel(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}, WithHTTPClient(&http.Client{Timeout: 5 * time.Second}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.List(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
