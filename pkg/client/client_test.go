package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aimrealty.com/estateapi/internal/dto"
)

func newTestServer(listCalls *int32) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/properties", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(listCalls, 1)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []interface{}{},
			"meta": map[string]interface{}{"current_page": 1},
		})
	})

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "aim_session", Value: "abc", Path: "/"})
		json.NewEncoder(w).Encode(map[string]interface{}{"user": map[string]interface{}{
			"username": "jwan",
		}})
	})

	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "logged out"})
	})

	mux.HandleFunc("/api/inquiries", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "message is required"})
	})

	return httptest.NewServer(mux)
}

func TestClientCachesReads(t *testing.T) {
	var listCalls int32
	srv := newTestServer(&listCalls)
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.ListProperties(ctx, url.Values{})
	require.NoError(t, err)
	_, err = c.ListProperties(ctx, url.Values{})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&listCalls))

	// A different query string is a different descriptor.
	query := url.Values{}
	query.Set("city", "erbil")
	_, err = c.ListProperties(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&listCalls))
}

func TestClientLoginAndLogoutClearCache(t *testing.T) {
	var listCalls int32
	srv := newTestServer(&listCalls)
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.ListProperties(ctx, url.Values{})
	require.NoError(t, err)
	require.Equal(t, 1, c.Cache().Len())

	user, err := c.Login(ctx, "jwan@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "jwan", user.Username)
	assert.Equal(t, 0, c.Cache().Len())

	_, err = c.ListProperties(ctx, url.Values{})
	require.NoError(t, err)
	require.Equal(t, 1, c.Cache().Len())

	require.NoError(t, c.Logout(ctx))

	// Everything from the session is gone except the seeded null identity,
	// so the next auth check resolves without a request.
	assert.Equal(t, 1, c.Cache().Len())

	user, err = c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	var listCalls int32
	srv := newTestServer(&listCalls)
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.CreateInquiry(context.Background(), dto.CreateInquiryInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message is required")
}
