package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/erp/client/internal/domain/identity"
)

func TestLogin_Success(t *testing.T) {
	var gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, LoginPath, r.URL.Path)
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token":"abc123","user":{"id":"8f14e45f-ceea-467f-a8d9-000000000001","username":"alice","role":"seller"}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, zap.NewNop())

	result, err := client.Auth.Login(context.Background(), "alice", "s3cret-pass")

	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Contains(t, gotBody, "username=alice")
	assert.Contains(t, gotBody, "password=s3cret-pass")
	assert.Equal(t, "abc123", result.AccessToken)
	assert.Equal(t, "alice", result.User.Username)
	assert.Equal(t, identity.RoleSeller, result.User.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":"Credenciales incorrectas"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, zap.NewNop())

	_, err := client.Auth.Login(context.Background(), "alice", "wrong")

	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Credenciales incorrectas", apiErr.Detail)
}

func TestLogin_MissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"user":{"username":"alice"}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, zap.NewNop())

	_, err := client.Auth.Login(context.Background(), "alice", "s3cret-pass")

	assert.ErrorContains(t, err, "access_token")
}

func TestVerifyToken_ReturnsProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, BasePath+"/auth/verify-token", r.URL.Path)
		io.WriteString(w, `{"id":"8f14e45f-ceea-467f-a8d9-000000000001","username":"alice","display_name":"Alice","role":"admin"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, zap.NewNop())

	profile, err := client.Auth.VerifyToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.True(t, profile.IsAdmin())
}

func TestProfile_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":"token expired"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil, zap.NewNop())

	_, err := client.Auth.Profile(context.Background())

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
