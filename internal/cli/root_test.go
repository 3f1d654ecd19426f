package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/client/internal/api"
)

const testUserJSON = `{"id":"8f14e45f-ceea-467f-a8d9-000000000001","username":"alice","display_name":"Alice","role":"seller"}`

// newBackend serves the handful of endpoints the commands under test hit.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+api.LoginPath, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "s3cret-pass" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"detail":"Credenciales incorrectas"}`)
			return
		}
		io.WriteString(w, `{"access_token":"abc123","user":`+testUserJSON+`}`)
	})
	mux.HandleFunc("GET "+api.BasePath+"/auth/verify-token", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		io.WriteString(w, testUserJSON)
	})
	mux.HandleFunc("GET "+api.BasePath+"/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		io.WriteString(w, `{"success":true,"data":[{"id":"8f14e45f-ceea-467f-a8d9-000000000002","code":"SKU-1","name":"Widget","price":"19.90","is_active":true}],"meta":{"page":1,"page_size":20,"total":1}}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// runCommand executes a fresh command tree, the way one shell invocation would.
func runCommand(t *testing.T, server string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand("test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--server", server}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func setupSessionFile(t *testing.T) {
	t.Helper()
	t.Setenv("ERPCLI_SESSION_TOKEN_FILE", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("ERPCLI_LOG_LEVEL", "error")
}

func TestCLI_LoginStatusLogout(t *testing.T) {
	srv := newBackend(t)
	setupSessionFile(t)

	out, err := runCommand(t, srv.URL, "auth", "login", "-u", "alice", "-p", "s3cret-pass")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Alice (seller)")

	// The session persists across invocations through the token file.
	out, err = runCommand(t, srv.URL, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Alice")
	assert.Contains(t, out, "role:     seller")

	out, err = runCommand(t, srv.URL, "auth", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	out, err = runCommand(t, srv.URL, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestCLI_LoginWrongPassword(t *testing.T) {
	srv := newBackend(t)
	setupSessionFile(t)

	_, err := runCommand(t, srv.URL, "auth", "login", "-u", "alice", "-p", "wrong")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Credenciales incorrectas")

	// A failed login leaves no session behind.
	out, err := runCommand(t, srv.URL, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestCLI_ProductListRequiresSession(t *testing.T) {
	srv := newBackend(t)
	setupSessionFile(t)

	_, err := runCommand(t, srv.URL, "product", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestCLI_ProductList(t *testing.T) {
	srv := newBackend(t)
	setupSessionFile(t)

	_, err := runCommand(t, srv.URL, "auth", "login", "-u", "alice", "-p", "s3cret-pass")
	require.NoError(t, err)

	out, err := runCommand(t, srv.URL, "product", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "SKU-1")
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, "19.9")
	assert.Contains(t, out, "1 total")
}

func TestCLI_ExpiredSessionDropsToken(t *testing.T) {
	setupSessionFile(t)

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+api.LoginPath, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"access_token":"abc123","user":`+testUserJSON+`}`)
	})
	mux.HandleFunc("GET "+api.BasePath+"/auth/verify-token", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, testUserJSON)
	})
	mux.HandleFunc("GET "+api.BasePath+"/products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	_, err := runCommand(t, srv.URL, "auth", "login", "-u", "alice", "-p", "s3cret-pass")
	require.NoError(t, err)

	// The server now rejects the token mid-session.
	_, err = runCommand(t, srv.URL, "product", "list")
	require.Error(t, err)

	// And the stale token is gone, so the next command asks for a login.
	_, err = runCommand(t, srv.URL, "product", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}
