package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/erp/client/internal/domain/identity"
)

// AuthAPI wraps the authentication endpoints. Unlike the domain resources
// these use a bare (non-enveloped) contract: login returns
// {access_token, user} and verify-token returns the user profile directly;
// failures carry a human-readable "detail" field.
type AuthAPI struct {
	client *Client
}

// LoginResult is the canonical login success payload.
type LoginResult struct {
	AccessToken string               `json:"access_token"`
	User        identity.UserProfile `json:"user"`
}

// Login authenticates with the supplied identifier and secret. The endpoint
// expects a form-encoded body.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.client.baseURL+LoginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.httpClient.Do(req)
	if err != nil {
		return nil, unwrapURLError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("login response missing access_token")
	}

	a.client.logger.Debug("login succeeded", zap.String("username", username))
	return &result, nil
}

// VerifyToken validates the stored credential and fetches the current user
// profile in one round trip. A 401 surfaces through the pipeline as a session
// invalidation.
func (a *AuthAPI) VerifyToken(ctx context.Context) (*identity.UserProfile, error) {
	return a.getProfile(ctx, BasePath+"/auth/verify-token")
}

// Profile fetches the current user profile.
func (a *AuthAPI) Profile(ctx context.Context) (*identity.UserProfile, error) {
	return a.getProfile(ctx, BasePath+"/auth/profile")
}

func (a *AuthAPI) getProfile(ctx context.Context, path string) (*identity.UserProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.client.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.httpClient.Do(req)
	if err != nil {
		return nil, unwrapURLError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseError(resp)
	}

	var profile identity.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	return &profile, nil
}
