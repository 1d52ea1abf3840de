//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/fitforge/internal/account"
	"github.com/2beens/fitforge/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doLogin(ctx context.Context) account.LoginResponse {
	loginReqJson, err := json.Marshal(account.LoginRequest{
		Email:    testEmail,
		Password: testPassword,
	})
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/auth/login", serverEndpoint), bytes.NewBuffer(loginReqJson))
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var loginResp account.LoginResponse
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&loginResp))
	require.NotEmpty(s.T(), loginResp.Token)

	return loginResp
}

// doRequest sends an authenticated request, in is marshalled as the JSON body when not nil.
func (s *IntegrationTestSuite) doRequest(ctx context.Context, token, method, path string, in any) *http.Response {
	var body io.Reader
	if in != nil {
		inJson, err := json.Marshal(in)
		require.NoError(s.T(), err)
		body = bytes.NewReader(inJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, body)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	return resp
}

func (s *IntegrationTestSuite) TestLoginAndLogout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loginResp := s.doLogin(ctx)
	assert.Equal(t, testUID, loginResp.UID)

	resp := s.doRequest(ctx, loginResp.Token, "GET", "/workouts", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.doRequest(ctx, loginResp.Token, "GET", "/auth/logout", nil)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "logged-out", string(respBytes))

	// the token is gone from redis, the same token cannot be used anymore
	resp = s.doRequest(ctx, loginResp.Token, "GET", "/workouts", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.doRequest(ctx, loginResp.Token, "GET", "/auth/logout", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestMissingToken() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, path := range []string{"/workouts", "/diets", "/profile", "/events", "/sessions/current"} {
		resp := s.doRequest(ctx, "", "GET", path, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp := s.doRequest(ctx, "", "GET", "/version", nil)
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(respBytes), "test-version-info")
}
