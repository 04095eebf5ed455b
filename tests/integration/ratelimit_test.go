//go:build integration

package integration_test

import (
	"testing"
	"time"

	"github.com/brokerx/engine/tests/testutils"
)

// TestLoginRateLimit tests that login attempts are rate limited per IP.
// Disabled: rate limiting is only enabled in production environment.
func TestLoginRateLimit(t *testing.T) {
	t.Skip("Rate limiting is disabled in non-production environments")
	client := testutils.NewTestClient()
	loginPath := testutils.GetAPIPath("/auth/login")

	requestBody := map[string]interface{}{
		"email":    "ratelimit@test.com",
		"password": "wrong-password",
	}

	t.Run("first_request_processed", func(t *testing.T) {
		resp, _ := client.Post(t, loginPath, requestBody)
		if resp.StatusCode == 429 {
			t.Error("First request should not be rate limited")
		}
	})

	t.Run("second_request_rate_limited", func(t *testing.T) {
		resp, body := client.Post(t, loginPath, requestBody)

		if resp.StatusCode != 429 {
			t.Errorf("Expected status 429 Too Many Requests, got %d", resp.StatusCode)
		}

		var errorResponse struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		testutils.UnmarshalResponse(t, body, &errorResponse)

		if errorResponse.Error.Code != "RATE_LIMIT_EXCEEDED" {
			t.Errorf("Expected error code RATE_LIMIT_EXCEEDED, got %s", errorResponse.Error.Code)
		}
	})

	t.Run("request_after_cooldown_succeeds", func(t *testing.T) {
		t.Log("Waiting 11 seconds for rate limit to expire...")
		time.Sleep(11 * time.Second)

		resp, _ := client.Post(t, loginPath, requestBody)
		if resp.StatusCode == 429 {
			t.Error("Request after cooldown should not be rate limited")
		}
	})
}

// TestLoginRateLimitIsolation tests that rate limiting is per-IP, not per-email.
// Disabled: rate limiting is only enabled in production environment.
func TestLoginRateLimitIsolation(t *testing.T) {
	t.Skip("Rate limiting is disabled in non-production environments")
	client := testutils.NewTestClient()
	loginPath := testutils.GetAPIPath("/auth/login")

	resp1, _ := client.Post(t, loginPath, map[string]interface{}{
		"email":    "user1@test.com",
		"password": "whatever",
	})
	if resp1.StatusCode == 429 {
		t.Error("First login attempt should not be rate limited")
	}

	resp2, _ := client.Post(t, loginPath, map[string]interface{}{
		"email":    "user2@test.com",
		"password": "whatever",
	})
	if resp2.StatusCode != 429 {
		t.Errorf("Expected rate limit (429) for same IP different email, got %d", resp2.StatusCode)
	}
}
