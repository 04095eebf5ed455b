//go:build integration

package integration_test

import (
	"net/http"
	"os"
	"testing"

	"github.com/brokerx/engine/tests/testutils"
)

// TestRegisterSendsRealEmail exercises registration against a server
// configured with real SMTP credentials. The verification code itself is
// delivered out-of-band by email, so this only confirms the send path
// does not error; check the inbox manually to confirm delivery.
func TestRegisterSendsRealEmail(t *testing.T) {
	smtpUsername := os.Getenv("SMTP_USERNAME")
	if smtpUsername == "" {
		t.Skip("SMTP_USERNAME not configured, skipping real email test")
	}

	client := testutils.NewTestClient()

	registerRequest := map[string]interface{}{
		"email":       smtpUsername,
		"password":    "correct-horse-battery-staple",
		"given_name":  "Smtp",
		"family_name": "Tester",
	}

	resp, _ := client.Post(t, testutils.GetAPIPath("/auth/register"), registerRequest)
	testutils.AssertStatusCreated(t, resp)

	t.Logf("Registration email dispatched to %s; check inbox for the verification code", smtpUsername)
}

// TestRegisterInvalidRecipient tests error handling for malformed email addresses.
func TestRegisterInvalidRecipient(t *testing.T) {
	client := testutils.NewTestClient()

	registerRequest := map[string]interface{}{
		"email":       "not-a-valid-email",
		"password":    "correct-horse-battery-staple",
		"given_name":  "A",
		"family_name": "B",
	}

	resp, body := client.Post(t, testutils.GetAPIPath("/auth/register"), registerRequest)
	testutils.AssertStatus(t, resp, http.StatusBadRequest)

	var errorResponse struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	testutils.UnmarshalResponse(t, body, &errorResponse)
	t.Logf("Invalid email correctly rejected: %s", errorResponse.Error.Message)
}
