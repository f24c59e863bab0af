package oauth

import (
	"strings"
	"testing"
)

func newTestAzureAD(secret string) *AzureAD {
	return NewAzureAD("tenant-1", "client-1", "shhh", "http://localhost:3000/auth/azuread/callback", secret)
}

func TestStateRoundTrip(t *testing.T) {
	a := newTestAzureAD("state-secret")

	state := a.MakeState("nonce-123")
	if !a.VerifyState(state) {
		t.Fatalf("expected state to verify")
	}
}

func TestStateRejectsTampering(t *testing.T) {
	a := newTestAzureAD("state-secret")
	state := a.MakeState("nonce-123")

	t.Run("altered payload", func(t *testing.T) {
		tampered := strings.Replace(state, "nonce", "fake!", 1)
		if a.VerifyState(tampered) {
			t.Fatalf("expected tampered state to fail")
		}
	})

	t.Run("missing signature", func(t *testing.T) {
		if a.VerifyState("nonce-123") {
			t.Fatalf("expected unsigned state to fail")
		}
	})

	t.Run("different key", func(t *testing.T) {
		other := newTestAzureAD("other-secret")
		if other.VerifyState(state) {
			t.Fatalf("expected state signed with another key to fail")
		}
	})
}

func TestAuthURL(t *testing.T) {
	a := newTestAzureAD("state-secret")
	url := a.AuthURL("some-state")

	for _, want := range []string{"tenant-1", "client_id=client-1", "state=some-state", "response_mode=form_post"} {
		if !strings.Contains(url, want) {
			t.Fatalf("auth url missing %q: %s", want, url)
		}
	}
}
