package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"campus-portal/internal/oauth"
)

func postCallback(env *testEnv, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/azuread/callback", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return env.do(req)
}

func TestAuthLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(httptest.NewRequest(http.MethodGet, "/auth/azuread", nil))
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "https://login.example.test/authorize?state=") {
		t.Fatalf("unexpected redirect: %q", loc)
	}
	if !strings.HasSuffix(loc, ".sig") {
		t.Fatalf("expected signed state in redirect: %q", loc)
	}
}

func TestAuthCallback(t *testing.T) {
	claims := &oauth.Claims{
		Subject:    "sub-1",
		UPN:        "jane.doe@asoiu.edu.az",
		GivenName:  "Jane",
		FamilyName: "Doe",
	}

	t.Run("creates the user and opens a session", func(t *testing.T) {
		env := newTestEnv(t)
		env.provider.claims = claims

		w := postCallback(env, url.Values{"code": {"abc"}, "state": {"nonce.sig"}})
		assertRedirect(t, w, "/")

		if env.users.createCalls != 1 {
			t.Fatalf("expected one create, got %d", env.users.createCalls)
		}

		var sid string
		for _, c := range w.Result().Cookies() {
			if c.Name == sessionCookie {
				sid = c.Value
			}
		}
		if sid == "" {
			t.Fatalf("expected session cookie to be set")
		}
		userID, err := env.sessions.Get(sid)
		if err != nil || userID == "" {
			t.Fatalf("expected session to resolve, got %q (%v)", userID, err)
		}
		if userID != env.users.usersByEmail["jane.doe@asoiu.edu.az"] {
			t.Fatalf("session bound to wrong user: %q", userID)
		}
	})

	t.Run("repeat login reuses the account", func(t *testing.T) {
		env := newTestEnv(t)
		env.provider.claims = claims

		postCallback(env, url.Values{"code": {"abc"}, "state": {"nonce.sig"}})
		postCallback(env, url.Values{"code": {"abc"}, "state": {"nonce.sig"}})

		if env.users.createCalls != 1 {
			t.Fatalf("expected a single create, got %d", env.users.createCalls)
		}
	})

	t.Run("foreign domain is turned away", func(t *testing.T) {
		env := newTestEnv(t)
		env.provider.claims = &oauth.Claims{
			Subject: "sub-2",
			UPN:     "mallory@gmail.com",
		}

		w := postCallback(env, url.Values{"code": {"abc"}, "state": {"nonce.sig"}})
		assertRedirect(t, w, "/login")
		if env.users.createCalls != 0 {
			t.Fatalf("expected no create, got %d", env.users.createCalls)
		}
	})

	t.Run("missing code goes back to login", func(t *testing.T) {
		env := newTestEnv(t)
		w := postCallback(env, url.Values{"state": {"nonce.sig"}})
		assertRedirect(t, w, "/login")
	})

	t.Run("bad state goes back to login", func(t *testing.T) {
		env := newTestEnv(t)
		w := postCallback(env, url.Values{"code": {"abc"}, "state": {"forged"}})
		assertRedirect(t, w, "/login")
	})
}

func TestAuthLogout(t *testing.T) {
	env := newTestEnv(t)
	env.provider.claims = &oauth.Claims{
		Subject: "sub-1",
		UPN:     "jane.doe@asoiu.edu.az",
	}

	w := postCallback(env, url.Values{"code": {"abc"}, "state": {"nonce.sig"}})
	var sid string
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatalf("expected session cookie after login")
	}

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: sid})
	assertRedirect(t, env.do(req), "/")

	userID, err := env.sessions.Get(sid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "" {
		t.Fatalf("expected session to be revoked, still resolves %q", userID)
	}
}
