package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campus-portal/internal/domain"
)

func TestSearch(t *testing.T) {
	t.Run("no matches answers 404", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(httptest.NewRequest(http.MethodGet, "/search?query=Doe", nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if w.Body.String() != "No users or files found" {
			t.Fatalf("unexpected body: %q", w.Body.String())
		}
	})

	t.Run("renders matches from both categories", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.searchResult = []domain.User{{ID: "u1", Name: "Jane", Surname: "Doe"}}
		env.files.searchResult = []domain.File{{ID: "f1", Name: "doe-thesis.pdf"}}

		w := env.do(httptest.NewRequest(http.MethodGet, "/search?query=Doe", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, "Jane") || !strings.Contains(body, "doe-thesis.pdf") {
			t.Fatalf("expected both categories in the page: %s", body)
		}
	})

	t.Run("store failure answers 500", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.err = errors.New("connection refused")

		w := env.do(httptest.NewRequest(http.MethodGet, "/search?query=Doe", nil))
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if w.Body.String() != "Internal server error" {
			t.Fatalf("unexpected body: %q", w.Body.String())
		}
	})

	t.Run("works for anonymous visitors", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.searchResult = []domain.User{{ID: "u1", Name: "Jane", Surname: "Doe"}}

		w := env.do(httptest.NewRequest(http.MethodGet, "/search?query=Doe", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
