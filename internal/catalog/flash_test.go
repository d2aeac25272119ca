package catalog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"CourseCatalog/internal/catalog"
)

func TestFlashes_AddPopRoundTrip(t *testing.T) {
	f := catalog.NewFlashes()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/courses/CS999", nil)
	f.Add(w, r, "error", "No course found.")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one flash cookie, got %d", len(cookies))
	}

	// Next request carries the cookie back.
	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	r2.AddCookie(cookies[0])

	got := f.Pop(w2, r2)
	if len(got) != 1 || got[0].Category != "error" || got[0].Message != "No course found." {
		t.Fatalf("unexpected flashes: %+v", got)
	}

	if again := f.Pop(w2, r2); len(again) != 0 {
		t.Fatalf("pop should drain, got %+v", again)
	}
}

func TestFlashes_SeparateBrowsers(t *testing.T) {
	f := catalog.NewFlashes()

	w1 := httptest.NewRecorder()
	r1 := httptest.NewRequest(http.MethodGet, "/", nil)
	f.Add(w1, r1, "success", "first browser")

	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := f.Pop(w2, r2); len(got) != 0 {
		t.Fatalf("second browser should have no flashes, got %+v", got)
	}
}
