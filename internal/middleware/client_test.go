package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestClientMiddleware_WithValidCookie(t *testing.T) {
	m := NewClientMiddleware("test-secret")
	want := uuid.NewString()

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		id, ok := GetClientIDFromContext(r.Context())
		if !ok {
			t.Fatalf("client id not in context")
		}
		if id != want {
			t.Fatalf("client id from context = %s, want %s", id, want)
		}
	})

	w := httptest.NewRecorder()
	m.SetClientCookie(w, want)
	resCookies := w.Result().Cookies()
	if len(resCookies) == 0 {
		t.Fatalf("no cookies set by SetClientCookie")
	}

	r := httptest.NewRequest(http.MethodGet, "/api/history/searches", nil)
	r.AddCookie(resCookies[0])

	rec := httptest.NewRecorder()
	m.Middleware(next).ServeHTTP(rec, r)

	if !nextCalled {
		t.Fatalf("next handler was not called")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("valid cookie must not be reissued")
	}
}

func TestClientMiddleware_IssuesCookie(t *testing.T) {
	m := NewClientMiddleware("test-secret")

	var issued string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetClientIDFromContext(r.Context())
		if !ok {
			t.Fatalf("client id not in context")
		}
		issued = id
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/airports/recent", nil)
	m.Middleware(next).ServeHTTP(w, r)

	if _, err := uuid.Parse(issued); err != nil {
		t.Fatalf("issued id %q is not a uuid: %v", issued, err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != clientCookieName {
		t.Fatalf("expected client cookie, got %+v", cookies)
	}
	if !strings.HasPrefix(cookies[0].Value, issued+".") {
		t.Fatalf("cookie %q does not carry client id %q", cookies[0].Value, issued)
	}
}

func TestClientMiddleware_RejectsForgedCookie(t *testing.T) {
	m := NewClientMiddleware("test-secret")
	other := NewClientMiddleware("other-secret")
	forgedID := uuid.NewString()

	w := httptest.NewRecorder()
	other.SetClientCookie(w, forgedID)

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetClientIDFromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(w.Result().Cookies()[0])
	m.Middleware(next).ServeHTTP(httptest.NewRecorder(), r)

	if got == "" || got == forgedID {
		t.Fatalf("forged cookie must be replaced, got %q", got)
	}
}
