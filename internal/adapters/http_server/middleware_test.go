package httpserver

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"business_reviews/internal/domain"
)

func TestTimeout_JSONBody(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	rr := httptest.NewRecorder()
	Timeout(20*time.Millisecond)(slow).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type %q", ct)
	}
	if rr.Body.String() != timeoutBody {
		t.Fatalf("body %q", rr.Body.String())
	}
}

func TestTimeout_PassesThroughHandlerContentType(t *testing.T) {
	fast := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	rr := httptest.NewRecorder()
	Timeout(time.Second)(fast).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK || rr.Header().Get("Content-Type") != "text/plain; charset=utf-8" || rr.Body.String() != "ok" {
		t.Fatalf("unexpected response: %d %q %q", rr.Code, rr.Header().Get("Content-Type"), rr.Body.String())
	}
}

func TestNextOffset_Saturates(t *testing.T) {
	if got := nextOffset(domain.Page{Offset: 2, Limit: 3}); got != 5 {
		t.Fatalf("got %d", got)
	}
	if got := nextOffset(domain.Page{Offset: 1, Limit: math.MaxInt}); got != math.MaxInt {
		t.Fatalf("want saturation, got %d", got)
	}
}
