package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newSessionRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(SessionMiddleware())
	r.GET("/probe", func(c *gin.Context) {
		seen = SessionID(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestSessionMiddlewareGeneratesID(t *testing.T) {
	r, seen := newSessionRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)

	echoed := w.Header().Get(SessionHeader)
	if echoed == "" {
		t.Fatal("expected a generated session ID in the response header")
	}
	if _, err := uuid.Parse(echoed); err != nil {
		t.Errorf("generated session ID is not a UUID: %q", echoed)
	}
	if *seen != echoed {
		t.Errorf("handler saw %q but header carries %q", *seen, echoed)
	}
}

func TestSessionMiddlewareEchoesExistingID(t *testing.T) {
	r, seen := newSessionRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(SessionHeader, "session-abc")
	r.ServeHTTP(w, req)

	if got := w.Header().Get(SessionHeader); got != "session-abc" {
		t.Errorf("expected the client session ID echoed back, got %q", got)
	}
	if *seen != "session-abc" {
		t.Errorf("handler saw %q, want session-abc", *seen)
	}
}
