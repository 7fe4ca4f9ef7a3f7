package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-vault/internal/observability/logging"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Gin(GinConfig{
		SkipPaths:  []string{"/health"},
		Module:     logging.Module("vault"),
		TracerName: "test",
	}))
	r.Use(PanicRecoveryGin())

	r.GET("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, logging.RequestIDFromContext(c.Request.Context()))
	})
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, logging.RequestIDFromContext(c.Request.Context()))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	return r
}

func TestGinRequestID(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name     string
		path     string
		incoming string
		keep     bool
	}{
		{name: "valid id is kept", path: "/echo", incoming: "7c1e9f0e-4a6b-4f55-9d2b-8f3c1f0a2b11", keep: true},
		{name: "invalid id is replaced", path: "/echo", incoming: "abc", keep: false},
		{name: "missing id is generated", path: "/echo", incoming: "", keep: false},
		{name: "skipped paths still get an id", path: "/health", incoming: "", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.incoming != "" {
				req.Header.Set(logging.RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			got := w.Header().Get(logging.RequestIDHeader)
			if got == "" {
				t.Fatal("expected request id header")
			}
			if w.Body.String() != got {
				t.Errorf("expected context id %q to match header %q", w.Body.String(), got)
			}
			if tt.keep && got != tt.incoming {
				t.Errorf("expected %q to be kept, got %q", tt.incoming, got)
			}
			if !tt.keep && got == tt.incoming {
				t.Errorf("expected %q to be replaced", tt.incoming)
			}
		})
	}
}

func TestPanicRecoveryGin(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if w.Body.String() != `{"error":"internal_error","message":"internal server error"}` {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}
