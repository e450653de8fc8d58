package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func withHeaders(pre map[string]string, opt SecurityOptions) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		for k, v := range pre {
			c.Header(k, v)
		}
		c.Next()
	})
	r.Use(SecurityHeaders(opt))
	r.GET("/clients", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	w := serve(withHeaders(map[string]string{requestIDHeader: "rid"}, SecurityOptions{}), http.MethodGet, "/clients", "", nil)

	h := w.Header()
	if h.Get("X-Content-Type-Options") != "nosniff" || h.Get("X-Frame-Options") != "DENY" || h.Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("baseline headers missing: %v", h)
	}
	for _, k := range []string{"Permissions-Policy", "Cache-Control", "Strict-Transport-Security"} {
		if h.Get(k) != "" {
			t.Fatalf("unexpected %s: %q", k, h.Get(k))
		}
	}
	if h.Get("Access-Control-Expose-Headers") != requestIDHeader {
		t.Fatalf("expose header = %q", h.Get("Access-Control-Expose-Headers"))
	}
}

func TestSecurityHeaders_ExposeHeaderMerge(t *testing.T) {
	cases := map[string]string{
		"Foo":               "Foo, X-Request-ID",
		"X-Request-ID, Foo": "X-Request-ID, Foo",
	}
	for cur, want := range cases {
		pre := map[string]string{requestIDHeader: "rid", "Access-Control-Expose-Headers": cur}
		w := serve(withHeaders(pre, SecurityOptions{}), http.MethodGet, "/clients", "", nil)
		if got := w.Header().Get("Access-Control-Expose-Headers"); got != want {
			t.Fatalf("expose(%q) = %q; want %q", cur, got, want)
		}
	}
}

func TestSecurityHeaders_NoStorePolicyAndHSTS(t *testing.T) {
	r := withHeaders(nil, SecurityOptions{EnableHSTS: true, HSTSMaxAge: 24 * time.Hour, NoStore: true, EnablePolicy: true})

	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.TLS = &tls.ConnectionState{}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	h := w.Header()
	if h.Get("Cache-Control") != "no-store" || h.Get("Pragma") != "no-cache" || h.Get("Expires") != "0" {
		t.Fatalf("cache headers: %v", h)
	}
	if h.Get("X-Permitted-Cross-Domain-Policies") != "none" || h.Get("Permissions-Policy") == "" {
		t.Fatalf("policy headers: %v", h)
	}
	if got := h.Get("Strict-Transport-Security"); got != "max-age=86400; includeSubDomains" {
		t.Fatalf("HSTS = %q", got)
	}

	// Plain HTTP never gets HSTS.
	if w := serve(r, http.MethodGet, "/clients", "", nil); w.Header().Get("Strict-Transport-Security") != "" {
		t.Fatal("HSTS set over plain HTTP")
	}
	w = serve(r, http.MethodGet, "/clients", "", map[string]string{"X-Forwarded-Proto": "HTTPS"})
	if w.Header().Get("Strict-Transport-Security") == "" {
		t.Fatal("HSTS missing behind TLS-terminating proxy")
	}
}

func TestSecurityHeaders_DefaultMaxAge(t *testing.T) {
	r := withHeaders(nil, SecurityOptions{EnableHSTS: true})
	w := serve(r, http.MethodGet, "/clients", "", map[string]string{"X-Forwarded-Proto": "https"})
	if got := w.Header().Get("Strict-Transport-Security"); got != "max-age=15552000; includeSubDomains" {
		t.Fatalf("HSTS = %q", got)
	}
}
