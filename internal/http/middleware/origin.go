package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// OriginAllowed reports whether a request's Origin may act on this API.
// Requests without an Origin (non-browser clients) and same-host pages
// always pass. Otherwise the origin must appear in allowed; "*" admits all.
func OriginAllowed(allowed []string) func(*http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set["*"]; ok {
			return true
		}
		if _, ok := set[origin]; ok {
			return true
		}
		return strings.HasSuffix(origin, "://"+r.Host)
	}
}

// RejectForeignWrites aborts state-changing requests sent by a page whose
// origin is not allowed. A browser attaches Origin to cross-site POSTs even
// when no preflight happens, so this closes the gap CORS leaves for
// form-style requests.
func RejectForeignWrites(allowed []string) gin.HandlerFunc {
	ok := OriginAllowed(allowed)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if ok(c.Request) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"request_id": RequestIDFrom(c),
			"code":       "forbidden",
			"message":    "cross-origin request rejected",
		})
	}
}
