package httpapi

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/juris-ledger/internal/config"
	"github.com/tbourn/juris-ledger/internal/events"
	"github.com/tbourn/juris-ledger/internal/http/handlers"
	"github.com/tbourn/juris-ledger/internal/repo"
)

func newStore(t *testing.T) *repo.Store {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "router.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	st := repo.NewStore(db, repo.DialectSQLite)
	t.Cleanup(func() { _ = st.Close() })
	if err := repo.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return st
}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		APIBasePath:  "/api/v1",
		MaxBodyBytes: 1 << 20,
		BackupDir:    t.TempDir(),
		RateRPS:      100,
		RateBurst:    10,
		OTEL:         config.OTELConfig{ServiceName: "juris-test"},
	}
}

func newRouter(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newStore(t), events.NewBus(), cfg)
	return r
}

func serve(r http.Handler, method, target, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes_HealthMetricsFallbacks(t *testing.T) {
	r := newRouter(t, testConfig(t))

	w := serve(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("GET /health = %d headers=%v", w.Code, w.Header())
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("security headers missing")
	}

	w = serve(r, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "juris_http_requests_total") {
		t.Fatalf("GET /metrics = %d", w.Code)
	}

	w = serve(r, http.MethodGet, "/nope", "", nil)
	var er handlers.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil || w.Code != http.StatusNotFound || er.Code != handlers.ErrCodeNotFound {
		t.Fatalf("GET /nope = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodPatch, "/api/v1/clients", "", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("PATCH /clients = %d", w.Code)
	}
}

func TestRegisterRoutes_HealthReportsClosedDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := newStore(t)
	r := gin.New()
	RegisterRoutes(r, st, events.NewBus(), testConfig(t))
	_ = st.Close()

	if w := serve(r, http.MethodGet, "/health", "", nil); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET /health on closed store = %d", w.Code)
	}
}

func TestRegisterRoutes_LedgerRoundTrip(t *testing.T) {
	r := newRouter(t, testConfig(t))

	w := serve(r, http.MethodPost, "/api/v1/clients", `{"full_name":"Ana"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create client = %d %s", w.Code, w.Body.String())
	}
	w = serve(r, http.MethodPost, "/api/v1/actions", `{"client_id":1,"nominal_value":"250"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create action = %d %s", w.Code, w.Body.String())
	}
	w = serve(r, http.MethodPost, "/api/v1/payments", `{"action_id":1,"payment_date":"2024-02-01","amount":"50"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create payment = %d %s", w.Code, w.Body.String())
	}

	w = serve(r, http.MethodGet, "/api/v1/balance/receivable", "", nil)
	if !strings.Contains(w.Body.String(), `"global_receivable":"200"`) {
		t.Fatalf("receivable = %s", w.Body.String())
	}
}

func TestRegisterRoutes_BackupRoutesLimitedAndUncached(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateRPS = 0.01
	cfg.RateBurst = 1
	r := newRouter(t, cfg)

	w := serve(r, http.MethodGet, "/api/v1/backup", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("first download = %d", w.Code)
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("backup response cacheable: %v", w.Header())
	}
	if got := w.Header().Get("Content-Disposition"); !strings.HasPrefix(got, "attachment;") {
		t.Fatalf("Content-Disposition = %q", got)
	}

	w = serve(r, http.MethodPost, "/api/v1/restore", `{"path":""}`, nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second backup-group request = %d; want 429", w.Code)
	}

	// Ordinary routes neither limited nor no-store.
	for i := 0; i < 3; i++ {
		w = serve(r, http.MethodGet, "/api/v1/clients", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("GET /clients = %d", w.Code)
		}
	}
	if w.Header().Get("Cache-Control") == "no-store" {
		t.Fatal("no-store leaked onto ordinary route")
	}
}

func TestRegisterRoutes_BodyLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxBodyBytes = 32
	r := newRouter(t, cfg)

	doc := `{"clients":[],"actions":[],"payments":[],"padding":"` + strings.Repeat("x", 64) + `"}`
	w := serve(r, http.MethodPost, "/api/v1/restore/upload", doc, nil)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized upload = %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_CORS(t *testing.T) {
	cfg := testConfig(t)
	cfg.CORS.AllowedOrigins = []string{"http://ui.local"}
	r := newRouter(t, cfg)

	w := serve(r, http.MethodGet, "/api/v1/clients", "", map[string]string{"Origin": "http://ui.local"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://ui.local" {
		t.Fatalf("ACAO = %q", got)
	}
	w = serve(r, http.MethodGet, "/api/v1/clients", "", map[string]string{"Origin": "http://evil.example"})
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("foreign origin echoed")
	}

	wildcard := testConfig(t)
	wildcard.CORS.AllowedOrigins = []string{"*"}
	all := newRouter(t, wildcard)
	w = serve(all, http.MethodGet, "/api/v1/clients", "", map[string]string{"Origin": "http://anything.local"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-all ACAO = %q", got)
	}
}

func TestRegisterRoutes_NoOriginsMeansSameOriginOnly(t *testing.T) {
	r := newRouter(t, testConfig(t))
	serve(r, http.MethodPost, "/api/v1/clients", `{"full_name":"Ana"}`, nil)

	w := serve(r, http.MethodOptions, "/api/v1/restore/upload", "", map[string]string{
		"Origin":                        "https://evil.example",
		"Access-Control-Request-Method": "POST",
	})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("preflight from foreign origin got ACAO %q", got)
	}

	empty := `{"clients":[],"actions":[],"payments":[]}`
	for _, path := range []string{"/api/v1/restore/upload", "/api/v1/clients/1"} {
		method := http.MethodPost
		if strings.HasSuffix(path, "/1") {
			method = http.MethodDelete
		}
		w = serve(r, method, path, empty, map[string]string{"Origin": "https://evil.example"})
		if w.Code != http.StatusForbidden {
			t.Fatalf("%s %s from foreign origin = %d", method, path, w.Code)
		}
	}

	w = serve(r, http.MethodGet, "/api/v1/clients", "", nil)
	if !strings.Contains(w.Body.String(), `"full_name":"Ana"`) {
		t.Fatalf("data lost: %s", w.Body.String())
	}

	// The UI served from the same host is unaffected.
	w = serve(r, http.MethodPost, "/api/v1/clients", `{"full_name":"Bruno"}`, map[string]string{"Origin": "http://example.com"})
	if w.Code != http.StatusCreated {
		t.Fatalf("same-origin create = %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_BackupPathConfinedToBackupDir(t *testing.T) {
	cfg := testConfig(t)
	r := newRouter(t, cfg)
	outside := filepath.Join(t.TempDir(), "overwritten.json")

	for _, p := range []string{outside, "../overwritten.json"} {
		body, _ := json.Marshal(map[string]string{"path": p})
		w := serve(r, http.MethodPost, "/api/v1/backup", string(body), nil)
		var er handlers.ErrorResponse
		_ = json.Unmarshal(w.Body.Bytes(), &er)
		if w.Code != http.StatusBadRequest || er.Code != handlers.ErrCodeValidation {
			t.Fatalf("POST /backup %q = %d %s", p, w.Code, w.Body.String())
		}
	}
	if _, err := os.Stat(outside); !os.IsNotExist(err) {
		t.Fatalf("backup escaped BACKUP_DIR: %v", err)
	}

	w := serve(r, http.MethodPost, "/api/v1/backup", `{"path":"daily.json"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /backup inside dir = %d %s", w.Code, w.Body.String())
	}
	if _, err := os.Stat(filepath.Join(cfg.BackupDir, "daily.json")); err != nil {
		t.Fatalf("backup not written: %v", err)
	}
}

func TestRegisterRoutes_Gzip(t *testing.T) {
	r := newRouter(t, testConfig(t))
	serve(r, http.MethodPost, "/api/v1/clients", `{"full_name":"Ana"}`, nil)

	w := serve(r, http.MethodGet, "/api/v1/clients", "", map[string]string{"Accept-Encoding": "gzip"})
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip, headers=%v", w.Header())
	}
	zr, err := gzip.NewReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	body, _ := io.ReadAll(zr)
	if !strings.Contains(string(body), `"full_name":"Ana"`) {
		t.Fatalf("body = %s", body)
	}
}

func TestRegisterRoutes_Swagger(t *testing.T) {
	cfg := testConfig(t)
	r := newRouter(t, cfg)
	if w := serve(r, http.MethodGet, "/swagger/doc.json", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("swagger served while disabled: %d", w.Code)
	}

	cfg.SwaggerEnabled = true
	r = newRouter(t, cfg)
	w := serve(r, http.MethodGet, "/swagger/doc.json", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Juris Ledger API") {
		t.Fatalf("doc.json = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"/restore/upload"`) {
		t.Fatal("doc.json missing restore route")
	}
}

func Test_limitBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/capped", limitBody(10), readAll)
	r.POST("/open", limitBody(0), readAll)

	if w := serve(r, http.MethodPost, "/capped", "0123456789AB", nil); w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("capped = %d", w.Code)
	}
	if w := serve(r, http.MethodPost, "/open", "0123456789AB", nil); w.Code != http.StatusOK {
		t.Fatalf("uncapped = %d", w.Code)
	}
}

func readAll(c *gin.Context) {
	if _, err := io.ReadAll(c.Request.Body); err != nil {
		c.Status(http.StatusRequestEntityTooLarge)
		return
	}
	c.Status(http.StatusOK)
}

func Test_groupWithPrefixAndJoinPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	if w := serve(r, http.MethodGet, "/one", "", nil); w.Body.String() != "one" {
		t.Fatalf("GET /one = %q", w.Body.String())
	}
	if w := serve(r, http.MethodGet, "/api/ping", "", nil); w.Body.String() != "pong" {
		t.Fatalf("GET /api/ping = %q", w.Body.String())
	}

	if joinPath("", "/events") != "/events" || joinPath("/", "/events") != "/events" || joinPath("/api/v1", "/events") != "/api/v1/events" {
		t.Fatal("joinPath")
	}
}
