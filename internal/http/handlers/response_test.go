package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tbourn/juris-ledger/internal/services"
)

func Test_fail_500_LogsAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-500")
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/boom", func(c *gin.Context) {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.RequestID != "rid-500" || resp.Code != ErrCodeInternal || resp.Message != "kaboom" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error log, got: %s", buf.String())
	}
}

func Test_Fail_4xx_NotLogged_AndChanges(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-404")
		c.Set("logger", &logger)
		c.Next()
	})
	r.GET("/missing", func(c *gin.Context) { Fail(c, http.StatusNotFound, ErrCodeNotFound, "nope") })
	r.DELETE("/gone", func(c *gin.Context) { changes(c, 2) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil || w.Code != http.StatusNotFound {
		t.Fatalf("404: status=%d err=%v", w.Code, err)
	}
	if er.RequestID != "rid-404" || er.Code != ErrCodeNotFound || er.Message != "nope" {
		t.Fatalf("unexpected 404 body: %+v", er)
	}
	if buf.Len() != 0 {
		t.Fatalf("4xx should not be logged: %s", buf.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/gone", nil))
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"changes":2}` {
		t.Fatalf("changes: %d %s", w.Code, w.Body.String())
	}
}

func Test_failErr_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{&services.ValidationError{Field: "full_name", Reason: "required"}, http.StatusBadRequest, ErrCodeValidation},
		{&services.FormatError{Collection: "clients", Missing: []string{"id"}}, http.StatusBadRequest, ErrCodeInvalidBackup},
		{&services.ConstraintError{Constraint: "clients.tax_id"}, http.StatusConflict, ErrCodeConflict},
		{&services.RestoreError{Err: errors.New("fk")}, http.StatusInternalServerError, ErrCodeRestoreFailed},
		{&services.StorageError{Op: "open backup", Err: fs.ErrNotExist}, http.StatusNotFound, ErrCodeNotFound},
		{&services.StorageError{Op: "list clients", Err: errors.New("disk")}, http.StatusInternalServerError, ErrCodeStorage},
		{&services.StorageError{Op: "read backup", Err: &http.MaxBytesError{Limit: 10}}, http.StatusRequestEntityTooLarge, ErrCodeTooLarge},
		{fmt.Errorf("wrapped: %w", context.Canceled), http.StatusServiceUnavailable, ErrCodeCancelled},
		{errors.New("other"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		failErr(c, tc.err)

		var er ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
			t.Fatalf("%v: json: %v", tc.err, err)
		}
		if w.Code != tc.status || er.Code != tc.code {
			t.Fatalf("%v: got %d/%s; want %d/%s", tc.err, w.Code, er.Code, tc.status, tc.code)
		}
	}
}
