package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mission-tool/blog-web/internal/constants"
	"github.com/mission-tool/blog-web/internal/http/response"

	"github.com/gin-gonic/gin"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": response.RequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func TestLocaleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(LocaleMiddleware(3600))
	r.GET("/", func(c *gin.Context) {
		locale, _ := c.Get(constants.ContextKeyLocale)
		c.String(http.StatusOK, "%v", locale)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
	if w.Body.String() != "en-US" {
		t.Fatalf("query locale want en-US got %s", w.Body.String())
	}
	var remembered bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constants.LocaleCookieName && cookie.Value == "en-US" {
			remembered = true
		}
	}
	if !remembered {
		t.Fatalf("locale cookie should be written")
	}

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-GB")
	r.ServeHTTP(w2, req)
	if w2.Body.String() != "en-US" {
		t.Fatalf("header locale want en-US got %s", w2.Body.String())
	}
}
