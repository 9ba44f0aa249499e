package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mission-tool/blog-web/internal/http/render"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newLimitedEngine(t *testing.T, client *redis.Client, rule RateLimitRule) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tmpls, err := render.New()
	if err != nil {
		t.Fatalf("parse templates failed: %v", err)
	}
	r := gin.New()
	r.HTMLRender = tmpls
	r.POST("/login", RateLimitMiddleware(client, rule, KeyByIPAndFormField("username")), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func postLogin(r *gin.Engine, username string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {"x"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept-Language", "en-US")
	req.RemoteAddr = "1.2.3.4:5678"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestKeyByIPAndFormField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	form := url.Values{"username": {" Admin "}, "password": {"secret"}}
	c.Request = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndFormField("username")(c)
	if key != "admin|1.2.3.4" {
		t.Fatalf("key want admin|1.2.3.4 got %s", key)
	}
	if c.PostForm("password") != "secret" {
		t.Fatalf("form should remain readable after key extraction")
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status want 200 got %d", w.Code)
		}
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("want %d/%v got %d/%v", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestRateLimitMiddlewareBlocksAfterMaxAttempts(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	rule := RateLimitRule{Prefix: "blog:rate:login", WindowSeconds: 300, MaxRequests: 2, MessageKey: "login.rate_limited"}
	r := newLimitedEngine(t, client, rule)

	for i := 0; i < 2; i++ {
		if w := postLogin(r, "admin"); w.Code != http.StatusOK {
			t.Fatalf("attempt %d want 200 got %d", i+1, w.Code)
		}
	}
	w := postLogin(r, "admin")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("want 429 got %d", w.Code)
	}
	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	if err != nil || retryAfter < 1 || retryAfter > 300 {
		t.Fatalf("unexpected Retry-After %q", w.Header().Get("Retry-After"))
	}
	if !strings.Contains(w.Body.String(), "Too many attempts") {
		t.Fatalf("rate limit message missing")
	}
	if got, _ := mr.Get("blog:rate:login:admin|1.2.3.4"); got != "3" {
		t.Fatalf("counter want 3 got %q", got)
	}

	if w := postLogin(r, "someone-else"); w.Code != http.StatusOK {
		t.Fatalf("other username should have its own window, got %d", w.Code)
	}

	mr.FastForward(301 * time.Second)
	if w := postLogin(r, "admin"); w.Code != http.StatusOK {
		t.Fatalf("window should reset after expiry, got %d", w.Code)
	}
}

func TestRateLimitMiddlewareRejectsWhenRedisFails(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.SetError("LOADING")

	r := newLimitedEngine(t, client, RateLimitRule{WindowSeconds: 60, MaxRequests: 5})
	w := postLogin(r, "admin")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500 when redis fails, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "temporarily unavailable") {
		t.Fatalf("unavailable message missing")
	}
}
