package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mission-tool/blog-web/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[int]int{
		CodeOK:         http.StatusOK,
		CodeNotFound:   http.StatusNotFound,
		CodeBadGateway: http.StatusBadGateway,
		12345:          http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatus(code); got != want {
			t.Fatalf("code %d want %d got %d", code, want, got)
		}
	}
}

func TestErrorJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/session/state", nil)
	c.Request.Header.Set("Accept", "application/json")
	c.Set(constants.ContextKeyRequestID, "req-1")

	Error(c, CodeNotFound, "missing")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"msg":"missing"`) || !strings.Contains(body, `"request_id":"req-1"`) {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestNewPageUsesBase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(constants.ContextKeyRequestID, "req-2")
	SetBasePage(c, Page{Locale: "en-US", LoggedIn: true, ShowMutations: true})

	page := NewPage(c, "post.list.title", 42)
	if page.Locale != "en-US" || !page.ShowMutations || page.RequestID != "req-2" {
		t.Fatalf("base not applied: %+v", page)
	}
	if page.Title != "post.list.title" || page.Body != 42 {
		t.Fatalf("title/body not set: %+v", page)
	}
}

func TestAsAppError(t *testing.T) {
	cause := errors.New("upstream")
	wrapped := WrapError(CodeBadGateway, "bad gateway", cause)
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != CodeBadGateway || !errors.Is(wrapped, cause) {
		t.Fatalf("unexpected app error %+v", appErr)
	}
	if wrapped.Error() != "bad gateway: upstream" {
		t.Fatalf("unexpected message %q", wrapped.Error())
	}
}
