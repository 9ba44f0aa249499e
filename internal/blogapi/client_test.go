package blogapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mission-tool/blog-web/internal/blogapi"
	"github.com/mission-tool/blog-web/internal/blogapi/blogapitest"
	"github.com/mission-tool/blog-web/internal/models"
)

func newBackend(t *testing.T) (*blogapitest.Server, *blogapi.Client) {
	t.Helper()
	backend := blogapitest.New()
	t.Cleanup(backend.Close)
	return backend, blogapi.NewClient(backend.URL + "/")
}

func TestListPosts(t *testing.T) {
	backend, client := newBackend(t)
	backend.Seed(models.Post{Title: "older", Status: "draft", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	backend.Seed(models.Post{Title: "newer", Status: "published", CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)})

	list, err := client.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("list posts failed: %v", err)
	}
	if list.Count != 2 || len(list.Data) != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list.Data[0].Title != "newer" {
		t.Fatalf("expected newest first, got %s", list.Data[0].Title)
	}
	if backend.Count(http.MethodGet, "/posts") != 1 {
		t.Fatalf("expected exactly one GET /posts")
	}
}

func TestGetPostNotFound(t *testing.T) {
	_, client := newBackend(t)

	_, err := client.GetPost(context.Background(), 42)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, blogapi.ErrUnexpectedStatus) {
		t.Fatalf("expected status error, got %v", err)
	}
	if !blogapi.IsNotFound(err) {
		t.Fatalf("expected 404, got %v", err)
	}
	if blogapi.ServerMessage(err) != "post not found" {
		t.Fatalf("server message not extracted: %q", blogapi.ServerMessage(err))
	}
}

func TestCreatePostSendsDraftAndBearer(t *testing.T) {
	backend, client := newBackend(t)
	token := backend.IssueToken("admin", time.Now().Add(time.Hour))
	draft := models.PostDraft{Title: "T", Content: "C", Status: "draft", Category: "Dev"}

	post, err := client.CreatePost(context.Background(), token, draft)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.ID == 0 || post.Title != "T" || post.Category != "Dev" {
		t.Fatalf("unexpected post: %+v", post)
	}

	reqs := backend.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected one request, got %d", len(reqs))
	}
	if reqs[0].Method != http.MethodPost || reqs[0].Path != "/posts" {
		t.Fatalf("unexpected request %s %s", reqs[0].Method, reqs[0].Path)
	}
	if reqs[0].Authorization != "Bearer "+token {
		t.Fatalf("bearer header missing: %q", reqs[0].Authorization)
	}
	var sent models.PostDraft
	if err := json.Unmarshal([]byte(reqs[0].Body), &sent); err != nil {
		t.Fatalf("body not json: %v", err)
	}
	if sent != draft {
		t.Fatalf("body want %+v got %+v", draft, sent)
	}
}

func TestCreatePostWithoutTokenRejected(t *testing.T) {
	backend, client := newBackend(t)

	_, err := client.CreatePost(context.Background(), "", models.PostDraft{Title: "T", Content: "C", Status: "draft", Category: "Dev"})
	if !blogapi.IsUnauthorized(err) {
		t.Fatalf("expected 401, got %v", err)
	}
	if backend.Requests()[0].Authorization != "" {
		t.Fatalf("no authorization header expected without token")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	backend, client := newBackend(t)
	token := backend.IssueToken("admin", time.Now().Add(time.Hour))
	seeded := backend.Seed(models.Post{Title: "old", Content: "c", Status: "draft"})

	updated, err := client.UpdatePost(context.Background(), token, seeded.ID, models.PostDraft{
		Title: "new", Content: "c2", Status: "published", Category: "Life",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "new" || updated.Status != "published" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if err := client.DeletePost(context.Background(), token, seeded.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := backend.Post(seeded.ID); ok {
		t.Fatalf("post should be deleted")
	}
	last := backend.Requests()[1]
	if last.Method != http.MethodDelete || last.Authorization != "Bearer "+token {
		t.Fatalf("delete must carry bearer, got %+v", last)
	}
}

func TestLogin(t *testing.T) {
	backend, client := newBackend(t)
	backend.AddUser("admin", "s3cret")

	result, err := client.Login(context.Background(), models.LoginCredentials{Username: "admin", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("token should not be empty")
	}

	_, err = client.Login(context.Background(), models.LoginCredentials{Username: "admin", Password: "bad"})
	if !blogapi.IsUnauthorized(err) {
		t.Fatalf("expected 401, got %v", err)
	}
	if blogapi.ServerMessage(err) != "wrong username or password" {
		t.Fatalf("unexpected server message %q", blogapi.ServerMessage(err))
	}
}

func TestStatusErrorWithoutBody(t *testing.T) {
	backend, client := newBackend(t)
	backend.FailNext(http.MethodGet, "/posts", http.StatusBadGateway, "")

	_, err := client.ListPosts(context.Background())
	var statusErr *blogapi.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadGateway || statusErr.Message != "" {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
}

func TestMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": "oops"`))
	}))
	defer srv.Close()

	_, err := blogapi.NewClient(srv.URL).ListPosts(context.Background())
	if !errors.Is(err, blogapi.ErrResponseInvalid) {
		t.Fatalf("expected ErrResponseInvalid, got %v", err)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := blogapi.NewClient(url, blogapi.WithTimeout(time.Second)).ListPosts(context.Background())
	if !errors.Is(err, blogapi.ErrRequestFailed) {
		t.Fatalf("expected ErrRequestFailed, got %v", err)
	}
}

func TestMissingBaseURL(t *testing.T) {
	_, err := blogapi.NewClient("").ListPosts(context.Background())
	if !errors.Is(err, blogapi.ErrBaseURLMissing) {
		t.Fatalf("expected ErrBaseURLMissing, got %v", err)
	}
}
