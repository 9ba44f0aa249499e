package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/mission-tool/blog-web/internal/blogapi"
	"github.com/mission-tool/blog-web/internal/blogapi/blogapitest"
	"github.com/mission-tool/blog-web/internal/models"
)

func newPostService(t *testing.T) (*blogapitest.Server, *PostService) {
	t.Helper()
	backend := blogapitest.New()
	t.Cleanup(backend.Close)
	return backend, NewPostService(blogapi.NewClient(backend.URL))
}

func completeDraft() models.PostDraft {
	return models.PostDraft{Title: "Hello", Content: "# body", Status: "draft", Category: "Dev"}
}

func TestParsePostID(t *testing.T) {
	cases := []struct {
		raw  string
		want uint
		ok   bool
	}{
		{raw: "7", want: 7, ok: true},
		{raw: " 12 ", want: 12, ok: true},
		{raw: "0"},
		{raw: "-3"},
		{raw: "abc"},
		{raw: ""},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParsePostID(tc.raw)
			if tc.ok {
				if err != nil || got != tc.want {
					t.Fatalf("want %d got %d err=%v", tc.want, got, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidPostID) {
				t.Fatalf("want ErrInvalidPostID, got %v", err)
			}
		})
	}
}

func TestListFetchesEveryTime(t *testing.T) {
	backend, svc := newPostService(t)
	backend.Seed(models.Post{Title: "a", Status: "published"})

	for i := 0; i < 2; i++ {
		list, err := svc.List(context.Background())
		if err != nil || list.Count != 1 {
			t.Fatalf("list failed: %+v err=%v", list, err)
		}
	}
	if n := backend.Count(http.MethodGet, "/posts"); n != 2 {
		t.Fatalf("each call should hit the backend, got %d", n)
	}
}

func TestCreateSubmitSucceeds(t *testing.T) {
	backend, svc := newPostService(t)
	token := backend.IssueToken("writer", time.Now().Add(time.Hour))

	form := NewCreateForm()
	if err := form.Edit(completeDraft()); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	post, err := svc.Submit(context.Background(), token, form)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if form.State != FormSucceeded {
		t.Fatalf("form should succeed, got %s", form.State)
	}
	if post == nil || post.Title != "Hello" {
		t.Fatalf("unexpected post %+v", post)
	}
	reqs := backend.Requests()
	last := reqs[len(reqs)-1]
	if last.Method != http.MethodPost || last.Path != "/posts" || last.Authorization != "Bearer "+token {
		t.Fatalf("unexpected request %+v", last)
	}
}

func TestIncompleteDraftSendsNothing(t *testing.T) {
	backend, svc := newPostService(t)

	form := NewCreateForm()
	draft := completeDraft()
	draft.Category = ""
	_ = form.Edit(draft)

	_, err := svc.Submit(context.Background(), "tok", form)
	if !errors.Is(err, ErrDraftIncomplete) {
		t.Fatalf("want ErrDraftIncomplete, got %v", err)
	}
	if form.State != FormEditable {
		t.Fatalf("form should stay editable, got %s", form.State)
	}
	if len(form.Missing) != 1 || form.Missing[0] != "category" {
		t.Fatalf("missing fields not recorded: %v", form.Missing)
	}
	if len(backend.Requests()) != 0 {
		t.Fatalf("no request should be sent")
	}
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	backend, svc := newPostService(t)
	seeded := backend.Seed(models.Post{Title: "old", Content: "x", Status: "published", Category: "Life"})
	token := backend.IssueToken("writer", time.Now().Add(time.Hour))

	form := NewEditForm(seeded.ID)
	if err := svc.Load(context.Background(), form); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	draft := form.Draft
	draft.Title = "changed"
	_ = form.Edit(draft)

	backend.FailNext(http.MethodPut, "/posts/1", http.StatusInternalServerError, "boom")
	_, err := svc.Submit(context.Background(), token, form)
	if err == nil {
		t.Fatalf("expected failure")
	}
	if form.State != FormEditable || form.Draft.Title != "changed" {
		t.Fatalf("draft should be preserved in editable state: %+v", form)
	}
	stored, _ := backend.Post(seeded.ID)
	if stored.Title != "old" {
		t.Fatalf("backend should be unchanged, got %s", stored.Title)
	}
}

func TestLoadEditFormWithoutCategory(t *testing.T) {
	backend, svc := newPostService(t)
	seeded := backend.Seed(models.Post{Title: "legacy", Content: "x", Status: "published"})

	form := NewEditForm(seeded.ID)
	if err := svc.Load(context.Background(), form); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if form.Draft.Category != "" || form.State != FormEditable {
		t.Fatalf("legacy post should prefill empty category: %+v", form)
	}
}

func TestLoadMissingPost(t *testing.T) {
	_, svc := newPostService(t)
	form := NewEditForm(99)
	err := svc.Load(context.Background(), form)
	if !blogapi.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
	if form.State != FormLoadingExisting {
		t.Fatalf("form must not become editable, got %s", form.State)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	backend, svc := newPostService(t)
	seeded := backend.Seed(models.Post{Title: "bye", Content: "x", Status: "draft", Category: "Note"})
	token := backend.IssueToken("writer", time.Now().Add(time.Hour))

	if err := svc.Delete(context.Background(), token, seeded.ID, false); !errors.Is(err, ErrDeleteNotConfirmed) {
		t.Fatalf("want ErrDeleteNotConfirmed, got %v", err)
	}
	if len(backend.Requests()) != 0 {
		t.Fatalf("unconfirmed delete must not send a request")
	}

	if err := svc.Delete(context.Background(), token, seeded.ID, true); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	reqs := backend.Requests()
	if len(reqs) != 1 || reqs[0].Method != http.MethodDelete || reqs[0].Authorization != "Bearer "+token {
		t.Fatalf("unexpected requests %+v", reqs)
	}
	if _, ok := backend.Post(seeded.ID); ok {
		t.Fatalf("post should be removed")
	}
}

func TestDeleteUnauthorized(t *testing.T) {
	backend, svc := newPostService(t)
	seeded := backend.Seed(models.Post{Title: "keep", Content: "x", Status: "draft", Category: "Note"})

	err := svc.Delete(context.Background(), "", seeded.ID, true)
	if !blogapi.IsUnauthorized(err) {
		t.Fatalf("want 401, got %v", err)
	}
	if _, ok := backend.Post(seeded.ID); !ok {
		t.Fatalf("post should remain")
	}
}
