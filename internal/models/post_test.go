package models

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mission-tool/blog-web/internal/constants"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{name: "short", text: "hello", limit: 10, want: "hello"},
		{name: "exact", text: "hello", limit: 5, want: "hello"},
		{name: "cut ascii", text: "hello world", limit: 5, want: "hello…"},
		{name: "cut cjk", text: "任務筆記部落格", limit: 4, want: "任務筆記…"},
		{name: "no limit", text: "abc", limit: 0, want: "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.text, tc.limit); got != tc.want {
				t.Fatalf("want %q got %q", tc.want, got)
			}
		})
	}
}

func TestPreviewRespectsLimit(t *testing.T) {
	p := Post{Content: strings.Repeat("字", constants.PreviewRuneLimit*2)}
	preview := p.Preview()
	if utf8.RuneCountInString(preview) != constants.PreviewRuneLimit+1 {
		t.Fatalf("unexpected preview length %d", utf8.RuneCountInString(preview))
	}
}

func TestDraftFromPostEmptyCategory(t *testing.T) {
	raw := `{"data":{"id":7,"title":"T","content":"C","status":"draft","category":"","created_at":"2024-01-01T00:00:00Z"}}`
	var env PostEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if env.Data.ID != 7 || env.Data.CreatedAt.Year() != 2024 {
		t.Fatalf("unexpected post: %+v", env.Data)
	}

	draft := DraftFromPost(env.Data)
	if draft.Category != "" {
		t.Fatalf("category should be empty selection, got %q", draft.Category)
	}
	if draft.Complete() {
		t.Fatalf("draft without category must not be complete")
	}
	if got := draft.MissingFields(); len(got) != 1 || got[0] != "category" {
		t.Fatalf("missing fields want [category] got %v", got)
	}
}

func TestNewPostDraftDefaults(t *testing.T) {
	d := NewPostDraft()
	if d.Status != constants.PostStatusPublished {
		t.Fatalf("status default want published got %s", d.Status)
	}
	if d.Category != "" || d.Title != "" || d.Content != "" {
		t.Fatalf("other fields should be blank: %+v", d)
	}
}

func TestDraftJSONShape(t *testing.T) {
	d := PostDraft{Title: "T", Content: "C", Status: "draft", Category: "Dev"}
	body, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"title":"T","content":"C","status":"draft","category":"Dev"}`
	if string(body) != want {
		t.Fatalf("want %s got %s", want, body)
	}
}

func TestStatusAndCategoryHelpers(t *testing.T) {
	if !IsKnownStatus("draft") || !IsKnownStatus("published") || IsKnownStatus("archived") {
		t.Fatalf("unexpected status check")
	}
	if !IsKnownCategory("Dev") || IsKnownCategory("dev") {
		t.Fatalf("unexpected category check")
	}
	if (Post{Category: "  "}).HasCategory() {
		t.Fatalf("blank category should count as absent")
	}
}

func TestMissingFieldsTreatsWhitespaceAsBlank(t *testing.T) {
	cases := []struct {
		name  string
		draft PostDraft
		want  string
	}{
		{name: "spaces title", draft: PostDraft{Title: "   ", Content: "c", Status: "draft", Category: "Dev"}, want: "title"},
		{name: "newline content", draft: PostDraft{Title: "t", Content: "\n\t", Status: "draft", Category: "Dev"}, want: "content"},
		{name: "complete", draft: PostDraft{Title: "t", Content: " c ", Status: "draft", Category: "Dev"}, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := strings.Join(tc.draft.MissingFields(), ",")
			if got != tc.want {
				t.Fatalf("want %q got %q", tc.want, got)
			}
		})
	}
}
