package security

import (
	"strings"
	"testing"
)

func TestSanitize_RemovesScriptTags(t *testing.T) {
	s := NewContentSanitizer()

	input := `<p>冷蔵保存してください</p><script>alert('xss')</script>`
	got := s.Sanitize(input)

	if strings.Contains(got, "<script") {
		t.Errorf("script tag should be removed, got %q", got)
	}
	if !strings.Contains(got, "<p>冷蔵保存してください</p>") {
		t.Errorf("allowed tags should be preserved, got %q", got)
	}
}

func TestSanitize_RemovesEventAttributes(t *testing.T) {
	s := NewContentSanitizer()

	input := `<p onclick="alert('xss')">受け渡しは午後のみ</p>`
	got := s.Sanitize(input)

	if strings.Contains(got, "onclick") {
		t.Errorf("on* event attributes should be removed, got %q", got)
	}
	if !strings.Contains(got, "受け渡しは午後のみ") {
		t.Errorf("text content should be preserved, got %q", got)
	}
}

func TestSanitize_RemovesIframeAndStyle(t *testing.T) {
	s := NewContentSanitizer()

	tests := []struct {
		name  string
		input string
		deny  string
	}{
		{"iframe removed", `<iframe src="https://evil.example.com"></iframe>`, "<iframe"},
		{"style removed", `<style>body{display:none}</style>`, "<style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Sanitize(tt.input)
			if strings.Contains(got, tt.deny) {
				t.Errorf("Sanitize(%q) = %q, should not contain %q", tt.input, got, tt.deny)
			}
		})
	}
}

func TestSanitize_AllowedFormattingTags(t *testing.T) {
	s := NewContentSanitizer()

	input := `<ul><li><strong>要冷蔵</strong></li><li><em>当日中にお受け取りください</em></li></ul>`
	got := s.Sanitize(input)

	for _, tag := range []string{"<ul>", "<li>", "<strong>", "<em>"} {
		if !strings.Contains(got, tag) {
			t.Errorf("allowed tag %s should be preserved, got %q", tag, got)
		}
	}
}

func TestSanitize_LinksGetTargetBlankAndNoReferrer(t *testing.T) {
	s := NewContentSanitizer()

	input := `<a href="https://example.com/map">受け渡し場所の地図</a>`
	got := s.Sanitize(input)

	if !strings.Contains(got, `target="_blank"`) {
		t.Errorf("links should get target=_blank, got %q", got)
	}
	if !strings.Contains(got, "noreferrer") {
		t.Errorf("links should get rel noreferrer, got %q", got)
	}
	if !strings.Contains(got, `href="https://example.com/map"`) {
		t.Errorf("https href should be preserved, got %q", got)
	}
}

func TestSanitize_RejectsUnsafeLinkSchemes(t *testing.T) {
	s := NewContentSanitizer()

	input := `<a href="javascript:alert('xss')">click</a>`
	got := s.Sanitize(input)

	if strings.Contains(got, "javascript:") {
		t.Errorf("javascript scheme should be removed, got %q", got)
	}
}

func TestSanitize_RejectsRelativeURLs(t *testing.T) {
	s := NewContentSanitizer()

	input := `<a href="/internal/admin">link</a>`
	got := s.Sanitize(input)

	if strings.Contains(got, `href="/internal/admin"`) {
		t.Errorf("relative URLs should be removed, got %q", got)
	}
}

func TestSanitize_EmptyInput(t *testing.T) {
	s := NewContentSanitizer()

	if got := s.Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty string", got)
	}
}

func TestSanitize_PlainTextPassesThrough(t *testing.T) {
	s := NewContentSanitizer()

	input := "アレルギー表示: 小麦、乳"
	if got := s.Sanitize(input); got != input {
		t.Errorf("plain text should pass through unchanged, got %q", got)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	s := NewContentSanitizer()

	input := `<p>containers <strong>provided</strong></p><script>x()</script>`
	once := s.Sanitize(input)
	twice := s.Sanitize(once)

	if once != twice {
		t.Errorf("sanitize should be idempotent: first %q, second %q", once, twice)
	}
}

func TestNewContentSanitizer_ImplementsInterface(t *testing.T) {
	var _ ContentSanitizerService = NewContentSanitizer()
}
