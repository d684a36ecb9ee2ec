package normalize

import (
	"testing"
)

func TestRewriteURL_AppendsParam(t *testing.T) {
	got := RewriteURL("https://novelkeys.com/products/nk65", "ref", "keebindex")
	want := "https://novelkeys.com/products/nk65?ref=keebindex"
	if got != want {
		t.Errorf("RewriteURL = %q, want %q", got, want)
	}
}

func TestRewriteURL_LeavesExistingQueryAlone(t *testing.T) {
	url := "https://novelkeys.com/products/nk65?variant=123"
	if got := RewriteURL(url, "ref", "keebindex"); got != url {
		t.Errorf("URL with query string must not be rewritten, got %q", got)
	}
}

func TestRewriteURL_NoMapping(t *testing.T) {
	url := "https://cannonkeys.com/products/bakeneko60"
	if got := RewriteURL(url, "", ""); got != url {
		t.Errorf("URL without mapping must be unchanged, got %q", got)
	}
	if got := RewriteURL(url, "ref", ""); got != url {
		t.Errorf("partial mapping must be ignored, got %q", got)
	}
}

func TestRewriteURL_Deterministic(t *testing.T) {
	first := RewriteURL("https://example.com/p/x", "ref", "keebindex")
	for i := 0; i < 5; i++ {
		if got := RewriteURL("https://example.com/p/x", "ref", "keebindex"); got != first {
			t.Fatalf("rewrite not deterministic: %q vs %q", first, got)
		}
	}
}

func TestStripHTML(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"plain text", "plain text"},
		{"", ""},
		{"<div>multi\n  line\n</div>", "multi line"},
	}

	for _, tc := range cases {
		if got := StripHTML(tc.in); got != tc.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate_RuneBoundary(t *testing.T) {
	s := "héllo wörld"
	got := Truncate(s, 2)
	if len(got) > 2 {
		t.Errorf("Truncate exceeded bound: %q", got)
	}
	for _, r := range got {
		if r == '�' {
			t.Errorf("Truncate produced invalid rune in %q", got)
		}
	}
}
