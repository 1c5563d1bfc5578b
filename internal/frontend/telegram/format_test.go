package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/vadimtrunov/cinemart/internal/suggest"
)

func TestEscapeMdV2(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text", in: "hello world", want: "hello world"},
		{name: "dots", in: "hello.", want: "hello\\."},
		{name: "exclamation", in: "Done!", want: "Done\\!"},
		{name: "parentheses", in: "(2024)", want: "\\(2024\\)"},
		{name: "brackets", in: "[link]", want: "\\[link\\]"},
		{name: "underscores", in: "foo_bar", want: "foo\\_bar"},
		{name: "stars", in: "*bold*", want: "\\*bold\\*"},
		{name: "mixed", in: "Dune (2021) - 8.0*", want: "Dune \\(2021\\) \\- 8\\.0\\*"},
		{name: "all specials", in: "_*[]()~`>#+-=|{}.!", want: "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeMdV2(tt.in)
			if got != tt.want {
				t.Errorf("EscapeMdV2(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatBold(t *testing.T) {
	got := FormatBold("Dune")
	want := "*Dune*"
	if got != want {
		t.Errorf("FormatBold(%q) = %q, want %q", "Dune", got, want)
	}

	got = FormatBold("Dune (2021)")
	want = "*Dune \\(2021\\)*"
	if got != want {
		t.Errorf("FormatBold(%q) = %q, want %q", "Dune (2021)", got, want)
	}
}

func TestFormatLink(t *testing.T) {
	got := FormatLink("Watch (now)", "https://www.youtube.com/watch?v=a_b")
	want := "[Watch \\(now\\)](https://www.youtube.com/watch?v=a_b)"
	if got != want {
		t.Errorf("FormatLink = %q, want %q", got, want)
	}

	got = FormatLink("x", "https://example.com/a)b")
	want = "[x](https://example.com/a\\)b)"
	if got != want {
		t.Errorf("FormatLink = %q, want %q", got, want)
	}
}

func TestFormatCard(t *testing.T) {
	card := suggest.Card{
		Heading:         "Test Movie (2020)",
		Rating:          "7.5",
		Overview:        "A test.",
		TrailerEmbedURL: "https://www.youtube.com/embed/abc",
		TrailerWatchURL: "https://www.youtube.com/watch?v=abc",
	}

	got := FormatCard(card)
	want := "*Test Movie \\(2020\\)*\nRating: 7\\.5\n\nA test\\.\n\n[▶ Watch trailer](https://www.youtube.com/watch?v=abc)"
	if got != want {
		t.Errorf("FormatCard =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatCard_NoTrailer(t *testing.T) {
	got := FormatCard(suggest.Card{Heading: "Solo", Rating: "6", Overview: suggest.NoOverview})
	if strings.Contains(got, "Watch trailer") {
		t.Errorf("card without trailer has a link: %q", got)
	}
	if !strings.HasSuffix(got, EscapeMdV2(suggest.NoOverview)) {
		t.Errorf("overview missing: %q", got)
	}
}

func TestFormatCard_LongOverviewFitsCaption(t *testing.T) {
	card := suggest.Card{
		Heading:         "Long",
		Rating:          "8",
		Overview:        strings.Repeat("Plot twist. ", 200),
		TrailerEmbedURL: "https://www.youtube.com/embed/k",
		TrailerWatchURL: "https://www.youtube.com/watch?v=k",
	}

	got := FormatCard(card)
	if n := utf8.RuneCountInString(got); n > maxCaptionLen {
		t.Errorf("caption length = %d, want <= %d", n, maxCaptionLen)
	}
	if !strings.Contains(got, "…") {
		t.Error("expected ellipsis on truncated overview")
	}
	if !strings.HasSuffix(got, "(https://www.youtube.com/watch?v=k)") {
		t.Error("trailer link must survive truncation")
	}
}

func TestEscapeWithin_KeepsEscapesWhole(t *testing.T) {
	got := escapeWithin("a.b.c.d", 5)
	// An escaped dot counts two runes and is never split.
	if got != "a\\.b…" {
		t.Errorf("escapeWithin = %q", got)
	}
}
