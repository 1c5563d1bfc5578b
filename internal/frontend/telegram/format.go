package telegram

import (
	"strings"
	"unicode/utf8"

	"github.com/vadimtrunov/cinemart/internal/suggest"
)

// maxCaptionLen is Telegram's limit for photo captions.
const maxCaptionLen = 1024

// mdV2Replacer escapes special characters for Telegram MarkdownV2.
var mdV2Replacer = strings.NewReplacer(
	`\`, `\\`,
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// linkURLReplacer escapes the characters MarkdownV2 reserves inside a link target.
var linkURLReplacer = strings.NewReplacer(`\`, `\\`, ")", "\\)")

// EscapeMdV2 escapes a string for safe use in Telegram MarkdownV2.
func EscapeMdV2(s string) string {
	return mdV2Replacer.Replace(s)
}

// FormatBold returns MarkdownV2 bold text.
func FormatBold(s string) string {
	return "*" + EscapeMdV2(s) + "*"
}

// FormatLink returns a MarkdownV2 inline link.
func FormatLink(text, url string) string {
	return "[" + EscapeMdV2(text) + "](" + linkURLReplacer.Replace(url) + ")"
}

// FormatCard renders a suggestion card as a MarkdownV2 message.
// The overview is shortened so the result fits in a photo caption.
func FormatCard(c suggest.Card) string {
	head := FormatBold(c.Heading) + "\n" + EscapeMdV2("Rating: "+c.Rating)
	var tail string
	if c.HasTrailer() {
		tail = "\n\n" + FormatLink("▶ Watch trailer", c.TrailerWatchURL)
	}

	budget := maxCaptionLen - runeLen(head) - runeLen(tail) - 2
	return head + "\n\n" + escapeWithin(c.Overview, budget) + tail
}

// escapeWithin escapes s for MarkdownV2, cutting it at a character boundary
// with an ellipsis so the escaped result is at most budget runes.
func escapeWithin(s string, budget int) string {
	escaped := EscapeMdV2(s)
	if runeLen(escaped) <= budget {
		return escaped
	}
	var sb strings.Builder
	used := 0
	for _, r := range s {
		esc := EscapeMdV2(string(r))
		n := runeLen(esc)
		if used+n > budget-1 {
			break
		}
		sb.WriteString(esc)
		used += n
	}
	return sb.String() + "…"
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
