package export

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateRunes_AccentedBoundary(t *testing.T) {
	// 44 ASCII chars followed by a two-byte rune straddling the cut point.
	text := strings.Repeat("a", 44) + "ção de padaria"

	got := truncateRunes(text, 45)

	if !utf8.ValidString(got) {
		t.Fatalf("truncated text is not valid UTF-8: %q", got)
	}
	if utf8.RuneCountInString(got) != 45 {
		t.Errorf("rune count = %d, want 45", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "ç") {
		t.Errorf("got %q, want the full rune kept at the boundary", got)
	}
}

func TestTruncateRunes_ShortTextUntouched(t *testing.T) {
	if got := truncateRunes("pão", 45); got != "pão" {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestBuildPDF_LongAccentedDescription(t *testing.T) {
	rows := []TransactionRow{
		{
			Date:     "2025-05-17",
			Category: "Alimentação",
			Type:     "expense",
			Amount:   23.5,
			RawText:  strings.Repeat("pão de queijo com café e açúcar ", 4),
		},
	}

	out, err := BuildPDF(rows)
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header")
	}
}
