package htmlsanitize_test

import (
	"testing"

	"github.com/coreledger/onboardweb/internal/app/system/htmlsanitize"
)

func TestPlain_Empty(t *testing.T) {
	if got := htmlsanitize.Plain(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestPlain_PlainText(t *testing.T) {
	if got := htmlsanitize.Plain("Hello, World!"); got != "Hello, World!" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestPlain_KeepsAmpersands(t *testing.T) {
	if got := htmlsanitize.Plain("Smith & Sons"); got != "Smith & Sons" {
		t.Errorf("expected ampersand preserved, got %q", got)
	}
}

func TestPlain_StripsTags(t *testing.T) {
	if got := htmlsanitize.Plain("<b>Headquarters</b>"); got != "Headquarters" {
		t.Errorf("expected tags stripped, got %q", got)
	}
}

func TestPlain_RemovesScript(t *testing.T) {
	if got := htmlsanitize.Plain("Main Street<script>alert('xss')</script>"); got != "Main Street" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestPlain_TrimsWhitespace(t *testing.T) {
	if got := htmlsanitize.Plain("  Unit 101  "); got != "Unit 101" {
		t.Errorf("expected surrounding whitespace trimmed, got %q", got)
	}
}
