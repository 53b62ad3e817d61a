package tokenizer

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/az-ai-labs/ko-lang-nlp/hangul"
)

// verifyOffsets checks input[t.Start:t.End] == t.Text for every token.
func verifyOffsets(t *testing.T, input string, tokens []Token) {
	t.Helper()
	for i, tok := range tokens {
		if got := input[tok.Start:tok.End]; got != tok.Text {
			t.Errorf("token %d offset invariant broken: input[%d:%d]=%q, Text=%q",
				i, tok.Start, tok.End, got, tok.Text)
		}
		if tok.Text == "" {
			t.Errorf("token %d is empty", i)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{"empty", "", nil},
		{"only spaces", "   ", nil},
		{"single", "거리에", []Token{
			{Text: "거리에", Start: 0, End: 9},
		}},
		{"two", "무서운 것", []Token{
			{Text: "무서운", Start: 0, End: 9},
			{Text: "것", Start: 10, End: 13},
		}},
		{"repeated spaces", "영혼은  명계에서", []Token{
			{Text: "영혼은", Start: 0, End: 9},
			{Text: "명계에서", Start: 11, End: 23},
		}},
		{"leading and trailing space", " 살 ", []Token{
			{Text: "살", Start: 1, End: 4},
		}},
		{"punctuation stays attached", "거리에, 사람", []Token{
			{Text: "거리에,", Start: 0, End: 10},
			{Text: "사람", Start: 11, End: 17},
		}},
		{"tab is not a separator", "가\t나", []Token{
			{Text: "가\t나", Start: 0, End: 7},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
			verifyOffsets(t, tt.input, got)
		})
	}
}

func TestTokenizeRestartable(t *testing.T) {
	const s = "영혼은 명계에서 살 것이고"
	a := Tokenize(s)
	b := Tokenize(s)
	if !slices.Equal(a, b) {
		t.Errorf("Tokenize not deterministic: %v vs %v", a, b)
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"sentence", "영혼은 명계에서 살 것이고", []string{"영혼은", "명계에서", "살", "것이고"}},
		{"spaces", "  가  나 ", []string{"가", "나"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Words(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("Words(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"quoted", "\"받으세요.\"", "받으세요", nil},
		{"dialogue dash", "- 그렇습니다...", "그렇습니다", nil},
		{"nfd", "\u1100\u1165\u1105\u1175\u110B\u1166", "거리에", nil},
		{"no hangul", "OK!", "", nil},
		{"malformed", "거리\xff", "", hangul.ErrMalformed},
		{"too long", strings.Repeat("가", maxSentenceBytes), "", ErrTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Prepare(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Prepare(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Prepare(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Text: "것", Start: 10, End: 13}
	if got, want := tok.String(), `"것"[10:13]`; got != want {
		t.Errorf("Token.String() = %q, want %q", got, want)
	}
}

func BenchmarkTokenize(b *testing.B) {
	s := strings.Repeat("영혼은 명계에서 살 것이고 ", 20)
	b.ResetTimer()
	for b.Loop() {
		Tokenize(s)
	}
}

func ExampleWords() {
	fmt.Println(Words("무서운  것"))
	// Output: [무서운 것]
}

func FuzzTokenize(f *testing.F) {
	f.Add("영혼은 명계에서 살 것이고")
	f.Add("")
	f.Add("   ")
	f.Add("\xff ")

	f.Fuzz(func(t *testing.T, s string) {
		verifyOffsets(t, s, Tokenize(s))
	})
}
