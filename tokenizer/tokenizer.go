// Package tokenizer splits Korean sentences into whitespace-delimited
// surface tokens (eojeol).
//
// The package provides two API layers:
//
//   - Structured: Tokenize returns []Token with byte offsets. The invariant
//     s[t.Start:t.End] == t.Text holds for every token.
//
//   - Convenience: Words returns []string for callers that do not need
//     offsets.
//
// Tokens are split on U+0020 only. Repeated spaces never produce empty
// tokens. Punctuation is not removed here; run Prepare on the sentence first
// and hangul.Trim on individual tokens as needed.
//
// All functions are safe for concurrent use by multiple goroutines.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/az-ai-labs/ko-lang-nlp/hangul"
)

// maxSentenceBytes bounds the input accepted by Prepare.
const maxSentenceBytes = 1 << 16

// avgTokenBytes is the estimated byte length of one eojeol (three syllables
// plus a space), used to pre-allocate the token slice.
const avgTokenBytes = 10

// ErrTooLong is returned by Prepare for sentences over maxSentenceBytes.
var ErrTooLong = fmt.Errorf("tokenizer: sentence exceeds %d bytes", maxSentenceBytes)

// Token is one whitespace-delimited surface form.
type Token struct {
	Text  string // The token text
	Start int    // Byte offset in the sentence (inclusive)
	End   int    // Byte offset in the sentence (exclusive)
}

// String returns a debug representation, e.g. "거리에"[0:9].
func (t Token) String() string {
	return fmt.Sprintf("%q[%d:%d]", t.Text, t.Start, t.End)
}

// Prepare validates and cleans a raw sentence before tokenization:
// it rejects invalid UTF-8 with hangul.ErrMalformed, composes conjoining
// jamo into syllable blocks, and trims leading and trailing non-syllable runes.
func Prepare(sentence string) (string, error) {
	if err := hangul.Valid(sentence); err != nil {
		return "", err
	}
	if len(sentence) > maxSentenceBytes {
		return "", ErrTooLong
	}
	return hangul.Trim(hangul.ComposeNFC(sentence)), nil
}

// Tokenize splits sentence on single spaces, left to right.
// Returns nil for a sentence with no tokens.
func Tokenize(sentence string) []Token {
	if sentence == "" {
		return nil
	}
	tokens := make([]Token, 0, len(sentence)/avgTokenBytes+1)
	start := 0
	for start < len(sentence) {
		end := strings.IndexByte(sentence[start:], ' ')
		if end < 0 {
			end = len(sentence)
		} else {
			end += start
		}
		if end > start {
			tokens = append(tokens, Token{Text: sentence[start:end], Start: start, End: end})
		}
		start = end + 1
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// Words returns the token texts of sentence.
func Words(sentence string) []string {
	tokens := Tokenize(sentence)
	if tokens == nil {
		return nil
	}
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Text
	}
	return words
}
