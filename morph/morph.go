// Package morph reduces inflected Korean eojeol (space-delimited tokens)
// to dictionary lemmas by stripping trailing particles and endings.
//
// The package provides two API layers:
//
//   - Structured: Stripper.Strip returns a Result with typed lemmas
//     (Noun or Verb) and tells single-lemma tokens apart from compound
//     tokens. Stripper.Trace exposes every state transition.
//
//   - Convenience: Strip returns lemma strings, and Lemmas is a batch
//     wrapper for use with tokenizer.Words().
//
// The stripper is a longest-match state machine over three particle tables
// keyed by length class (3, 2 and 1 syllables). Each matched particle moves
// the machine to a new state that decides which particles may still precede
// it; a nominal terminal state emits the bare stem, a verbal terminal state
// repairs irregular stems and appends the citation suffix 다.
//
// All functions are safe for concurrent use by multiple goroutines.
//
// Known limitations:
//
//   - 는 after an open syllable other than 하/되 is read as the topic
//     particle, so 사는 (살다) yields the noun 사.
//   - 은 after a noun-like final is read as the topic particle unless the
//     stem is a known one-syllable adjective, so 받은 yields the noun 받.
//   - Nouns that look inflected are recognized from a closed list only:
//     서울 is kept whole, 한겨울 is read as an adjective.
//   - Joined tokens (한국-일본) are one lemma unless the stripper is built
//     with SplitJoined.
//   - The ㅡ-irregular (써 → 쓰다), ㄷ-irregular (들어 → 듣다) and
//     ㅅ-irregular (지어 → 짓다) classes are not repaired.
//   - Single-syllable tokens are never reduced (살 stays 살).
//   - Input is expected in NFC form. Use hangul.ComposeNFC first.
package morph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind classifies a lemma.
type Kind int

const (
	Noun Kind = iota // bare stem, emitted as is
	Verb             // verb or adjective, emitted with the citation suffix 다
)

// String returns the name of the lemma kind.
func (k Kind) String() string {
	switch k {
	case Noun:
		return "Noun"
	case Verb:
		return "Verb"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalJSON encodes the kind as a JSON string (e.g. "Verb").
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "Verb") into a Kind.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Noun":
		*k = Noun
	case "Verb":
		*k = Verb
	default:
		return fmt.Errorf("unknown lemma kind: %q", s)
	}
	return nil
}

// Lemma is the dictionary form of one lexical unit.
type Lemma struct {
	Text string `json:"text"` // e.g. "무섭다", "거리"
	Kind Kind   `json:"kind"`
}

// String returns the lemma text.
func (l Lemma) String() string {
	return l.Text
}

// Result holds the lemmas produced from one token.
//
// Parts is the number of joined parts the token was split into before
// stripping (1 for a plain token). A token that reduces to nothing has
// no lemmas.
type Result struct {
	Lemmas []Lemma `json:"lemmas"`
	Parts  int     `json:"parts"`
}

// IsEmpty reports whether the token produced no lemma.
func (r Result) IsEmpty() bool {
	return len(r.Lemmas) == 0
}

// IsCompound reports whether the token was a joined compound that produced
// more than one lemma.
func (r Result) IsCompound() bool {
	return r.Parts > 1 && len(r.Lemmas) > 1
}

// Strings returns the lemma texts.
func (r Result) Strings() []string {
	if len(r.Lemmas) == 0 {
		return nil
	}
	out := make([]string, len(r.Lemmas))
	for i, l := range r.Lemmas {
		out[i] = l.Text
	}
	return out
}

// String returns a debug representation, e.g. [무섭다:Verb 것:Noun].
func (r Result) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, l := range r.Lemmas {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(l.Text)
		sb.WriteByte(':')
		sb.WriteString(l.Kind.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Strip returns the lemma strings of token using the built-in particle
// tables. Returns nil for an empty token or one consumed entirely by
// particles. Returns the token itself when no particle matches.
func Strip(token string) []string {
	return Default().Strip(token).Strings()
}

// Lemmas strips each word independently.
// Designed to be used with tokenizer.Words().
// Returns nil if the input is nil.
func Lemmas(words []string) [][]string {
	if words == nil {
		return nil
	}
	s := Default()
	out := make([][]string, len(words))
	for i, w := range words {
		out[i] = s.Strip(w).Strings()
	}
	return out
}
