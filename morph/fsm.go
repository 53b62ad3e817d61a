package morph

import (
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/az-ai-labs/ko-lang-nlp/hangul"
)

// maxTokenRunes is the longest token the stripper will analyze. Longer
// tokens are returned unchanged as a single noun.
const maxTokenRunes = 64

// Stripper reduces tokens to lemmas using a fixed set of particle tables.
// A Stripper holds no mutable state and is safe for concurrent use.
type Stripper struct {
	tables      *Tables
	splitJoined bool
}

// Option configures a Stripper.
type Option func(*Stripper)

// SplitJoined makes the stripper split a token joined by a hyphen or
// middle dot (한국-일본, 남·북) into parts that are stripped independently.
// Without it a joined token is one part, and 한국-일본의 yields 한국-일본.
func SplitJoined() Option {
	return func(s *Stripper) { s.splitJoined = true }
}

// NewStripper returns a stripper over t. A nil t selects DefaultTables.
func NewStripper(t *Tables, opts ...Option) *Stripper {
	if t == nil {
		t = DefaultTables()
	}
	s := &Stripper{tables: t}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	defaultStripperOnce sync.Once
	defaultStripper     *Stripper
)

// Default returns the process-wide stripper over the built-in tables.
func Default() *Stripper {
	defaultStripperOnce.Do(func() {
		defaultStripper = NewStripper(DefaultTables())
	})
	return defaultStripper
}

// Step records one transition of the state machine.
//
// A particle step has Particle set to the matched surface. Fused is true
// when the surface started with a jamo and only the final consonant of the
// preceding syllable was removed. The last step of each part has Terminal
// set and carries the emitted lemma (empty when the part was consumed) and
// the irregular repairs that fired.
type Step struct {
	Part     int
	From     string
	To       string
	Particle string
	Tag      ParticleTag
	Fused    bool
	Residual string
	Terminal bool
	Lemma    string
	Repairs  []RepairTag
}

// Strip reduces token to its lemmas.
//
// The token is one part unless the stripper was built with SplitJoined.
// Each part is trimmed of non-syllable runes before stripping.
func (s *Stripper) Strip(token string) Result {
	return s.run(token, nil)
}

// Trace strips token and returns every state transition in order.
func (s *Stripper) Trace(token string) []Step {
	var steps []Step
	s.run(token, &steps)
	return steps
}

func (s *Stripper) run(token string, trace *[]Step) Result {
	if token == "" {
		return Result{}
	}
	if utf8.RuneCountInString(token) > maxTokenRunes {
		return Result{Lemmas: []Lemma{{Text: token, Kind: Noun}}, Parts: 1}
	}

	parts := []string{token}
	if s.splitJoined {
		parts = strings.FieldsFunc(token, isJoiner)
	}

	var res Result
	for _, part := range parts {
		part = hangul.Trim(part)
		if part == "" {
			continue
		}
		res.Parts++
		if l, ok := s.reduce(part, res.Parts-1, trace); ok {
			res.Lemmas = append(res.Lemmas, l)
		}
	}
	return res
}

// isJoiner reports whether r joins the parts of a compound token.
func isJoiner(r rune) bool {
	return r == '-' || r == '·' || r == '・'
}

// match is one candidate particle found at the end of a residual.
type match struct {
	rule     *particleRule
	surface  string
	residual []rune
	fused    bool
}

// reduce runs the state machine over one part. The returned bool is false
// when the part was consumed entirely by particles.
func (s *Stripper) reduce(part string, idx int, trace *[]Step) (Lemma, bool) {
	word := []rune(part)
	state := initial

	// Transitions are bounded by the rune count of the part. A lexical noun
	// takes none.
	steps := len(word)
	if lexicalNouns[part] {
		steps = 0
	}
	for range steps {
		m, ok := s.match(word, state)
		if !ok {
			break
		}
		if trace != nil {
			*trace = append(*trace, Step{
				Part:     idx,
				From:     state.String(),
				To:       m.rule.toState.String(),
				Particle: m.surface,
				Tag:      m.rule.tag,
				Fused:    m.fused,
				Residual: string(m.residual),
			})
		}
		state = m.rule.toState
		word = m.residual
		if len(word) == 0 {
			break
		}
	}

	var (
		lemma   Lemma
		repairs []RepairTag
	)
	if len(word) > 0 {
		lemma, repairs = buildLemma(word, state)
	}
	if trace != nil {
		*trace = append(*trace, Step{
			Part:     idx,
			From:     state.String(),
			To:       state.String(),
			Residual: string(word),
			Terminal: true,
			Lemma:    lemma.Text,
			Repairs:  repairs,
		})
	}
	return lemma, len(word) > 0
}

// buildLemma turns the residual left in state into a lemma. A part that
// matched nothing is returned as is.
func buildLemma(word []rune, state fsmState) (Lemma, []RepairTag) {
	if state.kind() == Noun {
		return Lemma{Text: string(word), Kind: Noun}, nil
	}
	stem, repairs := repairStem(word)
	return Lemma{Text: string(stem) + "다", Kind: Verb}, repairs
}

// match finds the longest particle at the end of word that may follow
// state. Within a length class the literal surface is tried before the
// fused form whose first rune is the final consonant of the syllable at
// the class boundary.
func (s *Stripper) match(word []rune, state fsmState) (match, bool) {
	n := len(word)
	for class := maxClass; class >= minClass; class-- {
		if n < class {
			continue
		}
		head := n - class

		// A single-syllable token is never a bare particle.
		if class > minClass || n >= 2 {
			surface := string(word[head:])
			if m, ok := s.try(class, surface, word[:head], state, false); ok {
				return m, true
			}
		}

		// A fused match keeps the syllable, so it is allowed on a one-rune
		// residual once something has already been stripped.
		if class == minClass && n < 2 && state == initial {
			continue
		}
		final := hangul.Final(word[head])
		if final == 0 {
			continue
		}
		open, ok := hangul.WithFinal(word[head], 0)
		if !ok {
			continue
		}
		surface := string(final) + string(word[head+1:])
		residual := append(slices.Clone(word[:head]), open)
		if m, ok := s.try(class, surface, residual, state, true); ok {
			return m, true
		}
	}
	return match{}, false
}

// try checks one candidate surface against the rules indexed under it. The
// first rule that may follow state and whose guard admits the residual wins.
func (s *Stripper) try(class int, surface string, residual []rune, state fsmState, fused bool) (match, bool) {
	rules, ok := s.tables.lookup(class, surface)
	if !ok {
		return match{}, false
	}
	for _, rule := range rules {
		if slices.Contains(rule.fromStates, state) && rule.guard.admits(residual) {
			return match{rule: rule, surface: surface, residual: residual, fused: fused}, true
		}
	}
	return match{}, false
}
