package morph

import (
	"fmt"
	"slices"
	"sync"
	"unicode/utf8"

	iradix "github.com/hashicorp/go-immutable-radix"

	"github.com/az-ai-labs/ko-lang-nlp/hangul"
)

// Length classes, tried longest first.
const (
	minClass = 1
	maxClass = 3
)

// Tables holds the particle inventory split into one immutable radix tree
// per length class. A Tables value never changes after NewTables returns
// and may be shared by any number of Strippers.
type Tables struct {
	classes [maxClass + 1]*iradix.Tree // index 0 unused
}

var (
	defaultTablesOnce sync.Once
	defaultTables     *Tables
)

// DefaultTables returns the process-wide tables built from the built-in
// particle inventory. The tables are built on first use.
func DefaultTables() *Tables {
	defaultTablesOnce.Do(func() {
		t, err := NewTables(particleRules)
		if err != nil {
			panic("morph: built-in particle table: " + err.Error())
		}
		defaultTables = t
	})
	return defaultTables
}

// NewTables indexes rules by length class. Rules sharing a surface are kept
// in list order and tried in that order. It rejects surfaces outside the
// 1..3 length classes, jamo that cannot fill a final-consonant slot or that
// appear anywhere but the first position, and a surface listed twice under
// the same guard.
func NewTables(rules []particleRule) (*Tables, error) {
	var txns [maxClass + 1]*iradix.Txn
	for c := minClass; c <= maxClass; c++ {
		txns[c] = iradix.New().Txn()
	}

	for i := range rules {
		rule := &rules[i]
		for _, surface := range rule.surfaces {
			class, err := surfaceClass(surface)
			if err != nil {
				return nil, err
			}
			key := []byte(surface)
			var shared []*particleRule
			if v, ok := txns[class].Get(key); ok {
				shared = v.([]*particleRule)
			}
			for _, prev := range shared {
				if prev.guard == rule.guard {
					return nil, fmt.Errorf("duplicate particle %q", surface)
				}
			}
			txns[class].Insert(key, append(slices.Clip(shared), rule))
		}
	}

	t := &Tables{}
	for c := minClass; c <= maxClass; c++ {
		t.classes[c] = txns[c].Commit()
	}
	return t, nil
}

// surfaceClass returns the length class of a particle surface and checks
// its jamo usage.
func surfaceClass(surface string) (int, error) {
	n := utf8.RuneCountInString(surface)
	if n < minClass || n > maxClass {
		return 0, fmt.Errorf("particle %q: length %d outside classes %d..%d", surface, n, minClass, maxClass)
	}
	for i, r := range []rune(surface) {
		switch {
		case hangul.IsSyllable(r):
		case i == 0 && hangul.IsFinalJamo(r):
		default:
			return 0, fmt.Errorf("particle %q: invalid rune %q at %d", surface, r, i)
		}
	}
	return n, nil
}

// lookup returns the rules indexed under surface in the given class, in
// the order they are tried.
func (t *Tables) lookup(class int, surface string) ([]*particleRule, bool) {
	if class < minClass || class > maxClass {
		return nil, false
	}
	v, ok := t.classes[class].Get([]byte(surface))
	if !ok {
		return nil, false
	}
	return v.([]*particleRule), true
}

// Contains reports whether surface is a known particle in its length class.
func (t *Tables) Contains(surface string) bool {
	_, ok := t.lookup(utf8.RuneCountInString(surface), surface)
	return ok
}

// Len returns the number of particle surfaces in a length class.
func (t *Tables) Len(class int) int {
	if class < minClass || class > maxClass {
		return 0
	}
	return t.classes[class].Len()
}

// Particles returns the surfaces of a length class in byte order.
func (t *Tables) Particles(class int) []string {
	if class < minClass || class > maxClass {
		return nil
	}
	out := make([]string, 0, t.classes[class].Len())
	t.classes[class].Root().Walk(func(k []byte, _ interface{}) bool {
		out = append(out, string(k))
		return false
	})
	return out
}
