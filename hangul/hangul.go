// Package hangul classifies and decomposes Korean Hangul syllable blocks.
//
// A composed syllable block (U+AC00..U+D7A3) is an arithmetic combination
// of an initial consonant, a medial vowel and an optional final consonant.
// The package exposes that structure with compatibility jamo runes
// (U+3131..U+3163), which are the letters Korean text uses when a jamo
// stands alone:
//
//	Decompose('무') == Syllable{Initial: 'ㅁ', Medial: 'ㅜ'}
//	Decompose('운') == Syllable{Initial: 'ㅇ', Medial: 'ㅜ', Final: 'ㄴ'}
//
// All functions are pure and safe for concurrent use.
package hangul

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	syllableBase = 0xAC00
	syllableLast = 0xD7A3
	medialCount  = 21
	finalCount   = 28
	blockPerLead = medialCount * finalCount
	compatJamoLo = 0x3131
	compatJamoHi = 0x3163
	noFinalIndex = 0
)

// ErrMalformed is returned for text that is not valid UTF-8.
var ErrMalformed = errors.New("hangul: malformed UTF-8 input")

var initials = []rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

var medials = []rune{
	'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ', 'ㅙ',
	'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ',
}

// finals[0] is the empty slot.
var finals = []rune{
	0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ',
	'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// Reverse lookups, populated by init().
var (
	initialIndex map[rune]int
	medialIndex  map[rune]int
	finalIndex   map[rune]int
)

func init() {
	initialIndex = indexOf(initials)
	medialIndex = indexOf(medials)
	finalIndex = indexOf(finals)
}

func indexOf(rs []rune) map[rune]int {
	m := make(map[rune]int, len(rs))
	for i, r := range rs {
		m[r] = i
	}
	return m
}

// Syllable is the jamo breakdown of one syllable block. Final is 0 when the
// syllable is open (has no final consonant).
type Syllable struct {
	Initial rune
	Medial  rune
	Final   rune
}

// String returns the composed syllable, or "" if s is not composable.
func (s Syllable) String() string {
	r, ok := Compose(s)
	if !ok {
		return ""
	}
	return string(r)
}

// IsSyllable reports whether r is a composed Hangul syllable block.
func IsSyllable(r rune) bool {
	return r >= syllableBase && r <= syllableLast
}

// IsJamo reports whether r is a compatibility jamo letter (ㄱ..ㅣ).
func IsJamo(r rune) bool {
	return r >= compatJamoLo && r <= compatJamoHi
}

// IsFinalJamo reports whether r can occupy the final-consonant slot.
func IsFinalJamo(r rune) bool {
	i, ok := finalIndex[r]
	return ok && i != noFinalIndex
}

// Decompose splits a syllable block into its jamo.
// Returns false if r is not a syllable block.
func Decompose(r rune) (Syllable, bool) {
	if !IsSyllable(r) {
		return Syllable{}, false
	}
	off := int(r - syllableBase)
	return Syllable{
		Initial: initials[off/blockPerLead],
		Medial:  medials[(off%blockPerLead)/finalCount],
		Final:   finals[off%finalCount],
	}, true
}

// Compose builds a syllable block from its jamo.
// Returns false if any slot holds a rune that cannot occupy it.
func Compose(s Syllable) (rune, bool) {
	i, ok := initialIndex[s.Initial]
	if !ok {
		return 0, false
	}
	m, ok := medialIndex[s.Medial]
	if !ok {
		return 0, false
	}
	f, ok := finalIndex[s.Final]
	if !ok {
		return 0, false
	}
	return rune(syllableBase + i*blockPerLead + m*finalCount + f), true
}

// HasFinal reports whether r is a syllable block with a final consonant.
func HasFinal(r rune) bool {
	return IsSyllable(r) && (r-syllableBase)%finalCount != noFinalIndex
}

// Final returns the final consonant of r as a compatibility jamo,
// or 0 if r is open or not a syllable block.
func Final(r rune) rune {
	if !IsSyllable(r) {
		return 0
	}
	return finals[(r-syllableBase)%finalCount]
}

// Medial returns the vowel of r as a compatibility jamo,
// or 0 if r is not a syllable block.
func Medial(r rune) rune {
	if !IsSyllable(r) {
		return 0
	}
	return medials[((r-syllableBase)%blockPerLead)/finalCount]
}

// WithFinal returns r with its final consonant replaced by f.
// f == 0 removes the final consonant. Returns false if r is not a syllable
// block or f cannot occupy the final slot.
func WithFinal(r, f rune) (rune, bool) {
	if !IsSyllable(r) {
		return r, false
	}
	fi, ok := finalIndex[f]
	if !ok {
		return r, false
	}
	off := r - syllableBase
	return syllableBase + off - off%finalCount + rune(fi), true
}

// Trim removes every leading and trailing rune that is not a syllable block.
func Trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return !IsSyllable(r) })
}

// Valid returns ErrMalformed if s is not valid UTF-8.
func Valid(s string) error {
	if !utf8.ValidString(s) {
		return ErrMalformed
	}
	return nil
}
