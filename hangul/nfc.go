package hangul

import "golang.org/x/text/unicode/norm"

const (
	conjoiningLo = 0x1100 // first leading consonant (choseong)
	conjoiningHi = 0x11FF // last trailing consonant (jongseong)
)

// ComposeNFC composes conjoining jamo sequences (as produced by NFD input,
// e.g. text copied from macOS file names) into syllable blocks.
// Text without conjoining jamo is returned unchanged.
func ComposeNFC(s string) string {
	hasConjoining := false
	for _, r := range s {
		if r >= conjoiningLo && r <= conjoiningHi {
			hasConjoining = true
			break
		}
	}
	if !hasConjoining {
		return s
	}
	return norm.NFC.String(s)
}
