package morph

import "github.com/az-ai-labs/ko-lang-nlp/hangul"

// guardKind restricts where a particle may attach, based on the syllable
// left at the end of the stem after stripping.
type guardKind int

const (
	noGuard           guardKind = iota // attaches anywhere
	afterConsonant                     // stem ends in a closed syllable (이, 은, 을, 과, 으로)
	afterVowel                         // stem ends in an open syllable (가, 는, 를, 와)
	afterVowelOrRieul                  // open syllable or final ㄹ (로)
	contractedVowel                    // open syllable carrying a fused 아/어 vowel (봐요, 했다)
	irregularStem                      // stem ends in 우, 하 or 어지/아지 (무서운, 중요한)
	presentStem                        // closed syllable, or 하/되 (먹는, 하는)
	descriptiveStem                    // final no noun ends in, or a known adjective (좋은, 작은)
)

// verbalFinals are final consonants that end verb stems but no noun
// (좋-, 많-, 싫-, 있-, 없-).
var verbalFinals = map[rune]bool{
	'ㅎ': true, 'ㄶ': true, 'ㅀ': true, 'ㅆ': true, 'ㅄ': true,
}

// contractedVowels are the medials an open stem-final syllable shows once
// the infinitive 아/어 has fused into it.
var contractedVowels = map[rune]bool{
	'ㅏ': true, 'ㅓ': true, 'ㅐ': true, 'ㅔ': true,
	'ㅕ': true, 'ㅘ': true, 'ㅝ': true, 'ㅙ': true,
}

// admits reports whether a particle with guard g may attach to stem.
// An empty stem is always admitted: the token is consumed entirely and
// produces no lemma.
func (g guardKind) admits(stem []rune) bool {
	if len(stem) == 0 || g == noGuard {
		return true
	}
	last := stem[len(stem)-1]
	if !hangul.IsSyllable(last) {
		return false
	}
	switch g {
	case afterConsonant:
		return hangul.HasFinal(last)
	case afterVowel:
		return !hangul.HasFinal(last)
	case afterVowelOrRieul:
		f := hangul.Final(last)
		return f == 0 || f == 'ㄹ'
	case contractedVowel:
		return !hangul.HasFinal(last) && contractedVowels[hangul.Medial(last)]
	case irregularStem:
		return isIrregularStem(stem)
	case presentStem:
		if lexicalNouns[string(stem)] {
			return false
		}
		return hangul.HasFinal(last) || last == '하' || last == '되'
	case descriptiveStem:
		return verbalFinals[hangul.Final(last)] || (len(stem) == 1 && adjectiveStems[last])
	default:
		return false
	}
}

// isIrregularStem reports whether a stem exposed by the adnominal ㄴ/ㄹ
// belongs to a class whose citation form can be rebuilt: ㅂ-irregular
// (무서우-), 하다 verbs (중요하-) and the 어지/아지 passive (이루어지-).
func isIrregularStem(stem []rune) bool {
	n := len(stem)
	if n < minStemRunes {
		return false
	}
	switch stem[n-1] {
	case '우':
		return !hangul.HasFinal(stem[n-2])
	case '하':
		return true
	case '지':
		return stem[n-2] == '어' || stem[n-2] == '아'
	}
	return false
}

// isOpen reports whether r is a syllable block without a final consonant.
func isOpen(r rune) bool {
	return hangul.IsSyllable(r) && !hangul.HasFinal(r)
}
