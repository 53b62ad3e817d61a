// Irregular stem repair for verbal residuals.
//
// After particles are stripped, a verbal residual may still show a surface
// form that differs from the dictionary stem: a fused infinitive vowel
// (봐 → 보), 하다 contraction (해 → 하), or an irregular conjugation class
// (무서우 → 무섭, 몰라 → 모르). The repair rules below rewrite the final
// syllables of the stem in order; each rule sees the output of the previous
// one, so 무서워 → 무서우 → 무섭 takes two rules.
package morph

import "github.com/az-ai-labs/ko-lang-nlp/hangul"

// minStemRunes is the shortest stem an irregular rule may rewrite: the
// rules look at the final syllable and the one before it.
const minStemRunes = 2

// RepairTag names an irregular repair class.
type RepairTag int

const (
	BieupIrregular   RepairTag = iota // 도와 → 돕, 무서우 → 무섭
	VowelContraction                  // 봐 → 보, 줘 → 주, 돼 → 되
	YeoContraction                    // 져 → 지, 셔 → 시, 버려 → 버리
	HadaContraction                   // 해 → 하
	RieulIrregular                    // 몰라 → 모르, 불러 → 부르
)

var repairTagNames = [...]string{
	BieupIrregular:   "BieupIrregular",
	VowelContraction: "VowelContraction",
	YeoContraction:   "YeoContraction",
	HadaContraction:  "HadaContraction",
	RieulIrregular:   "RieulIrregular",
}

// String returns the name of the repair class.
func (t RepairTag) String() string {
	if t >= 0 && int(t) < len(repairTagNames) {
		return repairTagNames[t]
	}
	return "RepairTag(?)"
}

// repairRule rewrites the tail of a verbal stem. apply returns the
// rewritten stem and true when the rule fired.
type repairRule struct {
	tag   RepairTag
	apply func(stem []rune) ([]rune, bool)
}

// repairRules are evaluated in order; all matching rules fire.
var repairRules = []repairRule{
	{tag: BieupIrregular, apply: bieupWa},
	{tag: VowelContraction, apply: contractVowel},
	{tag: BieupIrregular, apply: bieupU},
	{tag: YeoContraction, apply: contractYeo},
	{tag: HadaContraction, apply: contractHada},
	{tag: RieulIrregular, apply: rieulIrregular},
}

// Regular stems ending in 우 that must not be read as ㅂ-irregular.
var regularUStems = map[string]bool{
	"배우": true, "세우": true, "싸우": true, "비우": true, "키우": true,
	"채우": true, "깨우": true, "외우": true, "태우": true, "피우": true,
	"지우": true, "메우": true, "데우": true, "끼우": true, "띄우": true,
	"씌우": true, "재우": true, "새우": true, "치우": true,
}

// ㅂ-irregular stems whose 와 form is 도와/고와.
var bieupWaStems = map[rune]bool{'도': true, '고': true}

// Stems ending in 라 after ㄹ that are regular (놀라다 is its own verb).
var regularRaStems = map[string]bool{"놀라": true}

// Initial consonants whose ㅕ syllable is a contraction of ㅣ + 어.
var yeoInitials = map[rune]bool{
	'ㅈ': true, 'ㅊ': true, 'ㅅ': true, 'ㄹ': true, 'ㄱ': true, 'ㅎ': true,
}

var vowelContractions = map[rune]rune{
	'ㅘ': 'ㅗ',
	'ㅝ': 'ㅜ',
	'ㅙ': 'ㅚ',
}

// repairStem applies every matching repair rule to stem and returns the
// citation stem along with the tags of the rules that fired.
func repairStem(stem []rune) ([]rune, []RepairTag) {
	var fired []RepairTag
	for _, rule := range repairRules {
		if out, ok := rule.apply(stem); ok {
			stem = out
			fired = append(fired, rule.tag)
		}
	}
	return stem, fired
}

// bieupWa rebuilds 돕/곱 from 도와/고와.
func bieupWa(stem []rune) ([]rune, bool) {
	n := len(stem)
	if n < minStemRunes || stem[n-1] != '와' || !bieupWaStems[stem[n-2]] {
		return stem, false
	}
	return attachFinal(stem[:n-1], 'ㅂ')
}

// bieupU rebuilds 무섭 from 무서우.
func bieupU(stem []rune) ([]rune, bool) {
	n := len(stem)
	if n < minStemRunes || stem[n-1] != '우' || !isOpen(stem[n-2]) {
		return stem, false
	}
	if regularUStems[string(stem[n-2:])] {
		return stem, false
	}
	return attachFinal(stem[:n-1], 'ㅂ')
}

// contractVowel undoes a fused infinitive vowel on the final syllable.
func contractVowel(stem []rune) ([]rune, bool) {
	n := len(stem)
	if n == 0 {
		return stem, false
	}
	s, ok := hangul.Decompose(stem[n-1])
	if !ok || s.Final != 0 {
		return stem, false
	}
	to, ok := vowelContractions[s.Medial]
	if !ok {
		return stem, false
	}
	s.Medial = to
	return replaceLast(stem, s)
}

// contractYeo rewrites 져/쳐/셔/려/겨/혀 to 지/치/시/리/기/히.
func contractYeo(stem []rune) ([]rune, bool) {
	n := len(stem)
	if n == 0 {
		return stem, false
	}
	s, ok := hangul.Decompose(stem[n-1])
	if !ok || s.Final != 0 || s.Medial != 'ㅕ' || !yeoInitials[s.Initial] {
		return stem, false
	}
	s.Medial = 'ㅣ'
	return replaceLast(stem, s)
}

// contractHada rewrites a final 해 to 하.
func contractHada(stem []rune) ([]rune, bool) {
	n := len(stem)
	if n == 0 || stem[n-1] != '해' {
		return stem, false
	}
	out := append([]rune(nil), stem...)
	out[n-1] = '하'
	return out, true
}

// rieulIrregular rebuilds 모르 from 몰라 and 부르 from 불러.
func rieulIrregular(stem []rune) ([]rune, bool) {
	n := len(stem)
	if n < minStemRunes || (stem[n-1] != '라' && stem[n-1] != '러') {
		return stem, false
	}
	if hangul.Final(stem[n-2]) != 'ㄹ' || regularRaStems[string(stem[n-2:])] {
		return stem, false
	}
	prev, ok := hangul.WithFinal(stem[n-2], 0)
	if !ok {
		return stem, false
	}
	out := append([]rune(nil), stem[:n-2]...)
	return append(out, prev, '르'), true
}

// attachFinal adds a final consonant to the last syllable of stem.
func attachFinal(stem []rune, final rune) ([]rune, bool) {
	n := len(stem)
	if n == 0 || hangul.HasFinal(stem[n-1]) {
		return stem, false
	}
	r, ok := hangul.WithFinal(stem[n-1], final)
	if !ok {
		return stem, false
	}
	out := append([]rune(nil), stem...)
	out[n-1] = r
	return out, true
}

// replaceLast recomposes the final syllable of stem from s.
func replaceLast(stem []rune, s hangul.Syllable) ([]rune, bool) {
	r, ok := hangul.Compose(s)
	if !ok {
		return stem, false
	}
	out := append([]rune(nil), stem...)
	out[len(out)-1] = r
	return out, true
}
