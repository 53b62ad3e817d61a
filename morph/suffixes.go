package morph

import (
	"encoding/json"
	"fmt"
)

// fsmState represents a position in the particle chain, read right to left.
// The machine starts at initial and moves toward a stem state as particles
// are stripped.
type fsmState int

const (
	initial         fsmState = iota // nothing stripped yet
	nounAfterAux                    // after an auxiliary particle (은/는/도/만...)
	nounStem                        // terminal: remaining string is a noun stem
	verbAfterEnding                 // after a final or connective ending
	verbAfterTense                  // after a tense pre-final ending (었/았/겠)
	verbStem                        // terminal: remaining string is a verb stem
)

var stateNames = [...]string{
	initial:         "initial",
	nounAfterAux:    "nounAfterAux",
	nounStem:        "nounStem",
	verbAfterEnding: "verbAfterEnding",
	verbAfterTense:  "verbAfterTense",
	verbStem:        "verbStem",
}

func (s fsmState) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("fsmState(%d)", int(s))
}

// kind returns the lemma kind produced when the machine stops in s.
func (s fsmState) kind() Kind {
	switch s {
	case verbAfterEnding, verbAfterTense, verbStem:
		return Verb
	default:
		return Noun
	}
}

// ParticleTag classifies particles and endings by grammatical function.
type ParticleTag int

const (
	CaseSubject       ParticleTag = iota // 이/가, 께서
	CaseObject                           // 을/를
	CaseGenitive                         // 의
	CaseAdverbial                        // 에, 에서, 으로/로, 에게, 한테, 께
	CaseComitative                       // 과/와, 이랑
	Auxiliary                            // 은/는, 도, 만, 까지, 부터, 조차...
	Copula                               // 이다, 이고, 이라, 입니다, 예요...
	EndingFinal                          // 다, 요, 습니다, ㅂ니다, 세요, ㄴ다...
	EndingConnective                     // 고, 며, 면, 서, 어서, 는데, 지만...
	EndingAdnominal                      // ㄴ, ㄹ, 다는
	PreFinalTense                        // 었/았/였, 겠, contracted ㅆ
	PreFinalHonorific                    // 으시
)

var particleTagNames = map[ParticleTag]string{
	CaseSubject:       "CaseSubject",
	CaseObject:        "CaseObject",
	CaseGenitive:      "CaseGenitive",
	CaseAdverbial:     "CaseAdverbial",
	CaseComitative:    "CaseComitative",
	Auxiliary:         "Auxiliary",
	Copula:            "Copula",
	EndingFinal:       "EndingFinal",
	EndingConnective:  "EndingConnective",
	EndingAdnominal:   "EndingAdnominal",
	PreFinalTense:     "PreFinalTense",
	PreFinalHonorific: "PreFinalHonorific",
}

// String returns the name of the particle tag.
func (t ParticleTag) String() string {
	if name, ok := particleTagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ParticleTag(%d)", int(t))
}

// MarshalJSON encodes the tag as a JSON string (e.g. "CaseSubject").
func (t ParticleTag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// particleRule describes one particle (or a group of surfaces sharing the
// same function) with the states it may be stripped from and the state it
// leads to.
//
// A surface starting with a compatibility jamo (ㄴ다, ㅂ니다, ㅆ) fuses into
// the final-consonant slot of the preceding syllable; its length class
// counts that syllable.
type particleRule struct {
	surfaces   []string
	tag        ParticleTag
	fromStates []fsmState
	toState    fsmState
	guard      guardKind
}

var (
	fromToken    = []fsmState{initial}
	fromTokenAux = []fsmState{initial, nounAfterAux}
	fromEnding   = []fsmState{verbAfterEnding}
	fromPreFinal = []fsmState{verbAfterEnding, verbAfterTense}
)

// particleRules is the built-in particle inventory. Allomorph pairs that
// depend on the preceding syllable (이/가, 은/는, 을/를) are split into two
// rules so the guard can check batchim agreement.
//
// Rules sharing a surface are tried in list order, so the adnominal
// readings of 는 and 은 come before the topic particle.
var particleRules = []particleRule{

	// ---------------------------------------------------------------
	// ADNOMINAL ENDINGS SHARED WITH PARTICLES
	// ---------------------------------------------------------------

	{
		surfaces:   []string{"는"},
		tag:        EndingAdnominal,
		fromStates: fromToken,
		toState:    verbStem,
		guard:      presentStem,
	},
	{
		surfaces:   []string{"은"},
		tag:        EndingAdnominal,
		fromStates: fromToken,
		toState:    verbStem,
		guard:      descriptiveStem,
	},

	// ---------------------------------------------------------------
	// NOMINAL PARTICLES
	// ---------------------------------------------------------------

	{
		surfaces:   []string{"은"},
		tag:        Auxiliary,
		fromStates: fromToken,
		toState:    nounAfterAux,
		guard:      afterConsonant,
	},
	{
		surfaces:   []string{"는"},
		tag:        Auxiliary,
		fromStates: fromToken,
		toState:    nounAfterAux,
		guard:      afterVowel,
	},
	{
		surfaces:   []string{"도", "만", "까지", "부터", "조차", "마저", "처럼", "밖에", "마다"},
		tag:        Auxiliary,
		fromStates: fromToken,
		toState:    nounAfterAux,
	},
	{
		surfaces:   []string{"이나", "이라도"},
		tag:        Auxiliary,
		fromStates: fromToken,
		toState:    nounAfterAux,
		guard:      afterConsonant,
	},
	{
		surfaces:   []string{"라도"},
		tag:        Auxiliary,
		fromStates: fromToken,
		toState:    nounAfterAux,
		guard:      afterVowel,
	},

	{
		surfaces:   []string{"이"},
		tag:        CaseSubject,
		fromStates: fromTokenAux,
		toState:    nounStem,
		guard:      afterConsonant,
	},
	{
		surfaces:   []string{"가"},
		tag:        CaseSubject,
		fromStates: fromTokenAux,
		toState:    nounStem,
		guard:      afterVowel,
	},
	{
		surfaces:   []string{"께서"},
		tag:        CaseSubject,
		fromStates: fromTokenAux,
		toState:    nounStem,
	},
	{
		surfaces:   []string{"을"},
		tag:        CaseObject,
		fromStates: fromTokenAux,
		toState:    nounStem,
		guard:      afterConsonant,
	},
	{
		surfaces:   []string{"를"},
		tag:        CaseObject,
		fromStates: fromTokenAux,
		toState:    nounStem,
		guard:      afterVowel,
	},
	{
		surfaces:   []string{"의"},
		tag:        CaseGenitive,
		fromStates: fromTokenAux,
		toState:    nounStem,
	},
	{
		surfaces:   []string{"에게서", "에서", "에게", "한테", "에", "께"},
		tag:        CaseAdverbial,
		fromStates: fromTokenAux,
		toState:    nounStem,
	},
	{
		surfaces:   []string{"으로서", "으로써", "으로"},
		tag:        CaseAdverbial,
		fromStates: fromTokenAux,
		toState:    nounStem,
		guard:      afterConsonant,
	},
	{
		surfaces:   []string{"로서", "로써", "로"},
		tag:        CaseAdverbial,
		fromStates: fromTokenAux,
		toState:    nounStem,
		guard:      afterVowelOrRieul,
	},
	{
		surfaces:   []string{"과", "이랑"},
		tag:        CaseComitative,
		fromStates: fromTokenAux,
		toState:    nounStem,
		guard:      afterConsonant,
	},
	{
		surfaces:   []string{"와"},
		tag:        CaseComitative,
		fromStates: fromTokenAux,
		toState:    nounStem,
		guard:      afterVowel,
	},

	{
		surfaces:   []string{"이지만", "이라고", "이에요", "이다", "이고", "이라", "이며", "이야"},
		tag:        Copula,
		fromStates: fromToken,
		toState:    nounStem,
		guard:      afterConsonant,
	},
	{
		surfaces:   []string{"입니다", "입니까"},
		tag:        Copula,
		fromStates: fromToken,
		toState:    nounStem,
	},
	{
		surfaces:   []string{"예요", "에요"},
		tag:        Copula,
		fromStates: fromToken,
		toState:    nounStem,
		guard:      afterVowel,
	},

	// ---------------------------------------------------------------
	// VERBAL ENDINGS
	// ---------------------------------------------------------------

	{
		surfaces:   []string{"습니다", "습니까", "는다"},
		tag:        EndingFinal,
		fromStates: fromToken,
		toState:    verbAfterEnding,
		guard:      afterConsonant,
	},
	{
		surfaces:   []string{"ㅂ니다", "ㅂ니까", "ㄴ다"},
		tag:        EndingFinal,
		fromStates: fromToken,
		toState:    verbAfterEnding,
		guard:      afterVowel,
	},
	{
		surfaces:   []string{"으세요"},
		tag:        EndingFinal,
		fromStates: fromToken,
		toState:    verbAfterEnding,
		guard:      afterConsonant,
	},
	{
		surfaces:   []string{"세요"},
		tag:        EndingFinal,
		fromStates: fromToken,
		toState:    verbAfterEnding,
		guard:      afterVowel,
	},
	{
		surfaces:   []string{"는데요", "어요", "아요", "네요", "군요", "ㄹ게요", "ㄹ게", "ㄹ까", "다", "죠"},
		tag:        EndingFinal,
		fromStates: fromToken,
		toState:    verbAfterEnding,
	},
	{
		surfaces:   []string{"요"},
		tag:        EndingFinal,
		fromStates: fromToken,
		toState:    verbAfterEnding,
		guard:      contractedVowel,
	},
	{
		surfaces:   []string{"으면서", "으니까", "으면", "으며"},
		tag:        EndingConnective,
		fromStates: fromToken,
		toState:    verbAfterEnding,
		guard:      afterConsonant,
	},
	{
		surfaces: []string{
			"어서", "아서", "어도", "아도", "는데", "지만", "니까", "면서", "도록", "려고",
			"다고", "고", "며", "면",
		},
		tag:        EndingConnective,
		fromStates: fromToken,
		toState:    verbAfterEnding,
	},
	{
		surfaces:   []string{"서"},
		tag:        EndingConnective,
		fromStates: fromToken,
		toState:    verbAfterEnding,
		guard:      contractedVowel,
	},
	{
		surfaces:   []string{"다는"},
		tag:        EndingAdnominal,
		fromStates: fromToken,
		toState:    verbAfterEnding,
	},
	{
		surfaces:   []string{"ㄴ", "ㄹ"},
		tag:        EndingAdnominal,
		fromStates: fromToken,
		toState:    verbStem,
		guard:      irregularStem,
	},

	{
		surfaces:   []string{"었", "았", "였", "겠"},
		tag:        PreFinalTense,
		fromStates: fromEnding,
		toState:    verbAfterTense,
	},
	{
		surfaces:   []string{"ㅆ"},
		tag:        PreFinalTense,
		fromStates: fromEnding,
		toState:    verbAfterTense,
		guard:      contractedVowel,
	},
	{
		surfaces:   []string{"으시"},
		tag:        PreFinalHonorific,
		fromStates: fromPreFinal,
		toState:    verbStem,
		guard:      afterConsonant,
	},
}
