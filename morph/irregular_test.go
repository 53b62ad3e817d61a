package morph

import (
	"slices"
	"testing"
)

func TestRepairStem(t *testing.T) {
	tests := []struct {
		name    string
		stem    string
		want    string
		repairs []RepairTag
	}{
		{"bieup u", "무서우", "무섭", []RepairTag{BieupIrregular}},
		{"bieup wo", "어려워", "어렵", []RepairTag{VowelContraction, BieupIrregular}},
		{"bieup wa", "도와", "돕", []RepairTag{BieupIrregular}},
		{"regular u", "배우", "배우", nil},
		{"vowel wa", "봐", "보", []RepairTag{VowelContraction}},
		{"vowel wae", "돼", "되", []RepairTag{VowelContraction}},
		{"yeo", "마셔", "마시", []RepairTag{YeoContraction}},
		{"yeo rieul", "버려", "버리", []RepairTag{YeoContraction}},
		{"hada", "공부해", "공부하", []RepairTag{HadaContraction}},
		{"rieul la", "몰라", "모르", []RepairTag{RieulIrregular}},
		{"rieul leo", "불러", "부르", []RepairTag{RieulIrregular}},
		{"regular la", "놀라", "놀라", nil},
		{"closed stem", "먹", "먹", nil},
		{"empty", "", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, repairs := repairStem([]rune(tt.stem))
			if string(got) != tt.want {
				t.Errorf("repairStem(%q) = %q, want %q", tt.stem, string(got), tt.want)
			}
			if !slices.Equal(repairs, tt.repairs) {
				t.Errorf("repairStem(%q) repairs = %v, want %v", tt.stem, repairs, tt.repairs)
			}
		})
	}
}

func TestRepairStemDoesNotMutate(t *testing.T) {
	in := []rune("무서우")
	orig := slices.Clone(in)
	repairStem(in)
	if !slices.Equal(in, orig) {
		t.Errorf("repairStem mutated its input: %q", string(in))
	}
}

func TestRepairTagString(t *testing.T) {
	if got := RieulIrregular.String(); got != "RieulIrregular" {
		t.Errorf("RieulIrregular.String() = %q", got)
	}
	if got := RepairTag(-1).String(); got != "RepairTag(?)" {
		t.Errorf("RepairTag(-1).String() = %q", got)
	}
}

func TestGuardAdmits(t *testing.T) {
	tests := []struct {
		name  string
		guard guardKind
		stem  string
		want  bool
	}{
		{"empty stem", afterConsonant, "", true},
		{"no guard", noGuard, "거리", true},
		{"consonant closed", afterConsonant, "사람", true},
		{"consonant open", afterConsonant, "친구", false},
		{"vowel open", afterVowel, "친구", true},
		{"vowel closed", afterVowel, "사람", false},
		{"rieul final", afterVowelOrRieul, "서울", true},
		{"rieul open", afterVowelOrRieul, "학교", true},
		{"rieul other final", afterVowelOrRieul, "사람", false},
		{"contracted ae", contractedVowel, "해", true},
		{"contracted wa", contractedVowel, "봐", true},
		{"contracted u", contractedVowel, "주", false},
		{"contracted closed", contractedVowel, "먹", false},
		{"irregular u", irregularStem, "무서우", true},
		{"irregular hada", irregularStem, "중요하", true},
		{"irregular eoji", irregularStem, "이루어지", true},
		{"irregular plain", irregularStem, "시가", false},
		{"irregular short", irregularStem, "우", false},
		{"present closed", presentStem, "먹", true},
		{"present hada", presentStem, "공부하", true},
		{"present doeda", presentStem, "되", true},
		{"present open", presentStem, "우리", false},
		{"present lexical noun", presentStem, "지하", false},
		{"descriptive hieut", descriptiveStem, "좋", true},
		{"descriptive ssang siot", descriptiveStem, "있", true},
		{"descriptive known stem", descriptiveStem, "작", true},
		{"descriptive known stem in noun", descriptiveStem, "조작", false},
		{"descriptive noun final", descriptiveStem, "영혼", false},
		{"non-syllable", afterVowel, "거리a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.guard.admits([]rune(tt.stem)); got != tt.want {
				t.Errorf("admits(%q) = %v, want %v", tt.stem, got, tt.want)
			}
		})
	}
}
