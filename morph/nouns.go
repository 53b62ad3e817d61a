package morph

// lexicalNouns are bare nouns whose final syllables read as a particle or
// an adnominal ending (서울 as 서우 + ㄹ, 고양이 as 고양 + 이, 지하는 as
// 지하 + 는). A token equal to one of them is returned whole, and they are
// never taken as a verb stem before the adnominal 는.
var lexicalNouns = map[string]bool{
	// open syllable + 울/운
	"서울": true, "겨울": true, "거울": true, "너울": true, "우울": true,
	"기운": true, "가운": true,

	// closed syllable + 이
	"고양이": true, "호랑이": true, "원숭이": true, "어린이": true, "젊은이": true,
	"늙은이": true, "지팡이": true,

	// ending in 하
	"지하": true, "이하": true, "영하": true, "천하": true, "폐하": true,
	"전하": true, "부하": true, "상하": true,
}

// adjectiveStems are one-syllable descriptive verb stems whose final
// consonant also ends nouns, so 은 after them is the adnominal ending
// (작은 → 작다) rather than the topic particle.
var adjectiveStems = map[rune]bool{
	'작': true, '넓': true, '높': true, '낮': true, '깊': true, '얕': true,
	'짧': true, '굵': true, '젊': true, '밝': true, '맑': true, '붉': true,
	'검': true, '같': true, '늦': true, '낡': true, '옳': true, '짙': true,
	'좁': true, '묽': true, '옅': true, '엷': true,
}
