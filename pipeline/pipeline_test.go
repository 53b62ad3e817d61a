package pipeline

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/az-ai-labs/ko-lang-nlp/hangul"
	"github.com/az-ai-labs/ko-lang-nlp/morph"
	"github.com/az-ai-labs/ko-lang-nlp/source"
	"github.com/az-ai-labs/ko-lang-nlp/tokenizer"
	"github.com/az-ai-labs/ko-lang-nlp/vocab"
)

// sliceSource replays fixed results.
type sliceSource struct {
	items []item
}

type item struct {
	rec source.Record
	err error
}

func (s *sliceSource) Next() (source.Record, error) {
	if len(s.items) == 0 {
		return source.Record{}, io.EOF
	}
	it := s.items[0]
	s.items = s.items[1:]
	return it.rec, it.err
}

func lemmas(a *vocab.Aggregator) []string {
	var out []string
	for _, e := range a.Snapshot() {
		out = append(out, e.Lemma)
	}
	return out
}

func TestAddSentence(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     []string
	}{
		{"particles", "영혼은 명계에서 살 것이고", []string{"영혼", "명계", "살", "것"}},
		{"adnominal and noun", "무서운 것", []string{"무섭다", "것"}},
		{"quoted", "\"도난당했다는 것을\"", []string{"도난당하다", "것"}},
		{"punctuation per token", "거리에, 사람이라!", []string{"거리", "사람"}},
		{"repeated spaces", "받으세요   지내고", []string{"받다", "지내다"}},
		{"no hangul", "Hello, world!", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			require.NoError(t, e.AddSentence(tt.sentence))
			assert.Equal(t, tt.want, lemmas(e.Aggregator()))
		})
	}
}

func TestAddSentenceRecordsOriginal(t *testing.T) {
	e := New()
	const s = "\"거리에 사람이\" 많다."
	require.NoError(t, e.AddSentence(s))

	entry, ok := e.Aggregator().Lookup("거리")
	require.True(t, ok)
	assert.Equal(t, []string{s}, entry.Sentences)
}

func TestAddSentenceNFD(t *testing.T) {
	e := New()
	// 거리에 written with conjoining jamo.
	require.NoError(t, e.AddSentence("\u1100\u1165\u1105\u1175\u110B\u1166"))
	assert.Equal(t, []string{"거리"}, lemmas(e.Aggregator()))
}

func TestAddSentenceRejects(t *testing.T) {
	e := New()
	err := e.AddSentence("거리\xFF에")
	assert.True(t, errors.Is(err, hangul.ErrMalformed))

	err = e.AddSentence(strings.Repeat("가 ", 1<<15))
	assert.True(t, errors.Is(err, tokenizer.ErrTooLong))

	assert.Zero(t, e.Aggregator().Len())
	assert.Zero(t, e.Stats().Tokens)
}

func TestAddSentenceJoined(t *testing.T) {
	e := New()
	require.NoError(t, e.AddSentence("한국-일본의 관계"))
	assert.Equal(t, []string{"한국-일본", "관계"}, lemmas(e.Aggregator()))
	assert.Zero(t, e.Stats().Compound)

	e = New(WithStripper(morph.NewStripper(nil, morph.SplitJoined())))
	require.NoError(t, e.AddSentence("한국-일본의 관계"))
	st := e.Stats()
	assert.Equal(t, 2, st.Tokens)
	assert.Equal(t, 1, st.Compound)
	assert.Equal(t, 3, st.Lemmas)
	assert.Equal(t, []string{"한국", "일본", "관계"}, lemmas(e.Aggregator()))
}

func TestAddSentenceKeepsNounsWhole(t *testing.T) {
	e := New()
	for _, s := range []string{"서울에 갑니다", "서울 좋아요", "나는 서울"} {
		require.NoError(t, e.AddSentence(s))
	}
	got, ok := e.Aggregator().Lookup("서울")
	require.True(t, ok)
	assert.Equal(t, 3, got.Count)
	_, ok = e.Aggregator().Lookup("섭다")
	assert.False(t, ok)
}

func TestRun(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	src := &sliceSource{items: []item{
		{rec: source.Record{Row: 1, Text: "무서운 것"}},
		{err: &source.RowError{Row: 2, Err: errors.New("bad quote")}},
		{rec: source.Record{Row: 3, Text: "거리\xFF에"}},
		{rec: source.Record{Row: 4, Text: "그런 것이고"}},
	}}

	e := New(WithLogger(logger))
	st, err := e.Run(src)
	require.NoError(t, err)

	assert.Equal(t, Stats{Rows: 4, Skipped: 2, Tokens: 4, Lemmas: 4}, st)

	got, ok := e.Aggregator().Lookup("것")
	require.True(t, ok)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, []string{"무서운 것", "그런 것이고"}, got.Sentences)

	out := logs.String()
	assert.Contains(t, out, "skip unreadable row")
	assert.Contains(t, out, "row=2")
	assert.Contains(t, out, "skip sentence")
	assert.Contains(t, out, "row=3")
}

func TestRunFatal(t *testing.T) {
	boom := errors.New("disk gone")
	src := &sliceSource{items: []item{
		{rec: source.Record{Row: 1, Text: "거리에"}},
		{err: boom},
		{rec: source.Record{Row: 3, Text: "사람이라"}},
	}}

	e := New()
	st, err := e.Run(src)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, 1, st.Rows)
	assert.Equal(t, []string{"거리"}, lemmas(e.Aggregator()))
}

func TestRunCSV(t *testing.T) {
	input := "번호,번역\n1,무서운 것\n2,영혼은 명계에서 살 것이고\n"
	src, err := source.NewCSV(strings.NewReader(input))
	require.NoError(t, err)

	e := New()
	st, err := e.Run(src)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Rows)

	// 것 is seen twice, the rest once in first-seen order.
	assert.Equal(t, []string{"것", "무섭다", "영혼", "명계", "살"}, lemmas(e.Aggregator()))
}

func TestRunContinuesAggregator(t *testing.T) {
	agg := vocab.New()
	agg.Record("것", "이전 문장")

	e := New(WithAggregator(agg))
	_, err := e.Run(&sliceSource{items: []item{{rec: source.Record{Row: 1, Text: "무서운 것"}}}})
	require.NoError(t, err)

	got, _ := agg.Lookup("것")
	assert.Equal(t, 2, got.Count)
}
