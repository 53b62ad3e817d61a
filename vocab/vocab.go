// Package vocab aggregates lemma occurrences into a frequency-ordered
// vocabulary list.
//
// An Aggregator counts every recorded occurrence of a lemma and keeps the
// distinct sentences the lemma came from. Sentence texts are interned once
// and referenced by id, so a sentence shared by many lemmas is stored a
// single time.
//
// Ordering rules:
//
//   - Snapshot orders entries by count descending. Ties keep the order in
//     which the lemmas were first recorded.
//   - The sentences of an entry are listed in the order the sentences were
//     first recorded by the aggregator.
//
// An Aggregator is not safe for concurrent use. The processing pass that
// owns it is expected to record occurrences in source order.
package vocab

import (
	"slices"

	"github.com/RoaringBitmap/roaring"
	"github.com/cespare/xxhash"
	"github.com/oklog/ulid"
)

// Entry is the aggregate of one lemma.
type Entry struct {
	Lemma     string   `json:"lemma"`
	Count     int      `json:"count"`
	Sentences []string `json:"sentences"`
}

// Aggregator maps lemmas to their counts and originating sentences.
// The zero value is not usable; call New.
type Aggregator struct {
	index     map[string]int // lemma -> position in entries
	entries   []*entry       // first-seen order
	sentences *interner
	parents   []ulid.ULID // states this aggregator was restored from
}

type entry struct {
	lemma string
	count int
	ids   *roaring.Bitmap
}

// New returns an empty aggregator.
func New() *Aggregator {
	return &Aggregator{
		index:     make(map[string]int),
		sentences: newInterner(),
	}
}

// Record adds one occurrence of lemma found in sentence. The count grows on
// every call; the sentence is kept once per lemma. Empty lemmas are ignored.
func (a *Aggregator) Record(lemma, sentence string) {
	if lemma == "" {
		return
	}
	e := a.entryFor(lemma)
	e.count++
	e.ids.Add(a.sentences.intern(sentence))
}

func (a *Aggregator) entryFor(lemma string) *entry {
	if i, ok := a.index[lemma]; ok {
		return a.entries[i]
	}
	e := &entry{lemma: lemma, ids: roaring.New()}
	a.index[lemma] = len(a.entries)
	a.entries = append(a.entries, e)
	return e
}

// Len returns the number of distinct lemmas.
func (a *Aggregator) Len() int {
	return len(a.entries)
}

// SentenceCount returns the number of distinct sentences recorded.
func (a *Aggregator) SentenceCount() int {
	return a.sentences.len()
}

// Lookup returns the entry of lemma.
func (a *Aggregator) Lookup(lemma string) (Entry, bool) {
	i, ok := a.index[lemma]
	if !ok {
		return Entry{}, false
	}
	return a.export(a.entries[i]), true
}

// Snapshot returns every entry ordered by count descending, then by first
// sighting. The returned entries share no state with the aggregator.
func (a *Aggregator) Snapshot() []Entry {
	if len(a.entries) == 0 {
		return nil
	}
	out := make([]Entry, len(a.entries))
	for i, e := range a.entries {
		out[i] = a.export(e)
	}
	slices.SortStableFunc(out, func(x, y Entry) int {
		return y.Count - x.Count
	})
	return out
}

// Parents returns the ids of the saved states this aggregator was
// restored from, oldest first.
func (a *Aggregator) Parents() []ulid.ULID {
	return slices.Clone(a.parents)
}

func (a *Aggregator) export(e *entry) Entry {
	ids := e.ids.ToArray()
	sentences := make([]string, len(ids))
	for i, id := range ids {
		sentences[i] = a.sentences.text(id)
	}
	return Entry{Lemma: e.lemma, Count: e.count, Sentences: sentences}
}

// interner assigns dense ids to sentence texts in first-seen order.
// Texts are bucketed by their 64-bit fingerprint; a bucket holds more than
// one id only on a fingerprint collision.
type interner struct {
	buckets map[uint64][]uint32
	texts   []string
}

func newInterner() *interner {
	return &interner{buckets: make(map[uint64][]uint32)}
}

func (in *interner) intern(s string) uint32 {
	h := xxhash.Sum64String(s)
	for _, id := range in.buckets[h] {
		if in.texts[id] == s {
			return id
		}
	}
	id := uint32(len(in.texts))
	in.texts = append(in.texts, s)
	in.buckets[h] = append(in.buckets[h], id)
	return id
}

func (in *interner) text(id uint32) string {
	return in.texts[id]
}

func (in *interner) len() int {
	return len(in.texts)
}
