package vocab

import (
	"bytes"
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/bytedance/sonic"
	"github.com/golang/snappy"
	"github.com/oklog/ulid"
	"github.com/pkg/errors"
)

const stateVersion = 1

// stateMagic prefixes every state file.
var stateMagic = []byte("KOVS")

// ErrBadState is returned when a state file is not recognized.
var ErrBadState = errors.New("vocab: not a vocabulary state file")

// StateMeta describes a saved state.
type StateMeta struct {
	ULID    ulid.ULID   `json:"ulid"`
	Version int         `json:"version"`
	Created int64       `json:"created"` // unix milliseconds
	Parents []ulid.ULID `json:"parents,omitempty"`
}

type stateFile struct {
	Meta      StateMeta    `json:"meta"`
	Sentences []string     `json:"sentences"`
	Entries   []stateEntry `json:"entries"`
}

// stateEntry stores the sentence set as a serialized roaring bitmap.
type stateEntry struct {
	Lemma     string `json:"lemma"`
	Count     int    `json:"count"`
	Sentences []byte `json:"sentences"`
}

func newULID(t time.Time) ulid.ULID {
	entropy := rand.New(rand.NewSource(t.UnixNano()))
	return ulid.MustNew(ulid.Timestamp(t), entropy)
}

// WriteState saves the aggregator to w so a later run can continue from it.
// The payload is JSON compressed with snappy. The returned metadata carries
// the id of the new state.
func (a *Aggregator) WriteState(w io.Writer) (StateMeta, error) {
	now := time.Now()
	sf := stateFile{
		Meta: StateMeta{
			ULID:    newULID(now),
			Version: stateVersion,
			Created: now.UnixMilli(),
			Parents: a.Parents(),
		},
		Sentences: a.sentences.texts,
		Entries:   make([]stateEntry, len(a.entries)),
	}
	for i, e := range a.entries {
		b, err := e.ids.ToBytes()
		if err != nil {
			return StateMeta{}, errors.Wrapf(err, "encode sentences of %q", e.lemma)
		}
		sf.Entries[i] = stateEntry{Lemma: e.lemma, Count: e.count, Sentences: b}
	}

	data, err := sonic.Marshal(&sf)
	if err != nil {
		return StateMeta{}, errors.Wrap(err, "marshal state")
	}
	if _, err := w.Write(stateMagic); err != nil {
		return StateMeta{}, errors.Wrap(err, "write state header")
	}
	if _, err := w.Write(snappy.Encode(nil, data)); err != nil {
		return StateMeta{}, errors.Wrap(err, "write state")
	}
	return sf.Meta, nil
}

// ReadState restores an aggregator saved by WriteState. First-seen order of
// lemmas and sentences is preserved, and the saved state's id is appended
// to the parents of the restored aggregator.
func ReadState(r io.Reader) (*Aggregator, StateMeta, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, StateMeta{}, errors.Wrap(err, "read state")
	}
	if !bytes.HasPrefix(raw, stateMagic) {
		return nil, StateMeta{}, ErrBadState
	}
	data, err := snappy.Decode(nil, raw[len(stateMagic):])
	if err != nil {
		return nil, StateMeta{}, errors.Wrap(err, "decompress state")
	}

	var sf stateFile
	if err := sonic.Unmarshal(data, &sf); err != nil {
		return nil, StateMeta{}, errors.Wrap(err, "unmarshal state")
	}
	if sf.Meta.Version != stateVersion {
		return nil, StateMeta{}, errors.Wrapf(ErrBadState, "version %d", sf.Meta.Version)
	}

	a := New()
	for _, s := range sf.Sentences {
		a.sentences.intern(s)
	}
	if a.sentences.len() != len(sf.Sentences) {
		return nil, StateMeta{}, errors.Wrap(ErrBadState, "duplicate sentence")
	}
	for _, se := range sf.Entries {
		if se.Lemma == "" {
			return nil, StateMeta{}, errors.Wrap(ErrBadState, "empty lemma")
		}
		if _, dup := a.index[se.Lemma]; dup {
			return nil, StateMeta{}, errors.Wrapf(ErrBadState, "duplicate lemma %q", se.Lemma)
		}
		ids := roaring.New()
		if err := ids.UnmarshalBinary(se.Sentences); err != nil {
			return nil, StateMeta{}, errors.Wrapf(err, "decode sentences of %q", se.Lemma)
		}
		if !ids.IsEmpty() && int(ids.Maximum()) >= len(sf.Sentences) {
			return nil, StateMeta{}, errors.Wrapf(ErrBadState, "sentence id out of range for %q", se.Lemma)
		}
		e := a.entryFor(se.Lemma)
		e.count = se.Count
		e.ids = ids
	}
	a.parents = append(slices.Clone(sf.Meta.Parents), sf.Meta.ULID)
	return a, sf.Meta, nil
}
