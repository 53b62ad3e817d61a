package lookup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadTSV(t *testing.T) {
	input := "# comment\n영혼\tsoul\t靈魂\r\n\n거리\tstreet\n것\n영혼\tghost\t\n"
	m, err := LoadTSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadTSV: %v", err)
	}

	tests := []struct {
		lemma string
		want  Definition
		ok    bool
	}{
		{"영혼", Definition{Gloss: "soul", Hanja: "靈魂"}, true},
		{"거리", Definition{Gloss: "street"}, true},
		{"것", Definition{}, true},
		{"사람", Definition{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.lemma, func(t *testing.T) {
			got, ok := m.Lookup(tt.lemma)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Lookup(%q) = %+v, %v, want %+v, %v", tt.lemma, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLoadTSVRejectsMissingWord(t *testing.T) {
	if _, err := LoadTSV(strings.NewReader("영혼\tsoul\n\tno word\n")); err == nil {
		t.Error("LoadTSV accepted a line without a word")
	}
}

func TestLoadJSON(t *testing.T) {
	input := `[
		{"word": "명계", "definition": "the underworld", "hanja": "冥界"},
		{"word": "사람", "definition": "person"},
		{"word": "명계", "definition": "duplicate"}
	]`
	m, err := LoadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if got := m["명계"]; got != (Definition{Gloss: "the underworld", Hanja: "冥界"}) {
		t.Errorf("명계 = %+v", got)
	}
	if got := m["사람"]; got.Gloss != "person" || got.Hanja != "" {
		t.Errorf("사람 = %+v", got)
	}
	if len(m) != 2 {
		t.Errorf("len = %d, want 2", len(m))
	}
}

func TestLoadJSONErrors(t *testing.T) {
	for _, in := range []string{`{`, `{"word": "x"}`, `[{"definition": "no word"}]`} {
		if _, err := LoadJSON(strings.NewReader(in)); err == nil {
			t.Errorf("LoadJSON(%s) = nil error", in)
		}
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tsv := filepath.Join(dir, "dict.tsv")
	js := filepath.Join(dir, "dict.JSON")
	if err := os.WriteFile(tsv, []byte("거리\tstreet\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(js, []byte(`[{"word":"거리","definition":"road"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	for path, want := range map[string]string{tsv: "street", js: "road"} {
		m, err := Open(path)
		if err != nil {
			t.Fatalf("Open(%s): %v", path, err)
		}
		if got := m["거리"].Gloss; got != want {
			t.Errorf("Open(%s) 거리 = %q, want %q", path, got, want)
		}
	}

	if _, err := Open(filepath.Join(dir, "missing.tsv")); err == nil {
		t.Error("Open(missing) = nil error")
	}
}

func TestChain(t *testing.T) {
	user := Map{"거리": {Gloss: "distance"}}
	c := Chain{nil, user, Builtin(), None}

	if d, ok := c.Lookup("거리"); !ok || d.Gloss != "distance" {
		t.Errorf("Chain 거리 = %+v, %v, want user entry", d, ok)
	}
	if d, ok := c.Lookup("영혼"); !ok || d.Hanja != "靈魂" {
		t.Errorf("Chain 영혼 = %+v, %v, want built-in entry", d, ok)
	}
	if _, ok := c.Lookup("없는말"); ok {
		t.Error("Chain found a missing lemma")
	}
}

func TestNone(t *testing.T) {
	if _, ok := None.Lookup("영혼"); ok {
		t.Error("None found a lemma")
	}
}

func TestBuiltin(t *testing.T) {
	m := Builtin()
	if len(m) == 0 {
		t.Fatal("built-in dictionary is empty")
	}
	for _, lemma := range []string{"영혼", "명계", "무섭다", "받다"} {
		if _, ok := m[lemma]; !ok {
			t.Errorf("built-in dictionary missing %q", lemma)
		}
	}
	if _, ok := m["# lemma"]; ok {
		t.Error("comment line was loaded as an entry")
	}
}
