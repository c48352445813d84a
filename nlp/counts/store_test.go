package counts

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestStore(t *testing.T) {
	w := readModel(t, plainModel)
	a := NewAccumulator(w.G, w.Refs)
	accumulate(t, w, a, "the", "dog", "barks")

	path := filepath.Join(t.TempDir(), "counts.bolt")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("Expected the store to open, got %v", err)
	}
	if err := store.Add(a); err != nil {
		t.Fatalf("Expected the first add to succeed, got %v", err)
	}
	if err := store.Add(a); err != nil {
		t.Fatalf("Expected the second add to succeed, got %v", err)
	}
	if count, err := store.Count(RULES, "NP -> DT NN"); err != nil {
		t.Fatalf("Expected a stored count, got %v", err)
	} else if count != 2 {
		t.Errorf("Expected count 2 after two adds, got %v", count)
	}
	if count, err := store.Count(LEXICON, "NN :: cat"); err != nil {
		t.Fatalf("Expected a zero count, got %v", err)
	} else if count != 0 {
		t.Errorf("Expected 0 for an absent key, got %v", count)
	}
	if _, err := store.Count("weights", "NP -> DT NN"); err == nil {
		t.Errorf("Expected an unknown kind error")
	}

	var buf bytes.Buffer
	if err := store.Dump(&buf); err != nil {
		t.Fatalf("Expected dump to succeed, got %v", err)
	}
	expected := `lexicon	DT :: the	2
lexicon	NN :: dog	2
lexicon	VB :: barks	2
rules	NP -> DT NN	2
rules	S -> NP VP	2
rules	VP -> VB	2
spans	NP	2
spans	S	2
`
	if buf.String() != expected {
		t.Errorf("Expected dump\n%s\ngot\n%s", expected, buf.String())
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Expected the store to close, got %v", err)
	}
}

func TestStorePersists(t *testing.T) {
	w := readModel(t, plainModel)
	a := NewAccumulator(w.G, w.Refs)
	accumulate(t, w, a, "the", "dog", "barks")

	path := filepath.Join(t.TempDir(), "counts.bolt")
	store, err := OpenStore(path)
	if err != nil {
		t.Fatalf("Expected the store to open, got %v", err)
	}
	if err := store.Add(a); err != nil {
		t.Fatalf("Expected add to succeed, got %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Expected the store to close, got %v", err)
	}

	reopened, err := OpenStore(path)
	if err != nil {
		t.Fatalf("Expected the store to reopen, got %v", err)
	}
	defer reopened.Close()
	if count, err := reopened.Count(SPANS, "NP"); err != nil {
		t.Fatalf("Expected a persisted count, got %v", err)
	} else if count != 1 {
		t.Errorf("Expected the count to persist, got %v", count)
	}
}
