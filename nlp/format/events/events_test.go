package events

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/JasonWyse/epic/nlp/format/rules"
	"github.com/JasonWyse/epic/nlp/parser/chart"
	"github.com/pkg/errors"
)

const modelText = `ROOT S
S -> NP VP
NP -> DT NN
VP -> VB
DT :: the
NN :: dog
VB :: barks
`

func TestWriterStreamsTraversal(t *testing.T) {
	w, err := rules.Read(strings.NewReader(modelText))
	if err != nil {
		t.Fatalf("Expected a valid model, got %v", err)
	}
	m := chart.NewMarginal(w.Anchor([]string{"the", "dog", "barks"}))
	var buf bytes.Buffer
	writer := NewWriter(&buf, w.G)
	writer.SetSentence(2)
	if err := m.VisitPostorder(writer); err != nil {
		t.Fatalf("Expected traversal to succeed, got %v", err)
	}
	if err := writer.Flush(); err != nil {
		t.Fatalf("Expected flush to succeed, got %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Expected the stream to read back, got %v", err)
	}
	expected := []Event{
		{SPAN, 2, 0, NO_SPLIT, 1, "DT", 0, 1},
		{UNARY, 2, 0, NO_SPLIT, 1, "DT -> DT", 0, 1},
		{SPAN, 2, 1, NO_SPLIT, 2, "NN", 0, 1},
		{UNARY, 2, 1, NO_SPLIT, 2, "NN -> NN", 0, 1},
		{SPAN, 2, 2, NO_SPLIT, 3, "VB", 0, 1},
		{UNARY, 2, 2, NO_SPLIT, 3, "VP -> VB", 0, 1},
		{BINARY, 2, 0, 1, 2, "NP -> DT NN", 0, 1},
		{SPAN, 2, 0, NO_SPLIT, 2, "NP", 0, 1},
		{UNARY, 2, 0, NO_SPLIT, 2, "NP -> NP", 0, 1},
		{BINARY, 2, 0, 2, 3, "S -> NP VP", 0, 1},
		{SPAN, 2, 0, NO_SPLIT, 3, "S", 0, 1},
		{UNARY, 2, 0, NO_SPLIT, 3, "S -> S", 0, 1},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected events\n%v\ngot\n%v", expected, got)
	}
}

func TestRoundTrip(t *testing.T) {
	original := []Event{
		{SPAN, 0, 0, NO_SPLIT, 2, "NP", 1, 0.1512},
		{BINARY, 0, 0, 1, 2, "NP -> DT NN", 2, 1e-9},
		{UNARY, 3, 4, NO_SPLIT, 7, "S -> VP", 0, 0.25},
	}
	var buf bytes.Buffer
	if err := Write(&buf, original); err != nil {
		t.Fatalf("Expected write to succeed, got %v", err)
	}
	reread, err := Read(&buf)
	if err != nil {
		t.Fatalf("Expected read to succeed, got %v", err)
	}
	if !reflect.DeepEqual(reread, original) {
		t.Errorf("Expected events\n%v\ngot\n%v", original, reread)
	}
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		name, line, want string
	}{
		{"field count", "span\t0\t0\t_\t1\tNP\t0", "want 8"},
		{"kind", "trinary\t0\t0\t1\t2\tX -> Y Z\t0\t1", "unknown event kind"},
		{"begin", "span\t0\tzero\t_\t1\tNP\t0\t1", "begin"},
		{"split", "binary\t0\t0\tmid\t2\tX -> Y Z\t0\t1", "split"},
		{"count", "span\t0\t0\t_\t1\tNP\t0\tmany", "count"},
	}
	for _, c := range cases {
		_, err := Read(strings.NewReader(c.line + "\n"))
		if err == nil {
			t.Errorf("Expected %s error, got a stream", c.name)
			continue
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Errorf("Expected %s error to mention %q, got %v", c.name, c.want, err)
		}
		if !strings.Contains(err.Error(), "record 1") {
			t.Errorf("Expected %s error to name the record, got %v", c.name, err)
		}
	}
}

func TestFiles(t *testing.T) {
	original := []Event{{SPAN, 0, 0, NO_SPLIT, 1, "NN", 0, 1}}
	filename := filepath.Join(t.TempDir(), "events.tsv")
	if err := WriteFile(filename, original); err != nil {
		t.Fatalf("Expected write to %s to succeed, got %v", filename, err)
	}
	reread, err := ReadFile(filename)
	if err != nil {
		t.Fatalf("Expected read from %s to succeed, got %v", filename, err)
	}
	if !reflect.DeepEqual(reread, original) {
		t.Errorf("Expected events %v, got %v", original, reread)
	}
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriterError(t *testing.T) {
	w, err := rules.Read(strings.NewReader(modelText))
	if err != nil {
		t.Fatalf("Expected a valid model, got %v", err)
	}
	writer := NewWriter(failWriter{}, w.G)
	for i := 0; i < 1000; i++ {
		writer.VisitSpan(0, 1, 0, 0, 1)
	}
	if err := writer.Flush(); err == nil {
		t.Errorf("Expected the write error to surface at flush")
	} else if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Expected the original error, got %v", err)
	}
}
