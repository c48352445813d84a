package events

// Package events reads and writes posterior event streams as
// tab-separated records, one parse event per line:
//
//	kind  sentence  begin  split  end  name  ref  count
//
// Span and unary events carry no split point and write _ in its
// place. Rule names are spelled the way the rules format spells them,
// so a stream is legible next to the grammar it came from.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/JasonWyse/epic/nlp/grammar"
	"github.com/JasonWyse/epic/nlp/parser/chart"
)

const (
	SPAN   = "span"
	BINARY = "binary"
	UNARY  = "unary"

	NO_SPLIT = -1
)

// Event is one posterior-weighted parse event of one sentence. Count
// is the expected number of times the event occurs under the model.
type Event struct {
	Kind     string
	Sentence int
	Begin    int
	Split    int
	End      int
	Name     string
	Ref      int
	Count    float64
}

func (e Event) String() string {
	split := "_"
	if e.Split >= 0 {
		split = strconv.Itoa(e.Split)
	}
	return fmt.Sprintf("%s\t%d\t%d\t%s\t%d\t%s\t%d\t%s",
		e.Kind, e.Sentence, e.Begin, split, e.End, e.Name, e.Ref,
		strconv.FormatFloat(e.Count, 'g', -1, 64))
}

// Writer streams events straight out of a marginal traversal. Write
// errors stick; the first one surfaces at Flush.
type Writer struct {
	g        *grammar.Grammar
	buf      *bufio.Writer
	sentence int
	err      error
}

var _ chart.Visitor = &Writer{}

func NewWriter(w io.Writer, g *grammar.Grammar) *Writer {
	return &Writer{g: g, buf: bufio.NewWriter(w)}
}

// SetSentence tags subsequent events with a sentence index.
func (w *Writer) SetSentence(index int) {
	w.sentence = index
}

func (w *Writer) emit(e Event) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintln(w.buf, e.String())
}

func (w *Writer) VisitSpan(begin, end, label, ref int, count float64) {
	w.emit(Event{SPAN, w.sentence, begin, NO_SPLIT, end, w.g.Labels.ValueOf(label), ref, count})
}

func (w *Writer) VisitBinaryRule(begin, split, end, rule, ruleRef int, count float64) {
	w.emit(Event{BINARY, w.sentence, begin, split, end, w.g.RuleString(rule), ruleRef, count})
}

func (w *Writer) VisitUnaryRule(begin, end, rule, ruleRef int, count float64) {
	w.emit(Event{UNARY, w.sentence, begin, NO_SPLIT, end, w.g.RuleString(rule), ruleRef, count})
}

// Flush drains buffered events, returning the first error seen.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.buf.Flush()
}

// Read parses an event stream.
func Read(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	record := 0
	for scanner.Scan() {
		record++
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		event, err := parseEvent(line)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", record)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func parseEvent(line string) (Event, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 8 {
		return Event{}, errors.Errorf("got %d fields, want 8", len(fields))
	}
	var (
		e   Event
		err error
	)
	e.Kind = fields[0]
	switch e.Kind {
	case SPAN, BINARY, UNARY:
	default:
		return Event{}, errors.Errorf("unknown event kind %q", e.Kind)
	}
	if e.Sentence, err = strconv.Atoi(fields[1]); err != nil {
		return Event{}, errors.Wrap(err, "sentence")
	}
	if e.Begin, err = strconv.Atoi(fields[2]); err != nil {
		return Event{}, errors.Wrap(err, "begin")
	}
	if fields[3] == "_" {
		e.Split = NO_SPLIT
	} else if e.Split, err = strconv.Atoi(fields[3]); err != nil {
		return Event{}, errors.Wrap(err, "split")
	}
	if e.End, err = strconv.Atoi(fields[4]); err != nil {
		return Event{}, errors.Wrap(err, "end")
	}
	e.Name = fields[5]
	if e.Ref, err = strconv.Atoi(fields[6]); err != nil {
		return Event{}, errors.Wrap(err, "ref")
	}
	if e.Count, err = strconv.ParseFloat(fields[7], 64); err != nil {
		return Event{}, errors.Wrap(err, "count")
	}
	return e, nil
}

// Write renders events back to the stream format.
func Write(writer io.Writer, events []Event) error {
	buf := bufio.NewWriter(writer)
	for _, e := range events {
		if _, err := fmt.Fprintln(buf, e.String()); err != nil {
			return err
		}
	}
	return buf.Flush()
}

func ReadFile(filename string) ([]Event, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	return Read(file)
}

func WriteFile(filename string, events []Event) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer file.Close()

	return Write(file, events)
}
