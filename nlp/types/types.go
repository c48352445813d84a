package types

import (
	"reflect"
	"strings"

	"github.com/JasonWyse/epic/util"
)

type Token string

type Sentence interface {
	util.Equaler
	Tokens() []string
}

type BasicSentence []Token

var _ Sentence = BasicSentence{}

func (b BasicSentence) Tokens() []string {
	retval := make([]string, len(b))
	for i, val := range b {
		retval[i] = string(val)
	}
	return retval
}

func (b BasicSentence) Equal(other util.Equaler) bool {
	asBasic := other.(BasicSentence)
	return reflect.DeepEqual(b, asBasic)
}

func (b BasicSentence) String() string {
	return strings.Join(b.Tokens(), " ")
}

// FromString splits a raw corpus line into a sentence, one token per
// whitespace-separated field.
func FromString(line string) BasicSentence {
	fields := strings.Fields(line)
	retval := make(BasicSentence, len(fields))
	for i, field := range fields {
		retval[i] = Token(field)
	}
	return retval
}
