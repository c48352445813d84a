package raw

// Package raw reads raw corpus files
// raw files contain a sentence per line, tokens separated by whitespace

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/JasonWyse/epic/nlp/types"
	"github.com/JasonWyse/epic/util/conf"
)

// Read parses whitespace-tokenized sentences, one per line. Lines
// starting with '#' and lines without tokens are skipped. A positive
// limit caps the number of sentences returned.
func Read(reader io.Reader, limit int) ([]types.BasicSentence, error) {
	corpus, err := conf.Read(reader)
	if err != nil {
		return nil, err
	}
	sentences := make([]types.BasicSentence, 0, len(corpus.Values))
	for _, line := range corpus.Values {
		sentence := types.FromString(line)
		if len(sentence) == 0 {
			continue
		}
		sentences = append(sentences, sentence)
		if limit > 0 && len(sentences) >= limit {
			break
		}
	}
	return sentences, nil
}

func ReadFile(filename string, limit int) ([]types.BasicSentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	return Read(file, limit)
}

// Write renders sentences back, one per line.
func Write(writer io.Writer, sents []types.BasicSentence) error {
	for _, sent := range sents {
		if _, err := io.WriteString(writer, sent.String()); err != nil {
			return err
		}
		if _, err := writer.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}

func WriteFile(filename string, sents []types.BasicSentence) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer file.Close()

	return Write(file, sents)
}
