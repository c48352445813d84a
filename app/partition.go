package app

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"golang.org/x/sync/errgroup"

	"github.com/JasonWyse/epic/nlp/format/raw"
	"github.com/JasonWyse/epic/nlp/format/rules"
	"github.com/JasonWyse/epic/nlp/parser/chart"
)

func PartitionConfigOut() {
	log.Println("Configuration")
	log.Printf("CPUs:\t\t\t%d", CPUs)
	log.Printf("Limit:\t\t\t%v", limit)
	log.Println()
	log.Println("Data")
	log.Printf("Grammar file:\t\t%s", grammarFile)
	if !VerifyExists(grammarFile) {
		os.Exit(1)
	}
	log.Printf("Input file:\t\t%s", input)
	if !VerifyExists(input) {
		os.Exit(1)
	}
	if len(output) > 0 {
		log.Printf("Out file:\t\t%s", output)
	}
}

// Partition runs the inside pass alone and writes one log-partition
// per sentence, "-Inf" for sentences outside the grammar's coverage.
func Partition(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"g", "i"}
	VerifyFlags(cmd, REQUIRED_FLAGS)
	if allOut {
		PartitionConfigOut()
		log.Println()
		log.Println("Reading model from", grammarFile)
	}
	w, err := rules.ReadFile(grammarFile)
	if err != nil {
		log.Println(err)
		return err
	}
	sents, err := raw.ReadFile(input, limit)
	if err != nil {
		log.Println(err)
		return err
	}
	if allOut {
		log.Println("Read", len(sents), "sentences from", input)
	}

	var builder chart.Builder
	partitions := make([]float64, len(sents))
	startTime := time.Now()
	var group errgroup.Group
	group.SetLimit(CPUs)
	for i := range sents {
		i := i
		group.Go(func() error {
			partitions[i] = builder.Partition(w.Anchor(sents[i].Tokens()))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	if allOut {
		log.Println("PARTITION Total Time:", time.Since(startTime))
	}

	writer := os.Stdout
	if len(output) > 0 {
		file, err := os.Create(output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}
	buf := bufio.NewWriter(writer)
	for i, logZ := range partitions {
		fmt.Fprintf(buf, "%s\t%s\n", strconv.FormatFloat(logZ, 'g', -1, 64), sents[i].String())
	}
	return buf.Flush()
}

func PartitionCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Partition,
		UsageLine: "partition <file options> [arguments]",
		Short:     "computes per-sentence log-partition over a corpus",
		Long: `
computes per-sentence log-partition over a corpus

	$ ./epic partition -g <grammar> -i <corpus> [-o <out>] [options]

`,
		Flag: *flag.NewFlagSet("partition", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&grammarFile, "g", "", "Grammar/Lexicon File (rules format)")
	cmd.Flag.StringVar(&input, "i", "", "Input Corpus File (one sentence per line)")
	cmd.Flag.StringVar(&output, "o", "", "Output File; default standard output")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit Input Sentences")
	return cmd
}
