package app

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/JasonWyse/epic/nlp/counts"
	"github.com/JasonWyse/epic/nlp/format/events"
	"github.com/JasonWyse/epic/nlp/format/raw"
	"github.com/JasonWyse/epic/nlp/format/rules"
	"github.com/JasonWyse/epic/nlp/parser/chart"
	"github.com/JasonWyse/epic/util"
)

func MarginalsConfigOut(builder chart.Builder, workers int) {
	log.Println("Configuration")
	log.Printf("Chart:\t\t\t%s", builder.Factory)
	log.Printf("Exhaustive:\t\t%v", builder.Exhaustive)
	log.Printf("Accumulator Buffer:\t%d", builder.BufferSize)
	log.Printf("Workers:\t\t%d", workers)
	log.Printf("CPUs:\t\t\t%d", CPUs)
	log.Printf("Limit:\t\t\t%v", limit)
	log.Println()
	log.Println("Data")
	log.Printf("Grammar file:\t\t%s", grammarFile)
	if !VerifyExists(grammarFile) {
		os.Exit(1)
	}
	if md5sum, err := util.MD5File(grammarFile); err == nil {
		log.Printf("Grammar md5:\t\t%s", md5sum)
	}
	log.Printf("Input file:\t\t%s", input)
	if !VerifyExists(input) {
		os.Exit(1)
	}
	if len(outEvents) > 0 {
		log.Printf("Events out file:\t%s", outEvents)
	}
	if len(outCounts) > 0 {
		log.Printf("Counts out file:\t%s", outCounts)
	}
	if len(countDB) > 0 {
		log.Printf("Counts store:\t\t%s", countDB)
	}
}

func Marginals(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"g", "i"}
	VerifyFlags(cmd, REQUIRED_FLAGS)

	config, err := resolveConfig(cmd)
	if err != nil {
		log.Println(err)
		return err
	}
	factory, err := chart.FactoryByName(config.Chart)
	if err != nil {
		log.Println(err)
		return err
	}
	builder := chart.Builder{
		Factory:    factory,
		Exhaustive: config.Exhaustive,
		BufferSize: config.Buffer,
	}
	workers := config.Workers
	if workers <= 0 {
		workers = CPUs
	}

	if allOut {
		MarginalsConfigOut(builder, workers)
		log.Println()
		log.Println("Reading model from", grammarFile)
	}
	w, err := rules.ReadFile(grammarFile)
	if err != nil {
		log.Println(err)
		return err
	}
	if allOut {
		log.Println("Read", w.G.NumRules(), "rules,", w.G.NumLabels(), "labels")
	}

	sents, err := raw.ReadFile(input, limit)
	if err != nil {
		log.Println(err)
		return err
	}
	if allOut {
		lengths := make([]int, len(sents))
		for i, sent := range sents {
			lengths[i] = len(sent)
		}
		log.Println("Read", len(sents), "sentences from", input)
		log.Println("Longest sentence:", util.MaxInt(lengths), "tokens")
		log.Println()
		log.Println("Computing marginals")
	}

	marginals := make([]*chart.Marginal, len(sents))
	startTime := time.Now()
	var group errgroup.Group
	group.SetLimit(workers)
	for i := range sents {
		i := i
		group.Go(func() error {
			marginals[i] = builder.Marginal(w.Anchor(sents[i].Tokens()))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	if allOut {
		log.Println("MARGINALS Total Time:", time.Since(startTime))
		util.LogMemory()
		log.Println()
		log.Println("Traversing posterior events")
	}

	var visitors []chart.Visitor
	var eventsWriter *events.Writer
	if len(outEvents) > 0 {
		file, err := os.Create(outEvents)
		if err != nil {
			return errors.Wrapf(err, "create %s", outEvents)
		}
		defer file.Close()
		eventsWriter = events.NewWriter(file, w.G)
		visitors = append(visitors, eventsWriter)
	}
	var accumulator *counts.Accumulator
	if len(outCounts) > 0 || len(countDB) > 0 {
		accumulator = counts.NewAccumulator(w.G, w.Refs)
		visitors = append(visitors, accumulator)
	}
	visitor := chart.MultiVisitor(visitors...)

	var parsed, failed int
	for i, m := range marginals {
		if eventsWriter != nil {
			eventsWriter.SetSentence(i)
		}
		if accumulator != nil {
			accumulator.SetSentence(sents[i].Tokens())
		}
		if err := m.VisitPostorder(visitor); err != nil {
			if errors.Cause(err) == chart.ErrNoParse {
				failed++
				log.Println("Skipping sentence", i, "-", err)
				continue
			}
			return err
		}
		parsed++
		if allOut {
			log.Println("At sentence", i, "logZ", strconv.FormatFloat(m.LogPartition, 'g', -1, 64))
		}
	}

	if eventsWriter != nil {
		if err := eventsWriter.Flush(); err != nil {
			return err
		}
		if allOut {
			log.Println("Wrote events to", outEvents)
		}
	}
	if accumulator != nil && len(outCounts) > 0 {
		file, err := os.Create(outCounts)
		if err != nil {
			return errors.Wrapf(err, "create %s", outCounts)
		}
		if err := accumulator.WriteTSV(file); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
		if allOut {
			log.Println("Wrote counts to", outCounts)
		}
	}
	if accumulator != nil && len(countDB) > 0 {
		store, err := counts.OpenStore(countDB)
		if err != nil {
			return err
		}
		if err := store.Add(accumulator); err != nil {
			store.Close()
			return err
		}
		if err := store.Close(); err != nil {
			return err
		}
		if allOut {
			log.Println("Added counts to store", countDB)
		}
	}

	if allOut {
		log.Println("Done:", parsed, "parsed,", failed, "with no parse")
	}
	if failed > 0 && parsed == 0 {
		return errors.New("no sentence had a parse")
	}
	return nil
}

func MarginalsCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Marginals,
		UsageLine: "marginals <file options> [arguments]",
		Short:     "computes inside-outside posterior events over a corpus",
		Long: `
computes inside-outside posterior events over a corpus

	$ ./epic marginals -g <grammar> -i <corpus> [-o <events>] [-c <counts>] [-countdb <db>] [options]

`,
		Flag: *flag.NewFlagSet("marginals", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&grammarFile, "g", "", "Grammar/Lexicon File (rules format)")
	cmd.Flag.StringVar(&input, "i", "", "Input Corpus File (one sentence per line)")
	cmd.Flag.StringVar(&outEvents, "o", "", "Output Events File (TSV)")
	cmd.Flag.StringVar(&outCounts, "c", "", "Output Expected Counts File (TSV)")
	cmd.Flag.StringVar(&countDB, "countdb", "", "Persistent Count Store (bolt database)")
	cmd.Flag.StringVar(&confFile, "conf", "", "Optional YAML Configuration File")
	cmd.Flag.BoolVar(&viterbi, "viterbi", false, "Max (Viterbi) Chart Instead of Log-Sum")
	cmd.Flag.BoolVar(&exhaustive, "exhaustive", false, "Scan All Split Points (no boundary pruning)")
	cmd.Flag.IntVar(&bufferSize, "buffer", 0, "Accumulator Buffer Size; 0 = default")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit Input Sentences")
	return cmd
}
